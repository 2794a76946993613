package postgresql

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/Kaguya154/tablehelper"
	"github.com/Kaguya154/tablehelper/parser"
	"github.com/Kaguya154/tablehelper/types"

	_ "github.com/lib/pq"
)

const DriverName = "postgres"
const DriverID uint8 = 2

// DefaultPort Config.Port 未设置时使用
const DefaultPort = 5432

// Register 将驱动注册到 tablehelper，重复注册返回错误
func Register() error {
	return tablehelper.RegisterDriver(DriverName, GetDriver())
}

func GetDriver() *PostgreSQLDriver {
	d := &PostgreSQLDriver{}
	d.parser = &parser.SQLParser{
		DriverName:      DriverName,
		DriverID:        DriverID,
		QuoteFunc:       d.Quote,
		PlaceholderFunc: d.Placeholder,
		Returning:       "id",
	}
	return d
}

// PostgreSQLDriver 实现 types.Driver。lib/pq 不支持 LastInsertId，
// INSERT 通过 RETURNING id 取回主键。
type PostgreSQLDriver struct {
	parser *parser.SQLParser
}

func (d *PostgreSQLDriver) Name() string {
	return DriverName
}

// DSN 生成 key=value 形式的连接串
func (d *PostgreSQLDriver) DSN(cfg types.Config) (string, error) {
	if cfg.Host == "" {
		return "", errors.New("postgres: host is empty")
	}
	port := cfg.Port
	if port <= 0 {
		port = DefaultPort
	}
	pairs := [][2]string{
		{"host", cfg.Host},
		{"port", strconv.Itoa(port)},
		{"dbname", cfg.Name},
	}
	if cfg.User != "" {
		pairs = append(pairs, [2]string{"user", cfg.User})
	}
	if cfg.Password != "" {
		pairs = append(pairs, [2]string{"password", cfg.Password})
	}
	keys := make([]string, 0, len(cfg.Params))
	for k := range cfg.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pairs = append(pairs, [2]string{k, cfg.Params[k]})
	}

	parts := make([]string, len(pairs))
	for i, kv := range pairs {
		parts[i] = kv[0] + "=" + quoteValue(kv[1])
	}
	return strings.Join(parts, " "), nil
}

// quoteValue 按 libpq 规则为含空格、引号或为空的值加单引号
func quoteValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}

func (d *PostgreSQLDriver) Quote(identifier string) string {
	return "\"" + strings.ReplaceAll(identifier, "\"", "\"\"") + "\""
}

func (d *PostgreSQLDriver) Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func (d *PostgreSQLDriver) ReturningID() bool {
	return true
}

func (d *PostgreSQLDriver) Parser() types.Parser {
	return d.parser
}
