package sqlite

import (
	"errors"
	"net/url"
	"sort"
	"strings"

	"github.com/Kaguya154/tablehelper"
	"github.com/Kaguya154/tablehelper/parser"
	"github.com/Kaguya154/tablehelper/types"

	_ "github.com/mattn/go-sqlite3"
)

const DriverName = "sqlite3"
const DriverID uint8 = 0

// SQLiteDriver 实现 types.Driver。Config.Name 为数据库文件路径或 :memory:，
// Host/User/Password/Port 不使用。
type SQLiteDriver struct {
	parser *parser.SQLParser
}

// Register 将驱动注册到 tablehelper，重复注册返回错误
func Register() error {
	return tablehelper.RegisterDriver(DriverName, GetDriver())
}

func GetDriver() *SQLiteDriver {
	d := &SQLiteDriver{}
	d.parser = &parser.SQLParser{
		DriverName:      DriverName,
		DriverID:        DriverID,
		QuoteFunc:       d.Quote,
		PlaceholderFunc: d.Placeholder,
	}
	return d
}

func (d *SQLiteDriver) Name() string {
	return DriverName
}

func (d *SQLiteDriver) DSN(cfg types.Config) (string, error) {
	if cfg.Name == "" {
		return "", errors.New("sqlite3: database name is empty")
	}
	if len(cfg.Params) == 0 {
		return cfg.Name, nil
	}
	keys := make([]string, 0, len(cfg.Params))
	for k := range cfg.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	q := make([]string, 0, len(keys))
	for _, k := range keys {
		q = append(q, url.QueryEscape(k)+"="+url.QueryEscape(cfg.Params[k]))
	}
	sep := "?"
	if strings.Contains(cfg.Name, "?") {
		sep = "&"
	}
	return cfg.Name + sep + strings.Join(q, "&"), nil
}

func (d *SQLiteDriver) Quote(identifier string) string {
	return "`" + strings.ReplaceAll(identifier, "`", "``") + "`"
}

func (d *SQLiteDriver) Placeholder(n int) string {
	return "?"
}

func (d *SQLiteDriver) ReturningID() bool {
	return false
}

func (d *SQLiteDriver) Parser() types.Parser {
	return d.parser
}
