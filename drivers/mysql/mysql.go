package mysql

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/Kaguya154/tablehelper"
	"github.com/Kaguya154/tablehelper/parser"
	"github.com/Kaguya154/tablehelper/types"
	gomysql "github.com/go-sql-driver/mysql"
)

const DriverName = "mysql"
const DriverID uint8 = 1

// MySQLDriver 实现 types.Driver
type MySQLDriver struct {
	parser *parser.SQLParser
}

// Register 将驱动注册到 tablehelper，重复注册返回错误
func Register() error {
	return tablehelper.RegisterDriver(DriverName, GetDriver())
}

func GetDriver() *MySQLDriver {
	d := &MySQLDriver{}
	d.parser = &parser.SQLParser{
		DriverName:      DriverName,
		DriverID:        DriverID,
		QuoteFunc:       d.Quote,
		PlaceholderFunc: d.Placeholder,
	}
	return d
}

func (d *MySQLDriver) Name() string {
	return DriverName
}

// DSN 生成 user:pass@tcp(host:port)/dbname 形式的连接串
func (d *MySQLDriver) DSN(cfg types.Config) (string, error) {
	if cfg.Host == "" {
		return "", errors.New("mysql: host is empty")
	}
	c := gomysql.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.PortOrDefault()))
	c.DBName = cfg.Name
	if len(cfg.Params) > 0 {
		c.Params = make(map[string]string, len(cfg.Params))
		for k, v := range cfg.Params {
			c.Params[k] = v
		}
	}
	return c.FormatDSN(), nil
}

func (d *MySQLDriver) Quote(identifier string) string {
	return "`" + strings.ReplaceAll(identifier, "`", "``") + "`"
}

func (d *MySQLDriver) Placeholder(n int) string {
	return "?"
}

func (d *MySQLDriver) ReturningID() bool {
	return false
}

func (d *MySQLDriver) Parser() types.Parser {
	return d.parser
}
