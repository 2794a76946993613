package types

import (
	"strconv"
	"strings"
)

const (
	DefaultDriver = "mysql"
	DefaultPort   = 3306
)

// Config 数据库连接配置。构造后按值传递给每个 Table，不存在全局可变状态。
type Config struct {
	Driver   string `koanf:"driver"`
	Host     string `koanf:"host" validate:"required_unless=Driver sqlite3"`
	Name     string `koanf:"name" validate:"required"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Port     int    `koanf:"port" validate:"omitempty,min=1,max=65535"`
	// Params 追加到 DSN 的驱动参数，如 mysql 的 parseTime、postgres 的 sslmode
	Params map[string]string `koanf:"params"`
}

// NewConfig 创建连接配置，port <= 0 时使用 DefaultPort。不做任何校验。
func NewConfig(host, name, user, password string, port int) Config {
	if port <= 0 {
		port = DefaultPort
	}
	return Config{
		Driver:   DefaultDriver,
		Host:     host,
		Name:     name,
		User:     user,
		Password: password,
		Port:     port,
	}
}

// WithDriver 返回绑定到另一个驱动的副本
func (c Config) WithDriver(name string) Config {
	c.Driver = name
	return c
}

// DriverName 返回驱动名，未设置时为 DefaultDriver
func (c Config) DriverName() string {
	if c.Driver == "" {
		return DefaultDriver
	}
	return c.Driver
}

// PortOrDefault 返回端口，未设置时为 DefaultPort
func (c Config) PortOrDefault() int {
	if c.Port <= 0 {
		return DefaultPort
	}
	return c.Port
}

// Target 返回 <host>;<name>;<port> 形式的目标描述，不含凭据。
func (c Config) Target() string {
	return strings.Join([]string{c.Host, c.Name, strconv.Itoa(c.PortOrDefault())}, ";")
}
