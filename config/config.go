// Package config 从环境变量加载连接配置。
//
// 变量以 TABLEHELPER_ 为前缀，去掉前缀并将顶层键转小写后映射到 types.Config 的 koanf 标签：
//
//	TABLEHELPER_DRIVER    mysql | sqlite3 | postgres
//	TABLEHELPER_HOST
//	TABLEHELPER_NAME
//	TABLEHELPER_USER
//	TABLEHELPER_PASSWORD
//	TABLEHELPER_PORT
//	TABLEHELPER_PARAMS.<key>   追加的 DSN 参数，键名区分大小写，如 TABLEHELPER_PARAMS.parseTime
package config

import (
	"fmt"
	"strings"

	"github.com/Kaguya154/tablehelper/drivers/postgresql"
	"github.com/Kaguya154/tablehelper/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "TABLEHELPER_"

// Load 读取环境变量生成配置。envFiles 为可选的 .env 文件，
// 已存在的环境变量不会被文件覆盖。未设置的 driver/port 取默认值。
func Load(envFiles ...string) (types.Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return types.Config{}, fmt.Errorf("load env files: %w", err)
		}
	}

	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return types.Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg types.Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return types.Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Driver == "" {
		cfg.Driver = types.DefaultDriver
	}
	if cfg.Port == 0 && cfg.Driver != postgresql.DriverName {
		cfg.Port = types.DefaultPort
	}

	if err := validator.New().Struct(cfg); err != nil {
		return types.Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// envKey 去掉前缀并将顶层键转小写；params 下的键保持原样（如 mysql 的 parseTime）
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	top, rest, found := strings.Cut(s, ".")
	top = strings.ToLower(top)
	if !found {
		return top
	}
	return top + "." + rest
}
