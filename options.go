package tablehelper

import "github.com/rs/zerolog"

type Option func(*Table)

// WithLogger 设置日志，默认不输出
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Table) {
		t.log = logger
	}
}
