package types

// Parser 生成语句文本和绑定参数。占位符统一写作 ?，由连接按驱动重新绑定。
type Parser interface {
	Insert(table string, values Fields) (string, []interface{}, error)
	Select(table, where, order, limit, fields string) string
	SelectCond(table string, cond *ConditionExpr, order, limit, fields string) (string, []interface{}, error)
	Update(table, where string, values Fields) (string, []interface{}, error)
	UpdateCond(table string, cond *ConditionExpr, values Fields) (string, []interface{}, error)
	Delete(table, where string) string
	DeleteCond(table string, cond *ConditionExpr) (string, []interface{}, error)
	Find(table, fields string) string
}

type Driver interface {
	// Name 返回 database/sql 注册的驱动名
	Name() string
	DSN(cfg Config) (string, error)
	Quote(identifier string) string
	// Placeholder 返回第 n 个（从 1 开始）参数的占位符
	Placeholder(n int) string
	// ReturningID 为 true 时 INSERT 通过 RETURNING id 取回主键
	ReturningID() bool
	Parser() Parser
}
