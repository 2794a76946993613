package types

type ConditionOp string

type ConditionExpr struct {
	Op     ConditionOp
	Field  string
	Value  interface{}
	Values []interface{}
	Exprs  []*ConditionExpr
}

// CondBuilder 用于构建结构化 WHERE 条件的结构体。
type CondBuilder struct {
	exprs []*ConditionExpr
}

type OpType string

const (
	OpInsert OpType = "Insert"
	OpSelect OpType = "Select"
	OpUpdate OpType = "Update"
	OpDelete OpType = "Delete"
	OpFind   OpType = "Find"
)

func (op OpType) String() string {
	return string(op)
}
