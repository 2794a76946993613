package types

const (
	OpEq   ConditionOp = "EQ"
	OpNe   ConditionOp = "NE"
	OpGt   ConditionOp = "GT"
	OpGte  ConditionOp = "GTE"
	OpLt   ConditionOp = "LT"
	OpLte  ConditionOp = "LTE"
	OpLike ConditionOp = "LIKE"
	OpIn   ConditionOp = "IN"
	OpAnd  ConditionOp = "AND"
	OpOr   ConditionOp = "OR"
	OpRaw  ConditionOp = "RAW"
)

// NewCondition 创建并返回一个新的 CondBuilder 实例。
func NewCondition() *CondBuilder {
	return &CondBuilder{
		exprs: make([]*ConditionExpr, 0),
	}
}

func (b *CondBuilder) compare(op ConditionOp, field string, value interface{}) *CondBuilder {
	b.exprs = append(b.exprs, &ConditionExpr{
		Op:    op,
		Field: field,
		Value: value,
	})
	return b
}

// Eq 添加等于条件（=）。
func (b *CondBuilder) Eq(field string, value interface{}) *CondBuilder {
	return b.compare(OpEq, field, value)
}

// Ne 添加不等于条件（<>）。
func (b *CondBuilder) Ne(field string, value interface{}) *CondBuilder {
	return b.compare(OpNe, field, value)
}

// Gt 添加大于条件（>）。
func (b *CondBuilder) Gt(field string, value interface{}) *CondBuilder {
	return b.compare(OpGt, field, value)
}

// Gte 添加大于等于条件（>=）。
func (b *CondBuilder) Gte(field string, value interface{}) *CondBuilder {
	return b.compare(OpGte, field, value)
}

// Lt 添加小于条件（<）。
func (b *CondBuilder) Lt(field string, value interface{}) *CondBuilder {
	return b.compare(OpLt, field, value)
}

// Lte 添加小于等于条件（<=）。
func (b *CondBuilder) Lte(field string, value interface{}) *CondBuilder {
	return b.compare(OpLte, field, value)
}

// Like 添加模糊匹配条件（LIKE）。
func (b *CondBuilder) Like(field string, pattern string) *CondBuilder {
	return b.compare(OpLike, field, pattern)
}

// In 添加 IN 查询条件，空列表恒为假。
func (b *CondBuilder) In(field string, values ...interface{}) *CondBuilder {
	b.exprs = append(b.exprs, &ConditionExpr{
		Op:     OpIn,
		Field:  field,
		Values: values,
	})
	return b
}

// And 将每个子条件作为一组，以 AND 连接。
func (b *CondBuilder) And(conds ...*CondBuilder) *CondBuilder {
	return b.group(OpAnd, conds)
}

// Or 将每个子条件作为一组，以 OR 连接。
func (b *CondBuilder) Or(conds ...*CondBuilder) *CondBuilder {
	return b.group(OpOr, conds)
}

func (b *CondBuilder) group(op ConditionOp, conds []*CondBuilder) *CondBuilder {
	exprs := make([]*ConditionExpr, 0, len(conds))
	for _, c := range conds {
		if expr := c.Build(); expr != nil {
			exprs = append(exprs, expr)
		}
	}
	if len(exprs) == 0 {
		return b
	}
	b.exprs = append(b.exprs, &ConditionExpr{
		Op:    op,
		Exprs: exprs,
	})
	return b
}

// Raw 添加原始条件片段，args 按 ? 顺序绑定（片段本身不转义，慎用）。
func (b *CondBuilder) Raw(raw string, args ...interface{}) *CondBuilder {
	b.exprs = append(b.exprs, &ConditionExpr{
		Op:     OpRaw,
		Value:  raw,
		Values: args,
	})
	return b
}

// Len 返回顶层条件数
func (b *CondBuilder) Len() int {
	return len(b.exprs)
}

// Build 生成最终的条件表达式树。
// 返回值：
//   - *types.ConditionExpr: 根条件表达式（多个条件以 AND 连接），无条件时为 nil
func (b *CondBuilder) Build() *ConditionExpr {
	if b == nil || len(b.exprs) == 0 {
		return nil
	}
	if len(b.exprs) == 1 {
		return b.exprs[0]
	}
	return &ConditionExpr{
		Op:    OpAnd,
		Exprs: b.exprs,
	}
}
