package parser

import (
	"strings"

	"github.com/Kaguya154/tablehelper/dbtools"
	"github.com/Kaguya154/tablehelper/types"
)

// SQLParser 生成 CRUD 语句。表名和写入字段名经 QuoteFunc 引用，
// 绑定参数直接使用驱动的占位符；where/order/limit/fields 文本原样拼接，不做转义和改写。
//
// 生成的语句按 DriverID 缓存，同一 DriverID 的 QuoteFunc 与 PlaceholderFunc 须一致。
type SQLParser struct {
	DriverName string
	DriverID   uint8
	QuoteFunc  func(string) string
	// PlaceholderFunc 返回第 n 个（从 1 开始）参数的占位符，为 nil 时使用 ?
	PlaceholderFunc func(n int) string
	// Returning 非空时追加到 INSERT 末尾，如 "id"
	Returning string
}

var opStrMap = map[types.ConditionOp]string{
	types.OpEq:   "=",
	types.OpNe:   "<>",
	types.OpGt:   ">",
	types.OpGte:  ">=",
	types.OpLt:   "<",
	types.OpLte:  "<=",
	types.OpLike: "LIKE",
}

// quote 引用标识符，带 schema 前缀时逐段引用
func (p *SQLParser) quote(identifier string) string {
	if p.QuoteFunc == nil {
		return identifier
	}
	parts := strings.Split(identifier, ".")
	for i, part := range parts {
		parts[i] = p.QuoteFunc(part)
	}
	return strings.Join(parts, ".")
}

func (p *SQLParser) placeholder(n int) string {
	if p.PlaceholderFunc == nil {
		return "?"
	}
	return p.PlaceholderFunc(n)
}

// shape 缓存键的字段形状，RETURNING 列不同的解析器不共享语句
func (p *SQLParser) shape(parts ...string) []string {
	return append([]string{p.Returning}, parts...)
}

func (p *SQLParser) Insert(table string, values types.Fields) (string, []interface{}, error) {
	if len(values) == 0 {
		return "", nil, types.ErrNoFields
	}
	names := values.Names()
	shape := p.shape(names...)
	if sqlStr, ok := dbtools.GetStmtCache(p.DriverID, types.OpInsert, table, shape); ok {
		return sqlStr, values.Values(), nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(p.quote(table))
	sb.WriteString(" (")
	for i, name := range names {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.quote(name))
	}
	sb.WriteString(") VALUES (")
	for i := range names {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.placeholder(i + 1))
	}
	sb.WriteByte(')')
	if p.Returning != "" {
		sb.WriteString(" RETURNING ")
		sb.WriteString(p.quote(p.Returning))
	}

	sqlStr := sb.String()
	dbtools.SetStmtCache(p.DriverID, types.OpInsert, table, shape, sqlStr)
	return sqlStr, values.Values(), nil
}

func (p *SQLParser) Select(table, where, order, limit, fields string) string {
	var sb strings.Builder
	p.writeSelect(&sb, table, fields)
	if where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}
	writeTail(&sb, order, limit)
	return sb.String()
}

func (p *SQLParser) SelectCond(table string, cond *types.ConditionExpr, order, limit, fields string) (string, []interface{}, error) {
	var sb strings.Builder
	var args []interface{}
	p.writeSelect(&sb, table, fields)
	if cond != nil {
		sb.WriteString(" WHERE ")
		p.buildWhere(&sb, cond, &args)
	}
	writeTail(&sb, order, limit)
	return sb.String(), args, nil
}

func (p *SQLParser) Update(table, where string, values types.Fields) (string, []interface{}, error) {
	prefix, err := p.updatePrefix(table, values)
	if err != nil {
		return "", nil, err
	}
	return prefix + " WHERE " + where, values.Values(), nil
}

func (p *SQLParser) UpdateCond(table string, cond *types.ConditionExpr, values types.Fields) (string, []interface{}, error) {
	if cond == nil {
		return "", nil, types.ErrNoCondition
	}
	prefix, err := p.updatePrefix(table, values)
	if err != nil {
		return "", nil, err
	}
	// 先 SET 参数，再 WHERE 参数
	args := values.Values()
	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString(" WHERE ")
	p.buildWhere(&sb, cond, &args)
	return sb.String(), args, nil
}

func (p *SQLParser) Delete(table, where string) string {
	return "DELETE FROM " + p.quote(table) + " WHERE " + where
}

func (p *SQLParser) DeleteCond(table string, cond *types.ConditionExpr) (string, []interface{}, error) {
	if cond == nil {
		return "", nil, types.ErrNoCondition
	}
	var sb strings.Builder
	var args []interface{}
	sb.WriteString("DELETE FROM ")
	sb.WriteString(p.quote(table))
	sb.WriteString(" WHERE ")
	p.buildWhere(&sb, cond, &args)
	return sb.String(), args, nil
}

// Find 生成按 id 查询的语句，id 为唯一的位置参数
func (p *SQLParser) Find(table, fields string) string {
	shape := p.shape(fields)
	if sqlStr, ok := dbtools.GetStmtCache(p.DriverID, types.OpFind, table, shape); ok {
		return sqlStr
	}
	var sb strings.Builder
	p.writeSelect(&sb, table, fields)
	sb.WriteString(" WHERE id = ")
	sb.WriteString(p.placeholder(1))
	sqlStr := sb.String()
	dbtools.SetStmtCache(p.DriverID, types.OpFind, table, shape, sqlStr)
	return sqlStr
}

func (p *SQLParser) updatePrefix(table string, values types.Fields) (string, error) {
	if len(values) == 0 {
		return "", types.ErrNoFields
	}
	names := values.Names()
	shape := p.shape(names...)
	if prefix, ok := dbtools.GetStmtCache(p.DriverID, types.OpUpdate, table, shape); ok {
		return prefix, nil
	}
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(p.quote(table))
	sb.WriteString(" SET ")
	for i, name := range names {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.quote(name))
		sb.WriteByte('=')
		sb.WriteString(p.placeholder(i + 1))
	}
	prefix := sb.String()
	dbtools.SetStmtCache(p.DriverID, types.OpUpdate, table, shape, prefix)
	return prefix, nil
}

func (p *SQLParser) writeSelect(sb *strings.Builder, table, fields string) {
	if fields == "" {
		fields = "*"
	}
	sb.WriteString("SELECT ")
	sb.WriteString(fields)
	sb.WriteString(" FROM ")
	sb.WriteString(p.quote(table))
}

func writeTail(sb *strings.Builder, order, limit string) {
	if order != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(order)
	}
	if limit != "" {
		sb.WriteString(" LIMIT ")
		sb.WriteString(limit)
	}
}

// buildWhere 递归构建 WHERE 子句，占位符序号接在 args 已有参数之后
func (p *SQLParser) buildWhere(sb *strings.Builder, cond *types.ConditionExpr, args *[]interface{}) {
	if cond == nil {
		return
	}
	switch cond.Op {
	case types.OpAnd, types.OpOr:
		sep := " AND "
		if cond.Op == types.OpOr {
			sep = " OR "
		}
		first := true
		for _, expr := range cond.Exprs {
			if expr == nil {
				continue
			}
			if !first {
				sb.WriteString(sep)
			}
			sb.WriteByte('(')
			p.buildWhere(sb, expr, args)
			sb.WriteByte(')')
			first = false
		}
		if first {
			sb.WriteString("1=1")
		}
	case types.OpEq, types.OpNe, types.OpGt, types.OpGte, types.OpLt, types.OpLte, types.OpLike:
		sb.WriteString(p.quote(cond.Field))
		sb.WriteByte(' ')
		sb.WriteString(opStrMap[cond.Op])
		sb.WriteByte(' ')
		*args = append(*args, cond.Value)
		sb.WriteString(p.placeholder(len(*args)))
	case types.OpIn:
		if len(cond.Values) == 0 {
			sb.WriteString("1=0")
			return
		}
		sb.WriteString(p.quote(cond.Field))
		sb.WriteString(" IN (")
		for i, v := range cond.Values {
			if i > 0 {
				sb.WriteByte(',')
			}
			*args = append(*args, v)
			sb.WriteString(p.placeholder(len(*args)))
		}
		sb.WriteByte(')')
	case types.OpRaw:
		s, _ := cond.Value.(string)
		p.writeRaw(sb, s, cond.Values, args)
	}
}

// writeRaw 写入原始片段，引号外的 ? 依次替换为占位符并绑定 vals，引号内的 ? 原样保留
func (p *SQLParser) writeRaw(sb *strings.Builder, raw string, vals []interface{}, args *[]interface{}) {
	var quote byte
	next := 0
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '?' && next < len(vals):
			*args = append(*args, vals[next])
			next++
			sb.WriteString(p.placeholder(len(*args)))
			continue
		}
		sb.WriteByte(c)
	}
	// 多余的参数照常绑定，由数据库报告数量不符
	*args = append(*args, vals[next:]...)
}
