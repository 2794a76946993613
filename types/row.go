package types

import (
	"fmt"
	"strconv"
	"time"
)

// TimeLayout GetString 格式化 time.Time 列使用的格式
const TimeLayout = "2006-01-02 15:04:05"

// Row 单行结果，列顺序与查询返回顺序一致
type Row struct {
	cols []string
	data map[string]interface{}
}

func NewRow(cols []string, vals []interface{}) *Row {
	r := &Row{
		cols: cols,
		data: make(map[string]interface{}, len(cols)),
	}
	for i, col := range cols {
		if i < len(vals) {
			r.data[col] = vals[i]
		}
	}
	return r
}

// Columns 返回列名
func (r *Row) Columns() []string {
	return r.cols
}

// Len 返回列数
func (r *Row) Len() int {
	return len(r.cols)
}

// Get 原始取值
func (r *Row) Get(col string) interface{} {
	if r == nil {
		return nil
	}
	return r.data[col]
}

// GetString 取字符串
func (r *Row) GetString(col string) string {
	switch v := r.Get(col).(type) {
	case []byte:
		return string(v)
	case string:
		return v
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(TimeLayout)
	default:
		return fmt.Sprint(v)
	}
}

// GetInt 取整数
func (r *Row) GetInt(col string) int {
	return int(r.GetInt64(col))
}

// GetInt64 取 int64
func (r *Row) GetInt64(col string) int64 {
	switch v := r.Get(col).(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case int32:
		return int64(v)
	case uint64:
		return int64(v)
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	}
	return 0
}

// Map 返回列名到值的拷贝，[]byte 转为 string
func (r *Row) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.data))
	for k, v := range r.data {
		if b, ok := v.([]byte); ok {
			m[k] = string(b)
			continue
		}
		m[k] = v
	}
	return m
}
