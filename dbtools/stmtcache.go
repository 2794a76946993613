package dbtools

import (
	"strconv"
	"strings"
	"sync"

	"github.com/Kaguya154/tablehelper/types"
)

var globalStmtCache sync.Map

// SetStmtCache 缓存生成的语句文本。语句文本只取决于驱动、操作、表名和字段形状，
// 与绑定值无关，因此可以跨 Table 实例共享。
func SetStmtCache(driverID uint8, op types.OpType, table string, shape []string, sql string) {
	globalStmtCache.Store(MakeStmtCacheKey(driverID, op, table, shape), sql)
}

func GetStmtCache(driverID uint8, op types.OpType, table string, shape []string) (string, bool) {
	val, ok := globalStmtCache.Load(MakeStmtCacheKey(driverID, op, table, shape))
	if !ok {
		return "", false
	}
	return val.(string), true
}

// ResetStmtCache 清空缓存
func ResetStmtCache() {
	globalStmtCache.Range(func(key, _ any) bool {
		globalStmtCache.Delete(key)
		return true
	})
}

// MakeStmtCacheKey 生成缓存键，各部分以 \x00 分隔以避免拼接歧义
func MakeStmtCacheKey(driverID uint8, op types.OpType, table string, shape []string) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(int(driverID)))
	sb.WriteByte(0)
	sb.WriteString(op.String())
	sb.WriteByte(0)
	sb.WriteString(table)
	for _, s := range shape {
		sb.WriteByte(0)
		sb.WriteString(s)
	}
	return sb.String()
}
