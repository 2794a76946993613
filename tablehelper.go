// Package tablehelper 提供绑定单表的 CRUD 访问器。
//
// 每个 Table 在构造时按传入的 types.Config 立即建立一条独占连接，
// 连接失败返回 *types.ConnectionError，语句失败返回 *types.QueryError。
// where/order/limit/fields 文本原样拼接进语句，调用方需保证其安全；
// 需要参数绑定的条件请使用 Cond() 构建并调用 *Cond 系列方法。
//
// 本包不自动注册驱动，New 之前需注册所用驱动，否则返回 ErrDriverNotRegistered：
//
//	if err := mysql.Register(); err != nil { ... }
//	users, err := tablehelper.New(ctx, types.NewConfig("localhost", "testdb", "root", "pw", 3306), "users")
package tablehelper

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Kaguya154/tablehelper/types"
)

var ErrDriverNotRegistered = errors.New("driver not registered")

// 驱动注册表
var (
	registeredDriversMu sync.RWMutex
	registeredDrivers   = make(map[string]types.Driver)
)

// RegisterDriver 注册数据库驱动
func RegisterDriver(name string, drv types.Driver) error {
	registeredDriversMu.Lock()
	defer registeredDriversMu.Unlock()

	if name == "" {
		return fmt.Errorf("driver name cannot be empty")
	}
	if drv == nil {
		return fmt.Errorf("driver cannot be nil")
	}
	if _, exists := registeredDrivers[name]; exists {
		return fmt.Errorf("driver %s already registered", name)
	}

	registeredDrivers[name] = drv
	return nil
}

// GetDriver 获取注册的驱动
func GetDriver(name string) (types.Driver, error) {
	registeredDriversMu.RLock()
	defer registeredDriversMu.RUnlock()

	drv, ok := registeredDrivers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDriverNotRegistered, name)
	}
	return drv, nil
}

// Values 返回空的有序字段列表，用于 Insert/Update
func Values() types.Fields {
	return types.Fields{}
}

func Cond() *types.CondBuilder {
	return types.NewCondition()
}
