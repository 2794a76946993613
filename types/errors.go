package types

import "errors"

const errPrefix = "ERROR: "

var (
	// ErrNoFields INSERT/UPDATE 没有任何字段
	ErrNoFields = errors.New("no fields to write")
	// ErrNoCondition 结构化条件为空
	ErrNoCondition = errors.New("condition cannot be empty")
)

// ConnectionError 建立连接失败。Error() 为 "ERROR: " 加底层错误信息。
type ConnectionError struct {
	Target string
	Err    error
}

func (e *ConnectionError) Error() string {
	return errPrefix + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// QueryError 语句准备或执行失败。Error() 为 "ERROR: " 加底层错误信息。
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return errPrefix + e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
