package types

import (
	"errors"
	"io"

	"github.com/jmoiron/sqlx"
)

// Rows 查询游标，逐行读取，不预先加载。
// 关闭前会一直占用所属 Table 的唯一连接。
type Rows struct {
	rows *sqlx.Rows
	stmt io.Closer
	cols []string
	wrap func(error) error
}

// NewRows 包装 sqlx 游标。stmt 在 Close 时一并关闭，可为 nil；
// wrap 用于将驱动错误转为调用方的错误类型，可为 nil。
func NewRows(rows *sqlx.Rows, stmt io.Closer, wrap func(error) error) *Rows {
	if wrap == nil {
		wrap = func(err error) error { return err }
	}
	return &Rows{rows: rows, stmt: stmt, wrap: wrap}
}

// Next 移动到下一行，返回是否有数据
func (r *Rows) Next() bool {
	return r.rows.Next()
}

// Columns 返回结果列名
func (r *Rows) Columns() ([]string, error) {
	if r.cols != nil {
		return r.cols, nil
	}
	cols, err := r.rows.Columns()
	if err != nil {
		return nil, r.wrap(err)
	}
	r.cols = cols
	return cols, nil
}

// Row 读取当前行
func (r *Rows) Row() (*Row, error) {
	cols, err := r.Columns()
	if err != nil {
		return nil, err
	}
	vals, err := r.rows.SliceScan()
	if err != nil {
		return nil, r.wrap(err)
	}
	return NewRow(cols, vals), nil
}

// Fetch 前进一行并读取，没有更多数据时返回 nil, nil
func (r *Rows) Fetch() (*Row, error) {
	if !r.Next() {
		return nil, r.Err()
	}
	return r.Row()
}

// FetchAll 读取剩余全部行并关闭游标
func (r *Rows) FetchAll() ([]*Row, error) {
	defer r.Close()
	result := []*Row{}
	for r.Next() {
		row, err := r.Row()
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Err 返回迭代过程中的错误
func (r *Rows) Err() error {
	if err := r.rows.Err(); err != nil {
		return r.wrap(err)
	}
	return nil
}

// Close 关闭游标和预处理语句，释放连接
func (r *Rows) Close() error {
	err := r.rows.Close()
	if r.stmt != nil {
		err = errors.Join(err, r.stmt.Close())
		r.stmt = nil
	}
	if err != nil {
		return r.wrap(err)
	}
	return nil
}
