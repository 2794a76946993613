package tablehelper

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Kaguya154/tablehelper/types"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// Table 绑定单表的访问器，持有一条独占连接。
// 同一 Table 上的语句串行执行；Select/Execute 返回的游标关闭前会占用该连接。
type Table struct {
	name   string
	target string
	driver types.Driver
	parser types.Parser
	db     *sqlx.DB
	log    zerolog.Logger
}

// New 创建绑定 table 的访问器，并按 cfg 立即建立连接。
// 驱动未注册、DSN 无效、无法连接时返回 *types.ConnectionError，不重试。
func New(ctx context.Context, cfg types.Config, table string, opts ...Option) (*Table, error) {
	t := &Table{
		name:   table,
		target: cfg.Target(),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log = t.log.With().Str("table", table).Str("target", t.target).Logger()

	if err := t.connect(ctx, cfg); err != nil {
		t.log.Error().Err(err).Msg("connect failed")
		return nil, err
	}
	t.log.Info().Str("driver", t.driver.Name()).Msg("connected")
	return t, nil
}

func (t *Table) connect(ctx context.Context, cfg types.Config) error {
	drv, err := GetDriver(cfg.DriverName())
	if err != nil {
		return t.connErr(err)
	}
	dsn, err := drv.DSN(cfg)
	if err != nil {
		return t.connErr(err)
	}
	db, err := sqlx.ConnectContext(ctx, drv.Name(), dsn)
	if err != nil {
		return t.connErr(err)
	}
	// 一个 Table 一条连接
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	t.driver = drv
	t.parser = drv.Parser()
	t.db = db
	return nil
}

// Name 返回绑定的表名
func (t *Table) Name() string {
	return t.name
}

// Close 关闭连接
func (t *Table) Close() error {
	if t.db == nil {
		return nil
	}
	err := t.db.Close()
	t.log.Info().Err(err).Msg("closed")
	return err
}

// Execute 准备并执行调用方编写的语句，按位置绑定 params，返回游标。
// 占位符可写作 ?，会按驱动转换（postgres 为 $n），语句中引号内的 ? 同样会被转换，
// 此时请直接使用驱动的占位符。调用方负责关闭游标。
func (t *Table) Execute(ctx context.Context, query string, params ...interface{}) (*types.Rows, error) {
	return t.query(ctx, t.db.Rebind(query), params...)
}

// ExecuteNamed 同 Execute，参数以 :name 占位符按名称绑定
func (t *Table) ExecuteNamed(ctx context.Context, query string, params map[string]interface{}) (*types.Rows, error) {
	compiled, args, err := sqlx.Named(query, params)
	if err != nil {
		return nil, t.queryErr(query, err)
	}
	return t.Execute(ctx, compiled, args...)
}

// Exec 准备并执行不返回行的语句，占位符规则同 Execute
func (t *Table) Exec(ctx context.Context, query string, params ...interface{}) (sql.Result, error) {
	return t.exec(ctx, t.db.Rebind(query), params...)
}

// query 执行已使用驱动占位符的语句，不改写文本
func (t *Table) query(ctx context.Context, query string, params ...interface{}) (*types.Rows, error) {
	stmt, err := t.prepare(ctx, query, len(params))
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryxContext(ctx, params...)
	if err != nil {
		_ = stmt.Close()
		return nil, t.queryErr(query, err)
	}
	return types.NewRows(rows, stmt, func(err error) error {
		return t.queryErr(query, err)
	}), nil
}

func (t *Table) exec(ctx context.Context, query string, params ...interface{}) (sql.Result, error) {
	stmt, err := t.prepare(ctx, query, len(params))
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, params...)
	if err != nil {
		return nil, t.queryErr(query, err)
	}
	return res, nil
}

func (t *Table) prepare(ctx context.Context, query string, nargs int) (*sqlx.Stmt, error) {
	t.log.Debug().Str("query", query).Int("args", nargs).Msg("execute")
	stmt, err := t.db.PreparexContext(ctx, query)
	if err != nil {
		return nil, t.queryErr(query, err)
	}
	return stmt, nil
}

// Insert 插入一行，字段顺序即绑定顺序，返回自增主键。
// 表没有自增列时返回值由驱动决定（通常为 0）。
func (t *Table) Insert(ctx context.Context, values types.Fields) (int64, error) {
	query, args, err := t.parser.Insert(t.name, values)
	if err != nil {
		return 0, t.queryErr(query, err)
	}

	if t.driver.ReturningID() {
		rows, err := t.query(ctx, query, args...)
		if err != nil {
			return 0, err
		}
		defer rows.Close()
		row, err := rows.Fetch()
		if err != nil || row == nil {
			return 0, err
		}
		return row.GetInt64(row.Columns()[0]), nil
	}

	res, err := t.exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.log.Debug().Err(err).Msg("last insert id unavailable")
		return 0, nil
	}
	return id, nil
}

// Select 查询，where/order/limit/fields 为原始 SQL 片段，空值省略对应子句，
// fields 为空时为 *。返回游标，调用方负责关闭。
func (t *Table) Select(ctx context.Context, where, order, limit, fields string) (*types.Rows, error) {
	return t.query(ctx, t.parser.Select(t.name, where, order, limit, fields))
}

// SelectCond 使用结构化条件查询，条件中的值全部参数绑定
func (t *Table) SelectCond(ctx context.Context, cond *types.ConditionExpr, order, limit, fields string) (*types.Rows, error) {
	query, args, err := t.parser.SelectCond(t.name, cond, order, limit, fields)
	if err != nil {
		return nil, t.queryErr(query, err)
	}
	return t.query(ctx, query, args...)
}

// Update 更新满足 where 的行，返回影响行数。where 为原始 SQL 片段。
func (t *Table) Update(ctx context.Context, where string, values types.Fields) (int64, error) {
	query, args, err := t.parser.Update(t.name, where, values)
	if err != nil {
		return 0, t.queryErr(query, err)
	}
	return t.affected(ctx, query, args)
}

// UpdateCond 使用结构化条件更新，cond 不能为空
func (t *Table) UpdateCond(ctx context.Context, cond *types.ConditionExpr, values types.Fields) (int64, error) {
	query, args, err := t.parser.UpdateCond(t.name, cond, values)
	if err != nil {
		return 0, t.queryErr(query, err)
	}
	return t.affected(ctx, query, args)
}

// Delete 删除满足 where 的行，返回影响行数。
// where 不做检查，空串会生成不完整的语句并由数据库报错。
func (t *Table) Delete(ctx context.Context, where string) (int64, error) {
	if strings.TrimSpace(where) == "" {
		t.log.Warn().Msg("delete without where clause")
	}
	return t.affected(ctx, t.parser.Delete(t.name, where), nil)
}

// DeleteCond 使用结构化条件删除，cond 不能为空
func (t *Table) DeleteCond(ctx context.Context, cond *types.ConditionExpr) (int64, error) {
	query, args, err := t.parser.DeleteCond(t.name, cond)
	if err != nil {
		return 0, t.queryErr(query, err)
	}
	return t.affected(ctx, query, args)
}

// Find 按 id 查询单行，fields 为空时为 *。不存在时返回 nil, nil。
func (t *Table) Find(ctx context.Context, id interface{}, fields string) (*types.Row, error) {
	rows, err := t.query(ctx, t.parser.Find(t.name, fields), id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return rows.Fetch()
}

func (t *Table) affected(ctx context.Context, query string, args []interface{}) (int64, error) {
	res, err := t.exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		t.log.Debug().Err(err).Msg("rows affected unavailable")
		return 0, nil
	}
	return n, nil
}

func (t *Table) connErr(err error) error {
	return &types.ConnectionError{Target: t.target, Err: err}
}

func (t *Table) queryErr(query string, err error) error {
	t.log.Error().Err(err).Str("query", query).Msg("query failed")
	return &types.QueryError{Query: query, Err: err}
}
