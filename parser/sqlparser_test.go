package parser

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/Kaguya154/tablehelper/dbtools"
	"github.com/Kaguya154/tablehelper/types"
)

func quoteSql(field string) string {
	return "`" + field + "`"
}

func newTestParser() *SQLParser {
	return &SQLParser{
		DriverName: "mysql",
		DriverID:   1,
		QuoteFunc:  quoteSql,
	}
}

func mockSqlComplexCondition() *types.ConditionExpr {
	return &types.ConditionExpr{
		Op: types.OpOr,
		Exprs: []*types.ConditionExpr{
			{
				Op: types.OpAnd,
				Exprs: []*types.ConditionExpr{
					{Op: types.OpEq, Field: "status", Value: "active"},
					{Op: types.OpGt, Field: "age", Value: 18},
				},
			},
			{
				Op: types.OpAnd,
				Exprs: []*types.ConditionExpr{
					{Op: types.OpEq, Field: "status", Value: "pending"},
					{Op: types.OpLt, Field: "age", Value: 18},
				},
			},
			{Op: types.OpIn, Field: "role", Values: []interface{}{"admin", "user"}},
			{Op: types.OpLike, Field: "email", Value: "%@example.com"},
		},
	}
}

func TestInsert(t *testing.T) {
	p := newTestParser()
	values := types.Fields{}.Set("name", "Alice").Set("age", 30)

	// 第二次走缓存，结果应一致
	for i := 0; i < 2; i++ {
		sqlStr, args, err := p.Insert("users", values)
		if err != nil {
			t.Fatalf("生成插入语句失败: %v", err)
		}
		if want := "INSERT INTO `users` (`name`,`age`) VALUES (?,?)"; sqlStr != want {
			t.Fatalf("插入语句错误: got %q, want %q", sqlStr, want)
		}
		if !reflect.DeepEqual(args, []interface{}{"Alice", 30}) {
			t.Fatalf("插入参数错误: %v", args)
		}
	}
}

func TestInsertReturning(t *testing.T) {
	p := &SQLParser{
		DriverName: "postgres",
		DriverID:   2,
		QuoteFunc:  func(s string) string { return "\"" + s + "\"" },
		Returning:  "id",
	}
	sqlStr, _, err := p.Insert("public.users", types.Fields{}.Set("name", "Alice"))
	if err != nil {
		t.Fatalf("生成插入语句失败: %v", err)
	}
	if want := `INSERT INTO "public"."users" ("name") VALUES (?) RETURNING "id"`; sqlStr != want {
		t.Fatalf("插入语句错误: got %q, want %q", sqlStr, want)
	}
}

func TestInsertNoFields(t *testing.T) {
	if _, _, err := newTestParser().Insert("users", nil); err != types.ErrNoFields {
		t.Fatalf("空字段应返回 ErrNoFields, got %v", err)
	}
}

func TestSelect(t *testing.T) {
	p := newTestParser()
	cases := []struct {
		where, order, limit, fields string
		want                        string
	}{
		{"", "", "", "", "SELECT * FROM `users`"},
		{"age > 18", "", "", "", "SELECT * FROM `users` WHERE age > 18"},
		{"", "name DESC", "10", "id,name", "SELECT id,name FROM `users` ORDER BY name DESC LIMIT 10"},
		{"id=1", "id", "0,5", "*", "SELECT * FROM `users` WHERE id=1 ORDER BY id LIMIT 0,5"},
	}
	for _, c := range cases {
		if got := p.Select("users", c.where, c.order, c.limit, c.fields); got != c.want {
			t.Errorf("查询语句错误: got %q, want %q", got, c.want)
		}
	}
}

func TestSelectCond(t *testing.T) {
	p := newTestParser()
	sqlStr, args, err := p.SelectCond("users", mockSqlComplexCondition(), "id", "", "")
	if err != nil {
		t.Fatalf("生成查询语句失败: %v", err)
	}
	want := "SELECT * FROM `users` WHERE ((`status` = ?) AND (`age` > ?)) OR ((`status` = ?) AND (`age` < ?)) OR (`role` IN (?,?)) OR (`email` LIKE ?) ORDER BY id"
	if sqlStr != want {
		t.Fatalf("查询语句错误:\n got %q\nwant %q", sqlStr, want)
	}
	wantArgs := []interface{}{"active", 18, "pending", 18, "admin", "user", "%@example.com"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("查询参数错误: %v", args)
	}
}

func TestUpdate(t *testing.T) {
	p := newTestParser()
	sqlStr, args, err := p.Update("users", "id=7", types.Fields{}.Set("age", 31).Set("name", "Bob"))
	if err != nil {
		t.Fatalf("生成更新语句失败: %v", err)
	}
	if want := "UPDATE `users` SET `age`=?,`name`=? WHERE id=7"; sqlStr != want {
		t.Fatalf("更新语句错误: got %q, want %q", sqlStr, want)
	}
	if !reflect.DeepEqual(args, []interface{}{31, "Bob"}) {
		t.Fatalf("更新参数错误: %v", args)
	}
}

func TestUpdateCond(t *testing.T) {
	p := newTestParser()
	cond := &types.ConditionExpr{Op: types.OpEq, Field: "name", Value: "Tom"}
	sqlStr, args, err := p.UpdateCond("users", cond, types.Fields{}.Set("age", 21))
	if err != nil {
		t.Fatalf("生成更新语句失败: %v", err)
	}
	if want := "UPDATE `users` SET `age`=? WHERE `name` = ?"; sqlStr != want {
		t.Fatalf("更新语句错误: got %q, want %q", sqlStr, want)
	}
	if !reflect.DeepEqual(args, []interface{}{21, "Tom"}) {
		t.Fatalf("更新参数错误, SET 参数应在前: %v", args)
	}
	if _, _, err := p.UpdateCond("users", nil, types.Fields{}.Set("age", 21)); err != types.ErrNoCondition {
		t.Fatalf("空条件应返回 ErrNoCondition, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	p := newTestParser()
	if got, want := p.Delete("users", "id=7"), "DELETE FROM `users` WHERE id=7"; got != want {
		t.Fatalf("删除语句错误: got %q, want %q", got, want)
	}
	cond := &types.ConditionExpr{Op: types.OpIn, Field: "id"}
	sqlStr, args, err := p.DeleteCond("users", cond)
	if err != nil {
		t.Fatalf("生成删除语句失败: %v", err)
	}
	if want := "DELETE FROM `users` WHERE 1=0"; sqlStr != want || len(args) != 0 {
		t.Fatalf("空 IN 应恒为假: got %q %v", sqlStr, args)
	}
}

func TestFind(t *testing.T) {
	p := newTestParser()
	if got, want := p.Find("users", ""), "SELECT * FROM `users` WHERE id = ?"; got != want {
		t.Fatalf("按 id 查询语句错误: got %q, want %q", got, want)
	}
	if got, want := p.Find("users", "name"), "SELECT name FROM `users` WHERE id = ?"; got != want {
		t.Fatalf("按 id 查询语句错误: got %q, want %q", got, want)
	}
	if _, ok := dbtools.GetStmtCache(1, types.OpFind, "users", p.shape("name")); !ok {
		t.Fatalf("按 id 查询语句缓存未命中")
	}

	// 字段文本原样保留，不解析其中的冒号
	fields := "name, '12:30' AS at, DATE_FORMAT(created,'%H:%i') AS hm"
	if got, want := p.Find("users", fields), "SELECT "+fields+" FROM `users` WHERE id = ?"; got != want {
		t.Fatalf("字段文本被改写: got %q", got)
	}
}

func newDollarParser() *SQLParser {
	return &SQLParser{
		DriverName:      "postgres",
		DriverID:        3,
		QuoteFunc:       func(s string) string { return "\"" + s + "\"" },
		PlaceholderFunc: func(n int) string { return "$" + strconv.Itoa(n) },
	}
}

func TestDollarPlaceholders(t *testing.T) {
	p := newDollarParser()

	sqlStr, _, err := p.Insert("users", types.Fields{}.Set("name", "Alice").Set("age", 30))
	if err != nil || sqlStr != `INSERT INTO "users" ("name","age") VALUES ($1,$2)` {
		t.Fatalf("插入语句错误: %q %v", sqlStr, err)
	}

	// SET 参数在前，条件参数序号接续
	cond := types.NewCondition().Eq("name", "Tom").In("role", "a", "b").Build()
	sqlStr, args, err := p.UpdateCond("users", cond, types.Fields{}.Set("age", 21))
	if err != nil {
		t.Fatalf("生成更新语句失败: %v", err)
	}
	if want := `UPDATE "users" SET "age"=$1 WHERE ("name" = $2) AND ("role" IN ($3,$4))`; sqlStr != want {
		t.Fatalf("更新语句错误:\n got %q\nwant %q", sqlStr, want)
	}
	if !reflect.DeepEqual(args, []interface{}{21, "Tom", "a", "b"}) {
		t.Fatalf("更新参数错误: %v", args)
	}

	if got := p.Find("users", ""); got != `SELECT * FROM "users" WHERE id = $1` {
		t.Fatalf("按 id 查询语句错误: %q", got)
	}
}

func TestRawTextKeepsQuestionMark(t *testing.T) {
	p := newDollarParser()

	// 原始 where 文本原样拼接
	if got, want := p.Select("users", "name = 'who?'", "", "", ""), `SELECT * FROM "users" WHERE name = 'who?'`; got != want {
		t.Fatalf("查询语句被改写: got %q", got)
	}
	if got, want := p.Delete("users", "name = 'who?'"), `DELETE FROM "users" WHERE name = 'who?'`; got != want {
		t.Fatalf("删除语句被改写: got %q", got)
	}
	sqlStr, _, err := p.Update("users", "name = 'who?'", types.Fields{}.Set("age", 1))
	if err != nil || sqlStr != `UPDATE "users" SET "age"=$1 WHERE name = 'who?'` {
		t.Fatalf("更新语句错误: %q %v", sqlStr, err)
	}

	// Raw 条件只替换引号外的 ?
	cond := types.NewCondition().Eq("age", 3).Raw("note <> 'why?' AND name = ?", "Bob").Build()
	sqlStr, args, err := p.SelectCond("users", cond, "", "", "")
	if err != nil {
		t.Fatalf("生成查询语句失败: %v", err)
	}
	if want := `SELECT * FROM "users" WHERE ("age" = $1) AND (note <> 'why?' AND name = $2)`; sqlStr != want {
		t.Fatalf("查询语句错误:\n got %q\nwant %q", sqlStr, want)
	}
	if !reflect.DeepEqual(args, []interface{}{3, "Bob"}) {
		t.Fatalf("查询参数错误: %v", args)
	}
}

func TestCacheSeparatesReturning(t *testing.T) {
	plain := &SQLParser{DriverID: 4, QuoteFunc: quoteSql}
	returning := &SQLParser{DriverID: 4, QuoteFunc: quoteSql, Returning: "id"}
	values := types.Fields{}.Set("name", "Alice")

	a, _, _ := plain.Insert("users", values)
	b, _, _ := returning.Insert("users", values)
	if a != "INSERT INTO `users` (`name`) VALUES (?)" || b != "INSERT INTO `users` (`name`) VALUES (?) RETURNING `id`" {
		t.Fatalf("不同 RETURNING 的解析器共享了缓存: %q %q", a, b)
	}
}

func TestRawCondition(t *testing.T) {
	p := newTestParser()
	cond := &types.ConditionExpr{Op: types.OpRaw, Value: "age BETWEEN ? AND ?", Values: []interface{}{18, 30}}
	sqlStr, args, err := p.SelectCond("users", cond, "", "", "")
	if err != nil {
		t.Fatalf("生成查询语句失败: %v", err)
	}
	if want := "SELECT * FROM `users` WHERE age BETWEEN ? AND ?"; sqlStr != want {
		t.Fatalf("查询语句错误: got %q", sqlStr)
	}
	if !reflect.DeepEqual(args, []interface{}{18, 30}) {
		t.Fatalf("查询参数错误: %v", args)
	}
}

func BenchmarkSqlParseUpdate(b *testing.B) {
	p := newTestParser()
	values := types.Fields{}.Set("age", 20).Set("name", "test")

	b.Run("Cached", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _, err := p.Update("users", "id=1", values)
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
		}
	})

	b.Run("Uncached", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			dbtools.ResetStmtCache()
			_, _, err := p.Update("users", "id=1", values)
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
		}
	})
}

func BenchmarkSqlParseComplexCond(b *testing.B) {
	p := newTestParser()
	where := mockSqlComplexCondition()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, err := p.SelectCond("users", where, "", "", "")
		if err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}
