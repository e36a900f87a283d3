package sql

import (
	"testing"
	"time"

	"github.com/syssam/quill/schema"
)

var (
	benchID      = schema.NewColumn("id", schema.TypeInteger, schema.PrimaryKeyAutoincrement())
	benchName    = schema.NewColumn("name", schema.TypeText)
	benchAge     = schema.NewColumn("age", schema.TypeInteger)
	benchEmail   = schema.NewColumn("email", schema.TypeText)
	benchActive  = schema.NewColumn("active", schema.TypeBoolean)
	benchCreated = schema.NewColumn("created_at", schema.TypeTimestamp)
)

func benchScan(*Row) (struct{}, error) { return struct{}{}, nil }

func BenchmarkSelectRender_Simple(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := Select[struct{}]("table_user", benchScan, benchID, benchName, benchEmail)
		_ = s.SQL()
	}
}

func BenchmarkSelectRender_Filtered(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := Select[struct{}]("table_user", benchScan).
			Where(And(
				EQ(benchActive, Bool(true)),
				Or(GT(benchAge, Int(18)), EQ(benchName, Text("admin"))),
				In(benchAge, Int(21), Int(30), Int(41)),
				NotNull(benchEmail),
			)).
			OrderBy(Asc(benchCreated), Desc(benchName)).
			Limit(100)
		_ = s.SQL()
		_ = s.Values()
	}
}

func BenchmarkInsertRender(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := Insert[struct{}]("table_user",
			Assign(benchName, Text("ann")),
			Assign(benchAge, Int(30)),
			Assign(benchEmail, Text("ann@example.com")),
			Assign(benchActive, Bool(true)),
			Assign(benchCreated, Time(time.Unix(1700000000, 0))),
		)
		_ = s.SQL()
		_ = s.Values()
	}
}

func BenchmarkUpdateRender(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := Update[struct{}]("table_user",
			Assign(benchName, Text("ann")),
			Assign(benchAge, Int(31)),
			Assign(benchActive, Bool(false)),
		).Where(In(benchID, Int(1), Int(2), Int(3)))
		_ = s.SQL()
		_ = s.Values()
	}
}

func BenchmarkDeleteRender(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := Delete[struct{}]("table_user").Where(EQ(benchID, Int(1)))
		_ = s.SQL()
		_ = s.Values()
	}
}

func BenchmarkCountRender(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := Count[struct{}]("table_user").Where(LT(benchAge, Int(18)))
		_ = s.SQL()
	}
}

func BenchmarkExpression_Simple(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = EQ(benchName, Text("ann"))
		_ = NEQ(benchActive, Bool(false))
		_ = GT(benchAge, Int(18))
		_ = LT(benchAge, Int(65))
	}
}

func BenchmarkExpression_Compound(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		e := And(
			EQ(benchActive, Bool(true)),
			Or(GT(benchAge, Int(18)), EQ(benchName, Text("admin"))),
			In(benchEmail, Text("a@example.com"), Text("b@example.com")),
			Not(IsNull(benchCreated)),
		)
		_ = e.SQL()
		_ = e.Values()
	}
}

func BenchmarkCreateTableRender(b *testing.B) {
	columns := []schema.Column{benchID, benchName, benchAge, benchEmail, benchActive, benchCreated}
	constraints := []schema.Constraint{schema.Unique(benchName, benchEmail)}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = CreateTable("table_user", columns, constraints...)
	}
}
