package gql_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	gql "github.com/gqlengine/gql"
	"github.com/gqlengine/gql/environment"
	"github.com/gqlengine/gql/evaluator"
	"github.com/gqlengine/gql/object"
	"github.com/gqlengine/gql/provider"
	"github.com/gqlengine/gql/types"
	"github.com/gqlengine/gql/value"
)

// tTableProvider backs the §8 scenario table `t(a INT, b TEXT)` with rows
// (1,"x"), (2,"y"), (3,"y"), (4,"z"), (5,"z").
type tTableProvider struct{}

func (tTableProvider) Provide(table string, columns []string) ([]provider.Row, error) {
	a := []value.Value{value.IntValue(1), value.IntValue(2), value.IntValue(3), value.IntValue(4), value.IntValue(5)}
	b := []value.Value{value.TextValue("x"), value.TextValue("y"), value.TextValue("y"), value.TextValue("z"), value.TextValue("z")}
	cols := map[string][]value.Value{"a": a, "b": b}

	out := make([]provider.Row, len(a))
	for i := range a {
		values := make([]value.Value, len(columns))
		for ci, c := range columns {
			values[ci] = cols[c][i]
		}
		out[i] = provider.Row{Values: values}
	}
	return out, nil
}

func newTEngine() *gql.Engine {
	schema := environment.NewSchema()
	schema.AddTable("t", []string{"a", "b"}, map[string]types.Type{
		"a": types.Int,
		"b": types.Text,
	})
	return gql.New(schema, tTableProvider{})
}

func flatRows(obj *object.Object) [][]value.Value {
	obj.Flat()
	out := make([][]value.Value, len(obj.Groups[0].Rows))
	for i, r := range obj.Groups[0].Rows {
		out[i] = r.Values
	}
	return out
}

func TestScenario1WhereOrderLimit(t *testing.T) {
	results, err := newTEngine().Query("SELECT a FROM t WHERE a > 2 ORDER BY a DESC LIMIT 2")
	require.NoError(t, err)
	obj := results[0].Value.(*object.Object)
	require.Equal(t, []string{"a"}, obj.Titles)
	rows := flatRows(obj)
	require.Equal(t, []value.Value{value.IntValue(5)}, rows[0])
	require.Equal(t, []value.Value{value.IntValue(4)}, rows[1])
}

func TestScenario2GroupByCount(t *testing.T) {
	results, err := newTEngine().Query("SELECT b, COUNT(*) AS n FROM t GROUP BY b ORDER BY b")
	require.NoError(t, err)
	obj := results[0].Value.(*object.Object)
	require.Equal(t, []string{"b", "n"}, obj.Titles)
	rows := flatRows(obj)
	require.Equal(t, []value.Value{value.TextValue("x"), value.IntValue(1)}, rows[0])
	require.Equal(t, []value.Value{value.TextValue("y"), value.IntValue(2)}, rows[1])
	require.Equal(t, []value.Value{value.TextValue("z"), value.IntValue(2)}, rows[2])
}

func TestScenario3Having(t *testing.T) {
	results, err := newTEngine().Query("SELECT b, COUNT(*) AS n FROM t GROUP BY b HAVING COUNT(*) > 1 ORDER BY b")
	require.NoError(t, err)
	obj := results[0].Value.(*object.Object)
	rows := flatRows(obj)
	require.Len(t, rows, 2)
	require.Equal(t, []value.Value{value.TextValue("y"), value.IntValue(2)}, rows[0])
	require.Equal(t, []value.Value{value.TextValue("z"), value.IntValue(2)}, rows[1])
}

func TestScenario4Distinct(t *testing.T) {
	results, err := newTEngine().Query("SELECT DISTINCT b FROM t ORDER BY b")
	require.NoError(t, err)
	obj := results[0].Value.(*object.Object)
	rows := flatRows(obj)
	require.Equal(t, [][]value.Value{
		{value.TextValue("x")},
		{value.TextValue("y")},
		{value.TextValue("z")},
	}, rows)
}

func TestScenario5SetGlobal(t *testing.T) {
	results, err := newTEngine().Query("SET @k := 2; SELECT a FROM t WHERE a = @k")
	require.NoError(t, err)
	require.Len(t, results, 2)
	obj := results[1].Value.(*object.Object)
	rows := flatRows(obj)
	require.Equal(t, [][]value.Value{{value.IntValue(2)}}, rows)
}

func TestScenario6In(t *testing.T) {
	results, err := newTEngine().Query("SELECT a, a+1 AS next FROM t WHERE a IN (1,3,5) ORDER BY a")
	require.NoError(t, err)
	obj := results[0].Value.(*object.Object)
	rows := flatRows(obj)
	require.Equal(t, [][]value.Value{
		{value.IntValue(1), value.IntValue(2)},
		{value.IntValue(3), value.IntValue(4)},
		{value.IntValue(5), value.IntValue(6)},
	}, rows)
}

func TestScenario7Case(t *testing.T) {
	results, err := newTEngine().Query("SELECT CASE WHEN a<3 THEN 'lo' ELSE 'hi' END AS bucket FROM t ORDER BY a")
	require.NoError(t, err)
	obj := results[0].Value.(*object.Object)
	rows := flatRows(obj)
	require.Equal(t, [][]value.Value{
		{value.TextValue("lo")},
		{value.TextValue("lo")},
		{value.TextValue("hi")},
		{value.TextValue("hi")},
		{value.TextValue("hi")},
	}, rows)
}

func TestNullSafeEqComparison(t *testing.T) {
	results, err := newTEngine().Query("DO NULL <=> NULL, 1 <=> NULL, 2 <=> 2")
	require.NoError(t, err)
	vals := results[0].Value.([]value.Value)
	require.Equal(t, value.BoolValue(true), vals[0])
	require.Equal(t, value.BoolValue(false), vals[1])
	require.Equal(t, value.BoolValue(true), vals[2])
}

func TestDescribeAndShowTables(t *testing.T) {
	e := newTEngine()
	results, err := e.Query("SHOW TABLES")
	require.NoError(t, err)
	require.Equal(t, []string{"t"}, results[0].Value.([]string))

	results, err = e.Query("DESCRIBE t")
	require.NoError(t, err)
	rows := results[0].Value.([]evaluator.DescribeRow)
	require.Equal(t, []evaluator.DescribeRow{
		{Column: "a", Type: types.Int.Name()},
		{Column: "b", Type: types.Text.Name()},
	}, rows)
}
