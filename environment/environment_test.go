package environment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gqlengine/gql/types"
	"github.com/gqlengine/gql/value"
)

func testSchema() *Schema {
	s := NewSchema()
	s.AddTable("t", []string{"a", "b"}, map[string]types.Type{"a": types.Int, "b": types.Text})
	return s
}

func TestSchemaAddTableAndLookups(t *testing.T) {
	s := testSchema()
	require.True(t, s.HasTable("t"))
	require.False(t, s.HasTable("nope"))
	require.True(t, s.HasColumn("t", "a"))
	require.False(t, s.HasColumn("t", "z"))
	require.False(t, s.HasColumn("missing", "a"))
	require.Equal(t, []string{"t"}, s.TableNames())
	require.Equal(t, []string{"a", "b"}, s.ColumnNames("t"))
}

func TestRegisterAndLookupAreCaseInsensitive(t *testing.T) {
	e := New(testSchema())
	e.RegisterStandard("ABS", Signature{Return: types.Int}, func(args []value.Value) (value.Value, error) {
		return args[0], nil
	})

	sig, fn, ok := e.LookupStandard("abs")
	require.True(t, ok)
	require.Equal(t, types.Int, sig.Return)
	require.NotNil(t, fn)

	_, _, ok = e.LookupStandard("Abs")
	require.True(t, ok)
}

func TestIsAggregationAndIsWindow(t *testing.T) {
	e := New(testSchema())
	e.RegisterAggregation("sum", Signature{}, func(rows [][]value.Value) (value.Value, error) { return nil, nil })
	e.RegisterWindow("row_number", Signature{}, func(rows [][]value.Value) ([]value.Value, error) { return nil, nil })

	require.True(t, e.IsAggregation("SUM"))
	require.False(t, e.IsAggregation("row_number"))
	require.True(t, e.IsWindow("ROW_NUMBER"))
	require.False(t, e.IsWindow("sum"))
}

func TestFunctionNamesCombinesAllRegistries(t *testing.T) {
	e := New(testSchema())
	e.RegisterStandard("abs", Signature{}, nil)
	e.RegisterAggregation("sum", Signature{}, nil)
	e.RegisterWindow("row_number", Signature{}, nil)

	names := e.FunctionNames()
	require.ElementsMatch(t, []string{"abs", "sum", "row_number"}, names)
}

func TestScopeDefineResolveAndNames(t *testing.T) {
	e := New(testSchema())
	e.DefineScope("a", types.Int)

	ty, ok := e.ResolveScope("a")
	require.True(t, ok)
	require.Equal(t, types.Type(types.Int), ty)

	_, ok = e.ResolveScope("b")
	require.False(t, ok)
	require.Equal(t, []string{"a"}, e.ScopeNames())
}

func TestGlobalSetAndGet(t *testing.T) {
	e := New(testSchema())
	e.SetGlobal("k", value.IntValue(2), types.Int)

	v, ok := e.Global("k")
	require.True(t, ok)
	require.Equal(t, value.IntValue(2), v)

	_, ok = e.Global("missing")
	require.False(t, ok)
}

func TestResolveTypeScopeAndGlobal(t *testing.T) {
	e := New(testSchema())
	e.DefineScope("a", types.Int)
	e.SetGlobal("k", value.IntValue(1), types.Int)

	ty, err := e.ResolveType("a")
	require.NoError(t, err)
	require.Equal(t, types.Type(types.Int), ty)

	ty, err = e.ResolveType("@k")
	require.NoError(t, err)
	require.Equal(t, types.Type(types.Int), ty)
}

func TestResolveTypeUnknownSymbolAndGlobal(t *testing.T) {
	e := New(testSchema())

	_, err := e.ResolveType("missing")
	require.Error(t, err)

	_, err = e.ResolveType("@missing")
	require.Error(t, err)
}

func TestResolveTypeUnknownSymbolSuggestsSimilarName(t *testing.T) {
	e := New(testSchema())
	e.DefineScope("amount", types.Int)

	_, err := e.ResolveType("amoutn")
	require.Error(t, err)
	require.Contains(t, err.Error(), "amount")
}

func TestClearSessionKeepsGlobalsDropsScope(t *testing.T) {
	e := New(testSchema())
	e.DefineScope("a", types.Int)
	e.SetGlobal("k", value.IntValue(1), types.Int)

	e.ClearSession()

	_, ok := e.ResolveScope("a")
	require.False(t, ok)
	v, ok := e.Global("k")
	require.True(t, ok)
	require.Equal(t, value.IntValue(1), v)
}

func TestRegisterBuiltinsInstallsStandardFunctions(t *testing.T) {
	e := New(testSchema())
	e.RegisterBuiltins()

	require.True(t, e.IsAggregation("count"))
	require.True(t, e.IsAggregation("sum"))
	require.True(t, e.IsAggregation("avg"))
	require.True(t, e.IsAggregation("min"))
	require.True(t, e.IsAggregation("max"))
	require.True(t, e.IsWindow("row_number"))

	_, fn, ok := e.LookupStandard("abs")
	require.True(t, ok)
	v, err := fn([]value.Value{value.IntValue(-4)})
	require.NoError(t, err)
	require.Equal(t, value.IntValue(4), v)
}
