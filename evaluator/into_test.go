package evaluator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gqlengine/gql/ast"
	"github.com/gqlengine/gql/object"
	"github.com/gqlengine/gql/value"
)

func objFor(into *ast.IntoStatement) *object.Object {
	return &object.Object{
		Titles: []string{"a", "b"},
		Groups: []object.Group{{Rows: []object.Row{
			{Values: []value.Value{value.IntValue(1), value.TextValue("x")}},
			{Values: []value.Value{value.IntValue(2), value.TextValue("y")}},
		}}},
	}
}

func TestWriteOutfileDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	into := &ast.IntoStatement{Kind: ast.IntoOutfile, Path: path}
	require.NoError(t, writeInto(into, objFor(into)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "1,x\n2,y\n", string(data))
}

func TestWriteOutfileCustomTerminatorsAndEnclosure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	into := &ast.IntoStatement{
		Kind:               ast.IntoOutfile,
		Path:               path,
		FieldsTerminatedBy: "|",
		LinesTerminatedBy:  ";",
		Enclosed:           `"`,
	}
	require.NoError(t, writeInto(into, objFor(into)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, `"1"|"x";"2"|"y";`, string(data))
}

func TestWriteDumpfileSingleRowNoDelimiters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.dump")
	into := &ast.IntoStatement{Kind: ast.IntoDumpfile, Path: path}
	require.NoError(t, writeInto(into, objFor(into)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "1x", string(data))
}

func TestWriteIntoCreateFailure(t *testing.T) {
	into := &ast.IntoStatement{Kind: ast.IntoOutfile, Path: filepath.Join(t.TempDir(), "missing-dir", "out.csv")}
	err := writeInto(into, objFor(into))
	require.Error(t, err)
}
