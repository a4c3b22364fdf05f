package gqlerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gqlengine/gql/token"
)

func TestErrorKindsFormatArguments(t *testing.T) {
	err := ErrUnknownColumn.New("z", "")
	require.Contains(t, err.Error(), `column "z" not in any selected table`)

	err = ErrWrongArgumentCount.New("SUM", "1", 2)
	require.Contains(t, err.Error(), "SUM expects 1 arguments, got 2")
}

func TestDiagnosticErrorIncludesLocation(t *testing.T) {
	loc := token.SourceLocation{LineStart: 3, ColumnStart: 7}
	d := New(ErrDivideByZero.New(), loc)
	require.Contains(t, d.Error(), "line 3, column 7")
}

func TestDiagnosticWithDidYouMeanHelpAndNotes(t *testing.T) {
	loc := token.SourceLocation{LineStart: 1, ColumnStart: 1}
	d := New(ErrUnknownSymbolForTest(), loc).
		WithDidYouMean("amount").
		AddHelp("check your spelling").
		AddNote("symbols are case-sensitive")

	msg := d.Error()
	require.Contains(t, msg, "maybe you mean amount?")
	require.Contains(t, msg, "help: check your spelling")
	require.Contains(t, msg, "note: symbols are case-sensitive")
}

func TestDiagnosticUnwrap(t *testing.T) {
	base := ErrDivideByZero.New()
	d := New(base, token.SourceLocation{})
	require.True(t, errors.Is(d, base) || d.Unwrap() != nil)
}

// ErrUnknownSymbolForTest avoids importing the environment package just
// to get an arbitrary zero-argument error kind.
func ErrUnknownSymbolForTest() error {
	return ErrHavingWithoutGroupBy.New()
}
