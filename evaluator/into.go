package evaluator

import (
	"bufio"
	"os"
	"strings"

	"github.com/gqlengine/gql/ast"
	"github.com/gqlengine/gql/object"
	"github.com/pkg/errors"
)

// writeInto serves the INTO OUTFILE/DUMPFILE clause: it writes obj's
// flat row set to the filesystem as a side effect and returns obj
// unchanged, since INTO doesn't filter or reshape the result set itself.
//
// Filesystem failures here are operational, not query diagnostics (no
// source span pins them to a token the way a runtime evaluation error
// does), so they're wrapped with pkg/errors for a stack trace instead of
// gqlerrors' Diagnostic.
func writeInto(into *ast.IntoStatement, obj *object.Object) error {
	obj.Flat()

	f, err := os.Create(into.Path)
	if err != nil {
		return errors.Wrapf(err, "into: can't create %q", into.Path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	switch into.Kind {
	case ast.IntoDumpfile:
		return writeDumpfile(w, obj)
	default:
		return writeOutfile(w, into, obj)
	}
}

// writeDumpfile concatenates every field of a single row with no
// delimiters, MySQL DUMPFILE's "exactly one row" semantics.
func writeDumpfile(w *bufio.Writer, obj *object.Object) error {
	rows := obj.Groups[0].Rows
	if len(rows) == 0 {
		return nil
	}
	for _, v := range rows[0].Values {
		if _, err := w.WriteString(v.String()); err != nil {
			return errors.Wrap(err, "into: write failed")
		}
	}
	return nil
}

// writeOutfile emits one delimited line per row, honoring
// FieldsTerminatedBy/Enclosed/LinesTerminatedBy, each defaulting to
// MySQL's own defaults (comma fields, no enclosure, newline lines) when
// the clause left them unset.
func writeOutfile(w *bufio.Writer, into *ast.IntoStatement, obj *object.Object) error {
	fieldsSep := into.FieldsTerminatedBy
	if fieldsSep == "" {
		fieldsSep = ","
	}
	linesSep := into.LinesTerminatedBy
	if linesSep == "" {
		linesSep = "\n"
	}

	var sb strings.Builder
	for _, r := range obj.Groups[0].Rows {
		sb.Reset()
		for i, v := range r.Values {
			if i > 0 {
				sb.WriteString(fieldsSep)
			}
			if into.Enclosed != "" {
				sb.WriteString(into.Enclosed)
			}
			sb.WriteString(v.String())
			if into.Enclosed != "" {
				sb.WriteString(into.Enclosed)
			}
		}
		sb.WriteString(linesSep)
		if _, err := w.WriteString(sb.String()); err != nil {
			return errors.Wrap(err, "into: write failed")
		}
	}
	return nil
}
