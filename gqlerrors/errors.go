// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package gqlerrors defines the four error families of the query engine
// (lex, parse, semantic, runtime) plus the Diagnostic type that pins an
// error to a source span with optional notes, help text and a
// did-you-mean suggestion.
package gqlerrors

import (
	"fmt"

	"github.com/gqlengine/gql/token"
	"gopkg.in/src-d/go-errors.v1"
)

// Lex errors.
var (
	ErrUnterminatedString  = errors.NewKind("unterminated string literal")
	ErrUnterminatedBacktick = errors.NewKind("unterminated backtick-quoted identifier")
	ErrUnterminatedComment = errors.NewKind("unterminated block comment")
	ErrMissingDigitsAfterBase = errors.NewKind("expected digits after numeric base prefix %q")
	ErrIntegerOverflow     = errors.NewKind("integer literal %q overflows a 64-bit integer")
	ErrFloatOutOfRange     = errors.NewKind("float literal %q is out of range")
	ErrUnknownCharacter    = errors.NewKind("unexpected character %q")
)

// Parse errors.
var (
	ErrUnexpectedToken  = errors.NewKind("expected %s, found %s")
	ErrExpectedKeyword  = errors.NewKind("expected %s after %s")
	ErrClauseDefinedTwice = errors.NewKind("%s clause is defined more than once")
	ErrUnsupportedFeature = errors.NewKind("unsupported feature: %s")
)

// Semantic / type-check errors.
var (
	ErrUnknownTable      = errors.NewKind("table %q does not exist%s")
	ErrUnknownColumn     = errors.NewKind("column %q not in any selected table%s")
	ErrOperatorNotSupported = errors.NewKind("operator %s can't be performed between %s and %s")
	ErrWrongArgumentCount = errors.NewKind("function %s expects %s arguments, got %d")
	ErrArgumentTypeMismatch = errors.NewKind("function %s argument %d expects type %s, got %s")
	ErrAggregationInWhere = errors.NewKind("aggregation function %s can't be used in a WHERE clause")
	ErrHavingWithoutGroupBy = errors.NewKind("HAVING clause requires a GROUP BY clause")
	ErrHiddenColumnNotSelected = errors.NewKind("column %q referenced in %s is not selected and can't be added implicitly")
	ErrMixedTypesInList = errors.NewKind("all values in %s must share the same type, found %s and %s")
)

// Runtime errors.
var (
	ErrIntegerOverflowOp = errors.NewKind("arithmetic overflow evaluating %s")
	ErrDivideByZero      = errors.NewKind("division or modulus by zero")
	ErrIndexOutOfRange   = errors.NewKind("index %d out of range for array of length %d")
	ErrRegexCompile      = errors.NewKind("invalid regular expression %q: %s")
	ErrCastFailure       = errors.NewKind("can't cast %s to %s")
	ErrProviderFailure   = errors.NewKind("data provider failed for table %q: %s")
)

// Diagnostic carries a single error with its source location and optional
// explanatory notes, a help suggestion and a did-you-mean candidate.
type Diagnostic struct {
	Err        error
	Location   token.SourceLocation
	Notes      []string
	Help       string
	DidYouMean string
}

func New(err error, loc token.SourceLocation) *Diagnostic {
	return &Diagnostic{Err: err, Location: loc}
}

func (d *Diagnostic) AddNote(note string) *Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

func (d *Diagnostic) AddHelp(help string) *Diagnostic {
	d.Help = help
	return d
}

func (d *Diagnostic) WithDidYouMean(name string) *Diagnostic {
	d.DidYouMean = name
	return d
}

func (d *Diagnostic) Error() string {
	msg := fmt.Sprintf("%s (line %d, column %d)", d.Err.Error(), d.Location.LineStart, d.Location.ColumnStart)
	if d.DidYouMean != "" {
		msg += fmt.Sprintf(", maybe you mean %s?", d.DidYouMean)
	}
	if d.Help != "" {
		msg += "\nhelp: " + d.Help
	}
	for _, n := range d.Notes {
		msg += "\nnote: " + n
	}
	return msg
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}
