// Package function is the thin registry-shape surface spec calls the
// "Function Library Surface": the three callable signatures the
// environment's registries hold, with no built-in implementations of
// its own beyond the small reference set in builtins.go needed to make
// end-to-end query scenarios runnable without an embedder.
package function

import (
	"github.com/gqlengine/gql/types"
	"github.com/gqlengine/gql/value"
)

// Standard is a scalar function: arguments in, one value out.
type Standard func(args []value.Value) (value.Value, error)

// Aggregation receives one outer entry per row in the group, each inner
// slice the tuple of argument values evaluated for that row, and
// collapses them to a single value.
type Aggregation func(rows [][]value.Value) (value.Value, error)

// Window is the same input shape as Aggregation; the returned slice's
// length must equal the input length ("pure" window function), or be a
// single value meant to be broadcast across the whole frame
// ("aggregated" window function) — callers distinguish the two by
// comparing len(result) to len(rows).
type Window func(rows [][]value.Value) ([]value.Value, error)

// Signature is a function's declared parameter/return types, shared by
// all three registries. Parameters may end in an types.OptionalType
// sequence followed by at most one types.VarargsType.
type Signature struct {
	Parameters []types.Type
	Return     types.Type
}
