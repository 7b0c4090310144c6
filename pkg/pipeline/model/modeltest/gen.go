// Package modeltest provides rapid generators for model values and sequences.
package modeltest

import (
	"pgregory.net/rapid"

	"github.com/askiada/go-aggregation/pkg/pipeline/model"
)

const maxDepth = 3

// Scalar generates null, bool, number and string values. Strings stay within
// a plain alphabet so they survive every codec unchanged.
func Scalar() *rapid.Generator[model.Value] {
	return rapid.OneOf(
		rapid.Just(model.Null()),
		rapid.Map(rapid.Bool(), model.Bool),
		rapid.Map(rapid.Int64Range(-1<<40, 1<<40), model.Int),
		rapid.Map(rapid.Float64Range(-1e6, 1e6), model.Number),
		rapid.Map(Key(), model.String),
	)
}

// Key generates document keys.
func Key() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-zA-Z_][a-zA-Z0-9_.]{0,8}`)
}

// Operator generates sigil-prefixed operator names.
func Operator() *rapid.Generator[string] {
	return rapid.StringMatching(`\$[a-zA-Z]{1,10}`)
}

// Value generates arbitrary values nested at most a few levels deep.
func Value() *rapid.Generator[model.Value] {
	return valueAt(0)
}

func valueAt(depth int) *rapid.Generator[model.Value] {
	return rapid.Custom(func(t *rapid.T) model.Value {
		if depth >= maxDepth {
			return Scalar().Draw(t, "scalar")
		}

		switch rapid.IntRange(0, 2).Draw(t, "shape") {
		case 0:
			return Scalar().Draw(t, "scalar")
		case 1:
			return model.List(rapid.SliceOfN(valueAt(depth+1), 0, 4).Draw(t, "items")...)
		default:
			return documentAt(depth + 1).Draw(t, "document")
		}
	})
}

// Document generates documents with any keys.
func Document() *rapid.Generator[model.Value] {
	return documentAt(0)
}

func documentAt(depth int) *rapid.Generator[model.Value] {
	return rapid.Custom(func(t *rapid.T) model.Value {
		n := rapid.IntRange(0, 4).Draw(t, "fields")

		fields := make([]model.Field, n)
		for i := range fields {
			fields[i] = model.F(Key().Draw(t, "key"), valueAt(depth).Draw(t, "value"))
		}

		return model.Doc(fields...)
	})
}

// Stage generates a single-operator document.
func Stage() *rapid.Generator[model.Value] {
	return rapid.Custom(func(t *rapid.T) model.Value {
		return model.Doc(model.F(Operator().Draw(t, "operator"), valueAt(1).Draw(t, "argument")))
	})
}

// Sequence generates strictly valid sequences of 1 to maxLen stages.
func Sequence(maxLen int) *rapid.Generator[model.Sequence] {
	return rapid.Custom(func(t *rapid.T) model.Sequence {
		return model.Sequence(rapid.SliceOfN(Stage(), 1, maxLen).Draw(t, "stages"))
	})
}

// AnySequence generates sequences of arbitrary values, possibly empty.
func AnySequence(maxLen int) *rapid.Generator[model.Sequence] {
	return rapid.Custom(func(t *rapid.T) model.Sequence {
		return model.Sequence(rapid.SliceOfN(Value(), 0, maxLen).Draw(t, "stages"))
	})
}
