package model

// Sequence is an ordered list of stages. Order defines execution order in the
// downstream engine and an operator may appear more than once.
type Sequence []Value

// Clone returns a deep copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}

	out := make(Sequence, len(s))
	for i, stage := range s {
		out[i] = stage.Clone()
	}

	return out
}

// Equal reports whether both sequences hold deep-equal stages in the same order.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}

	for i := range s {
		if !s[i].Equal(other[i]) {
			return false
		}
	}

	return true
}

// Value returns the sequence as a list value.
func (s Sequence) Value() Value {
	return List(s.Clone()...)
}

// Operators returns the first key of every stage, in order. Stages that are
// not documents, or are empty documents, yield an empty string.
func (s Sequence) Operators() []string {
	ops := make([]string, len(s))
	for i, stage := range s {
		ops[i], _ = stage.FirstKey()
	}

	return ops
}
