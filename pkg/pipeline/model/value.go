package model

import (
	"math"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ListKind
	DocumentKind
)

var kindNames = [...]string{
	NullKind:     "null",
	BoolKind:     "bool",
	NumberKind:   "number",
	StringKind:   "string",
	ListKind:     "list",
	DocumentKind: "document",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Field is a single key/value entry of a document.
type Field struct {
	Key   string
	Value Value
}

// F is shorthand for building a document field.
func F(key string, v Value) Field {
	return Field{Key: key, Value: v}
}

// Value is a JSON-representable payload: null, bool, number, string, list or document.
// Documents keep the insertion order of their keys. The zero Value is null.
type Value struct {
	kind   Kind
	b      bool
	n      float64
	s      string
	list   []Value
	fields []Field
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: BoolKind, b: b} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: NumberKind, n: f} }

// Int returns a numeric value holding i.
func Int(i int64) Value { return Value{kind: NumberKind, n: float64(i)} }

// String returns a string value.
func String(s string) Value { return Value{kind: StringKind, s: s} }

// List returns a list value holding vs.
func List(vs ...Value) Value {
	if vs == nil {
		vs = []Value{}
	}

	return Value{kind: ListKind, list: vs}
}

// Doc returns a document with the given fields, in order. A repeated key
// overwrites the earlier entry and keeps its position.
func Doc(fields ...Field) Value {
	doc := Value{kind: DocumentKind, fields: make([]Field, 0, len(fields))}
	for _, f := range fields {
		doc.fields = setField(doc.fields, f.Key, f.Value)
	}

	return doc
}

func setField(fields []Field, key string, v Value) []Field {
	for i := range fields {
		if fields[i].Key == key {
			fields[i].Value = v
			return fields
		}
	}

	return append(fields, Field{Key: key, Value: v})
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool     { return v.kind == NullKind }
func (v Value) IsList() bool     { return v.kind == ListKind }
func (v Value) IsDocument() bool { return v.kind == DocumentKind }

// AsBool returns the boolean held by v and whether v is a bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == BoolKind }

// AsNumber returns the number held by v and whether v is a number.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == NumberKind }

// AsString returns the string held by v and whether v is a string.
func (v Value) AsString() (string, bool) { return v.s, v.kind == StringKind }

// Len returns the number of elements of a list or entries of a document, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case ListKind:
		return len(v.list)
	case DocumentKind:
		return len(v.fields)
	default:
		return 0
	}
}

// Index returns the i-th element of a list.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != ListKind || i < 0 || i >= len(v.list) {
		return Value{}, false
	}

	return v.list[i], true
}

// Items returns a copy of the elements of a list.
func (v Value) Items() []Value {
	if v.kind != ListKind {
		return nil
	}

	out := make([]Value, len(v.list))
	for i, item := range v.list {
		out[i] = item.Clone()
	}

	return out
}

// Keys returns the keys of a document in insertion order.
func (v Value) Keys() []string {
	if v.kind != DocumentKind {
		return nil
	}

	keys := make([]string, len(v.fields))
	for i, f := range v.fields {
		keys[i] = f.Key
	}

	return keys
}

// Fields returns a copy of the entries of a document.
func (v Value) Fields() []Field {
	if v.kind != DocumentKind {
		return nil
	}

	out := make([]Field, len(v.fields))
	for i, f := range v.fields {
		out[i] = Field{Key: f.Key, Value: f.Value.Clone()}
	}

	return out
}

// Get returns the value stored under key in a document.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != DocumentKind {
		return Value{}, false
	}

	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}

	return Value{}, false
}

// Operator returns the key of a document holding exactly one entry.
func (v Value) Operator() (string, bool) {
	if v.kind != DocumentKind || len(v.fields) != 1 {
		return "", false
	}

	return v.fields[0].Key, true
}

// FirstKey returns the first key of a non-empty document.
func (v Value) FirstKey() (string, bool) {
	if v.kind != DocumentKind || len(v.fields) == 0 {
		return "", false
	}

	return v.fields[0].Key, true
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case ListKind:
		list := make([]Value, len(v.list))
		for i, item := range v.list {
			list[i] = item.Clone()
		}

		return Value{kind: ListKind, list: list}
	case DocumentKind:
		fields := make([]Field, len(v.fields))
		for i, f := range v.fields {
			fields[i] = Field{Key: f.Key, Value: f.Value.Clone()}
		}

		return Value{kind: DocumentKind, fields: fields}
	default:
		return v
	}
}

// Equal reports deep, order-sensitive equality. Non-finite numbers compare
// equal to null, matching their serialized form.
func (v Value) Equal(other Value) bool {
	if v.nullish() && other.nullish() {
		return true
	}

	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case BoolKind:
		return v.b == other.b
	case NumberKind:
		return v.n == other.n
	case StringKind:
		return v.s == other.s
	case ListKind:
		if len(v.list) != len(other.list) {
			return false
		}

		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}

		return true
	case DocumentKind:
		if len(v.fields) != len(other.fields) {
			return false
		}

		for i := range v.fields {
			if v.fields[i].Key != other.fields[i].Key || !v.fields[i].Value.Equal(other.fields[i].Value) {
				return false
			}
		}

		return true
	default:
		return true
	}
}

func (v Value) nullish() bool {
	return v.kind == NullKind || (v.kind == NumberKind && !finite(v.n))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
