package model

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/pkg/errors"
)

// ErrUnsupportedType is returned when a Go value has no Value representation.
var ErrUnsupportedType = errors.New("unsupported value type")

// E is a single entry of an ordered document literal.
type E struct {
	Key   string
	Value any
}

// D is an ordered document literal, e.g. D{{"status", "active"}}.
type D []E

// M is an unordered document literal. Keys are sorted when converted.
type M = map[string]any

// A is a list literal.
type A = []any

// ValueOf converts a Go value into a Value. Supported inputs are nil, bool,
// integer and float kinds, string, Value, D, Sequence, slices and maps keyed by string.
func ValueOf(in any) (Value, error) {
	switch val := in.(type) {
	case nil:
		return Null(), nil
	case Value:
		return val.Clone(), nil
	case *Value:
		if val == nil {
			return Null(), nil
		}

		return val.Clone(), nil
	case Sequence:
		return val.Value(), nil
	case D:
		return docOf(val)
	case E:
		return docOf(D{val})
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case int:
		return Int(int64(val)), nil
	case int8:
		return Int(int64(val)), nil
	case int16:
		return Int(int64(val)), nil
	case int32:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case uint:
		return Number(float64(val)), nil
	case uint8:
		return Number(float64(val)), nil
	case uint16:
		return Number(float64(val)), nil
	case uint32:
		return Number(float64(val)), nil
	case uint64:
		return Number(float64(val)), nil
	case float32:
		return Number(float64(val)), nil
	case float64:
		return Number(val), nil
	case []Value:
		return List(val...).Clone(), nil
	case []any:
		return listOf(reflect.ValueOf(val))
	case map[string]any:
		if val == nil {
			return Null(), nil
		}

		return mapOf(reflect.ValueOf(val))
	}

	return reflectValueOf(reflect.ValueOf(in))
}

// MustValueOf is like ValueOf but panics on unsupported input.
func MustValueOf(in any) Value {
	v, err := ValueOf(in)
	if err != nil {
		panic(err)
	}

	return v
}

func docOf(d D) (Value, error) {
	fields := make([]Field, 0, len(d))
	for _, e := range d {
		v, err := ValueOf(e.Value)
		if err != nil {
			return Value{}, errors.Wrapf(err, "field %q", e.Key)
		}

		fields = append(fields, F(e.Key, v))
	}

	return Doc(fields...), nil
}

func reflectValueOf(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Invalid:
		return Null(), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}

		return ValueOf(rv.Elem().Interface())
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float()), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Null(), nil
		}

		return listOf(rv)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, errors.Wrap(ErrUnsupportedType, fmt.Sprintf("map key %s", rv.Type().Key()))
		}

		if rv.IsNil() {
			return Null(), nil
		}

		return mapOf(rv)
	default:
		return Value{}, errors.Wrap(ErrUnsupportedType, rv.Type().String())
	}
}

func listOf(rv reflect.Value) (Value, error) {
	items := make([]Value, rv.Len())
	for i := range items {
		v, err := ValueOf(rv.Index(i).Interface())
		if err != nil {
			return Value{}, errors.Wrapf(err, "index %d", i)
		}

		items[i] = v
	}

	return List(items...), nil
}

func mapOf(rv reflect.Value) (Value, error) {
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}

	sort.Strings(keys)

	fields := make([]Field, 0, len(keys))
	for _, k := range keys {
		v, err := ValueOf(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface())
		if err != nil {
			return Value{}, errors.Wrapf(err, "field %q", k)
		}

		fields = append(fields, F(k, v))
	}

	return Doc(fields...), nil
}
