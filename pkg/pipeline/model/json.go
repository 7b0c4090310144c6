package model

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// ErrSyntax is returned when a JSON payload cannot be decoded into a Value.
var ErrSyntax = errors.New("malformed JSON value")

// MarshalJSON encodes v, keeping document key order and leaving HTML characters unescaped.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	err := v.appendJSON(&buf)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// String returns the compact JSON form of v.
func (v Value) String() string {
	var buf bytes.Buffer

	_ = v.appendJSON(&buf)

	return buf.String()
}

// UnmarshalJSON decodes a JSON payload into v, keeping document key order.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	decoded, err := decodeValue(dec)
	if err != nil {
		return err
	}

	if _, err := dec.Token(); err != io.EOF {
		return errors.Wrap(ErrSyntax, "unexpected data after top-level value")
	}

	*v = decoded

	return nil
}

// MarshalJSON encodes the sequence as a JSON array.
func (s Sequence) MarshalJSON() ([]byte, error) {
	return List(s...).MarshalJSON()
}

// UnmarshalJSON decodes a JSON array into the sequence.
func (s *Sequence) UnmarshalJSON(data []byte) error {
	var v Value

	err := v.UnmarshalJSON(data)
	if err != nil {
		return err
	}

	if !v.IsList() {
		return errors.Wrapf(ErrSyntax, "expected an array, got %s", v.Kind())
	}

	*s = Sequence(v.list)

	return nil
}

func (v Value) appendJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case NullKind:
		buf.WriteString("null")
	case BoolKind:
		buf.WriteString(strconv.FormatBool(v.b))
	case NumberKind:
		if !finite(v.n) {
			buf.WriteString("null")
			return nil
		}

		raw, err := json.Marshal(v.n)
		if err != nil {
			return errors.Wrap(err, "unable to encode number")
		}

		buf.Write(raw)
	case StringKind:
		return appendString(buf, v.s)
	case ListKind:
		buf.WriteByte('[')

		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}

			err := item.appendJSON(buf)
			if err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	case DocumentKind:
		buf.WriteByte('{')

		for i, f := range v.fields {
			if i > 0 {
				buf.WriteByte(',')
			}

			err := appendString(buf, f.Key)
			if err != nil {
				return err
			}

			buf.WriteByte(':')

			err = f.Value.appendJSON(buf)
			if err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	default:
		return errors.Errorf("unknown value kind %d", v.kind)
	}

	return nil
}

func appendString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer

	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)

	err := enc.Encode(s)
	if err != nil {
		return errors.Wrap(err, "unable to encode string")
	}

	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))

	return nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, errors.Wrap(ErrSyntax, err.Error())
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return Value{}, errors.Wrapf(ErrSyntax, "number %s: %v", t, err)
		}

		return Number(f), nil
	case json.Delim:
		switch t {
		case '[':
			items := []Value{}

			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}

				items = append(items, item)
			}

			if _, err := dec.Token(); err != nil {
				return Value{}, errors.Wrap(ErrSyntax, err.Error())
			}

			return List(items...), nil
		case '{':
			doc := Value{kind: DocumentKind, fields: []Field{}}

			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, errors.Wrap(ErrSyntax, err.Error())
				}

				key, ok := keyTok.(string)
				if !ok {
					return Value{}, errors.Wrapf(ErrSyntax, "unexpected object key %v", keyTok)
				}

				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}

				doc.fields = setField(doc.fields, key, item)
			}

			if _, err := dec.Token(); err != nil {
				return Value{}, errors.Wrap(ErrSyntax, err.Error())
			}

			return doc, nil
		}
	}

	return Value{}, errors.Wrapf(ErrSyntax, "unexpected token %v", tok)
}
