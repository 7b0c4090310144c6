// Package mongopipe converts sequences to and from the types of the MongoDB Go
// driver, so a built pipeline can be passed straight to Collection.Aggregate.
package mongopipe

import (
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/askiada/go-aggregation/pkg/pipeline/model"
)

var (
	ErrStageNotDocument = errors.New("pipeline stage must be a document")
	ErrUnsupportedType  = errors.New("unsupported BSON type")
)

// ToMongo converts seq to a driver pipeline. Key order is kept. Integral
// numbers become int32 when they fit and int64 otherwise.
func ToMongo(seq model.Sequence) (mongo.Pipeline, error) {
	out := make(mongo.Pipeline, 0, len(seq))

	for i, stage := range seq {
		if !stage.IsDocument() {
			return nil, errors.Wrapf(ErrStageNotDocument, "stage %d is a %s", i, stage.Kind())
		}

		out = append(out, toD(stage))
	}

	return out, nil
}

func toD(v model.Value) bson.D {
	fields := v.Fields()

	doc := make(bson.D, 0, len(fields))
	for _, f := range fields {
		doc = append(doc, bson.E{Key: f.Key, Value: toBSON(f.Value)})
	}

	return doc
}

func toBSON(v model.Value) interface{} {
	switch v.Kind() {
	case model.BoolKind:
		b, _ := v.AsBool()
		return b
	case model.NumberKind:
		n, _ := v.AsNumber()
		return toNumber(n)
	case model.StringKind:
		s, _ := v.AsString()
		return s
	case model.ListKind:
		items := v.Items()

		arr := make(bson.A, 0, len(items))
		for _, item := range items {
			arr = append(arr, toBSON(item))
		}

		return arr
	case model.DocumentKind:
		return toD(v)
	default:
		return nil
	}
}

func toNumber(n float64) interface{} {
	if n != math.Trunc(n) || math.IsInf(n, 0) {
		return n
	}

	if n >= math.MinInt32 && n <= math.MaxInt32 {
		return int32(n)
	}

	if n >= -(1<<63) && n < 1<<63 {
		return int64(n)
	}

	return n
}

// FromBSON converts driver stages back to a sequence. ObjectIDs become their
// hex string and dates their RFC 3339 form.
func FromBSON(stages []bson.D) (model.Sequence, error) {
	out := make(model.Sequence, 0, len(stages))

	for i, stage := range stages {
		v, err := fromBSON(stage)
		if err != nil {
			return nil, errors.Wrapf(err, "stage %d", i)
		}

		out = append(out, v)
	}

	return out, nil
}

func fromBSON(in interface{}) (model.Value, error) {
	switch val := in.(type) {
	case nil:
		return model.Null(), nil
	case bson.D:
		fields := make([]model.Field, 0, len(val))
		for _, e := range val {
			v, err := fromBSON(e.Value)
			if err != nil {
				return model.Value{}, errors.Wrapf(err, "field %q", e.Key)
			}

			fields = append(fields, model.F(e.Key, v))
		}

		return model.Doc(fields...), nil
	case bson.M:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		d := make(bson.D, 0, len(keys))
		for _, k := range keys {
			d = append(d, bson.E{Key: k, Value: val[k]})
		}

		return fromBSON(d)
	case bson.A:
		return fromList(val)
	case []interface{}:
		return fromList(val)
	case primitive.ObjectID:
		return model.String(val.Hex()), nil
	case primitive.DateTime:
		return model.String(val.Time().UTC().Format(time.RFC3339Nano)), nil
	case time.Time:
		return model.String(val.UTC().Format(time.RFC3339Nano)), nil
	case primitive.Null, primitive.Undefined:
		return model.Null(), nil
	}

	v, err := model.ValueOf(in)
	if err != nil {
		return model.Value{}, errors.Wrapf(ErrUnsupportedType, "%T", in)
	}

	return v, nil
}

func fromList(items []interface{}) (model.Value, error) {
	values := make([]model.Value, 0, len(items))
	for i, item := range items {
		v, err := fromBSON(item)
		if err != nil {
			return model.Value{}, errors.Wrapf(err, "index %d", i)
		}

		values = append(values, v)
	}

	return model.List(values...), nil
}

// Size returns the sum of the marshalled BSON size of every stage.
func Size(seq model.Sequence) (int, error) {
	stages, err := ToMongo(seq)
	if err != nil {
		return 0, err
	}

	total := 0

	for i, stage := range stages {
		raw, err := bson.Marshal(stage)
		if err != nil {
			return 0, errors.Wrapf(err, "unable to marshal stage %d", i)
		}

		total += len(raw)
	}

	return total, nil
}
