package pipeline

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-aggregation/pkg/pipeline/model"
)

const prettyIndent = "  "

// Parse decodes a JSON array of stages.
func Parse(text string) (model.Sequence, error) {
	var v model.Value

	err := v.UnmarshalJSON([]byte(text))
	if err != nil {
		return nil, errors.Wrap(ErrParse, err.Error())
	}

	if !v.IsList() {
		return nil, errors.Wrapf(ErrParse, "JSON must represent an array of pipeline stages, got %s", v.Kind())
	}

	return model.Sequence(v.Items()), nil
}

// Serialize encodes seq as JSON, indented by two spaces when pretty is set.
func Serialize(seq model.Sequence, pretty bool) string {
	compact := model.List(seq...).String()
	if !pretty {
		return compact
	}

	var buf bytes.Buffer

	err := json.Indent(&buf, []byte(compact), "", prettyIndent)
	if err != nil {
		return compact
	}

	return buf.String()
}

// ParseYAML decodes a YAML sequence of stages.
func ParseYAML(text string) (model.Sequence, error) {
	var v model.Value

	err := yaml.Unmarshal([]byte(text), &v)
	if err != nil {
		return nil, errors.Wrap(ErrParse, err.Error())
	}

	if !v.IsList() {
		return nil, errors.Wrapf(ErrParse, "YAML must represent a sequence of pipeline stages, got %s", v.Kind())
	}

	return model.Sequence(v.Items()), nil
}

// SerializeYAML encodes seq as a YAML sequence.
func SerializeYAML(seq model.Sequence) (string, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(len(prettyIndent))

	err := enc.Encode(model.List(seq...))
	if err != nil {
		return "", errors.Wrap(err, "unable to encode pipeline")
	}

	err = enc.Close()
	if err != nil {
		return "", errors.Wrap(err, "unable to encode pipeline")
	}

	return buf.String(), nil
}

// Clone returns a deep copy of seq.
func Clone(seq model.Sequence) model.Sequence {
	return seq.Clone()
}

// FilterByType returns copies of the stages whose sole operator is operator, in order.
func FilterByType(seq model.Sequence, operator string) model.Sequence {
	out := model.Sequence{}

	for _, stage := range seq {
		if isOperator(stage, operator) {
			out = append(out, stage.Clone())
		}
	}

	return out
}

// RemoveByType returns copies of the stages not kept by FilterByType, in order.
func RemoveByType(seq model.Sequence, operator string) model.Sequence {
	out := model.Sequence{}

	for _, stage := range seq {
		if !isOperator(stage, operator) {
			out = append(out, stage.Clone())
		}
	}

	return out
}

func isOperator(stage model.Value, operator string) bool {
	op, ok := stage.Operator()

	return ok && op == operator
}

// InsertAt returns a copy of seq with stage inserted before index. A negative
// index inserts at the front and an index past the end appends.
func InsertAt(seq model.Sequence, index int, stage model.Value) model.Sequence {
	if index < 0 {
		index = 0
	}

	if index > len(seq) {
		index = len(seq)
	}

	out := make(model.Sequence, 0, len(seq)+1)
	out = append(out, seq[:index].Clone()...)
	out = append(out, stage.Clone())
	out = append(out, seq[index:].Clone()...)

	return out
}

// ReplaceAt returns a copy of seq with the stage at index replaced.
func ReplaceAt(seq model.Sequence, index int, stage model.Value) (model.Sequence, error) {
	if index < 0 || index >= len(seq) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d, length %d", index, len(seq))
	}

	out := seq.Clone()
	out[index] = stage.Clone()

	return out, nil
}
