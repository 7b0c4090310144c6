package pipeline

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-aggregation/pkg/pipeline/model"
)

// Validate checks the structure of seq. Checks run in order and the first
// violation is returned; a nil error means the sequence is well formed.
func Validate(seq model.Sequence, opts ...ValidationOption) error {
	return validate(seq, resolveValidationOptions(opts...))
}

// ValidateValue is like Validate for a decoded value of unknown shape. It
// returns ErrNotSequence when v is not a list.
func ValidateValue(v model.Value, opts ...ValidationOption) error {
	if !v.IsList() {
		return errors.Wrapf(ErrNotSequence, "got %s", v.Kind())
	}

	return validate(model.Sequence(v.Items()), resolveValidationOptions(opts...))
}

func validate(seq model.Sequence, opts ValidationOptions) error {
	if len(seq) == 0 && !opts.AllowEmpty {
		return ErrEmptyPipeline
	}

	if len(seq) > opts.MaxStages {
		return errors.Wrapf(ErrStageLimitExceeded, "%d stages, limit %d", len(seq), opts.MaxStages)
	}

	for i, stage := range seq {
		err := validateStage(stage, opts.Strict)
		if err != nil {
			return &StageError{Err: err, Index: i}
		}
	}

	return nil
}

func validateStage(stage model.Value, strict bool) error {
	if !stage.IsDocument() {
		return ErrInvalidStage
	}

	if !strict {
		return nil
	}

	operator, ok := stage.Operator()
	if !ok {
		return errors.Wrapf(ErrMultipleOperators, "got %d keys", stage.Len())
	}

	if !strings.HasPrefix(operator, OperatorSigil) {
		return errors.Wrapf(ErrInvalidOperatorName, "got %q", operator)
	}

	return nil
}
