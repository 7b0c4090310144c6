package pipeline

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidStage    = errors.New("invalid pipeline stage: must be an object")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIndexOutOfRange = errors.New("invalid stage index")
	ErrParse           = errors.New("failed to parse pipeline")

	// ErrValidation is wrapped by every structural validation failure.
	ErrValidation = errors.New("pipeline validation failed")

	ErrNotSequence         = newRuleError("pipeline must be an array")
	ErrEmptyPipeline       = newRuleError("pipeline cannot be empty")
	ErrStageLimitExceeded  = newRuleError("pipeline exceeds maximum stage limit")
	ErrMultipleOperators   = newRuleError("each pipeline stage must have exactly one operator")
	ErrInvalidOperatorName = newRuleError("pipeline operators must start with " + OperatorSigil)

	// ErrComposition is wrapped by every CompositionError.
	ErrComposition = errors.New("pipeline composition failed")
	ErrNoPipelines = errors.New("at least one pipeline must be provided for composition")
)

// ruleError names a single structural rule. It unwraps to ErrValidation.
type ruleError struct {
	msg string
}

func newRuleError(msg string) error {
	return &ruleError{msg: msg}
}

func (e *ruleError) Error() string { return e.msg }

func (e *ruleError) Unwrap() error { return ErrValidation }

// StageError reports a rule violated by the stage at Index.
type StageError struct {
	Err   error
	Index int
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %d: %s", e.Index, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Composition failure kinds.
const (
	CompositionNoInput          = "no input provided"
	CompositionInvalidPipeline  = "invalid pipeline"
	CompositionInvalidBase      = "invalid base pipeline"
	CompositionInvalidExtension = "invalid extension pipeline"
)

// CompositionError is returned by Composer.Compose and Composer.Extend.
// Index is the position of the offending input for CompositionInvalidPipeline, -1 otherwise.
type CompositionError struct {
	Err   error
	Kind  string
	Index int
}

func (e *CompositionError) Error() string {
	msg := e.Kind
	if e.Kind == CompositionInvalidPipeline {
		msg = fmt.Sprintf("%s at index %d", e.Kind, e.Index)
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *CompositionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrComposition}
	}

	return []error{ErrComposition, e.Err}
}
