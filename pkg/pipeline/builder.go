package pipeline

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/askiada/go-aggregation/pkg/pipeline/model"
)

// Builder accumulates stages through chained calls.
//
// The first failing call is recorded and every later append becomes a no-op,
// so a chain can be checked once with Err or Build. A failing call never
// changes the accumulated stages. Clear is the only way to recover from a
// recorded failure, and it also drops the stages accumulated so far. A Builder
// must not be shared between goroutines without external synchronisation.
type Builder struct {
	logger zerolog.Logger
	err    error
	stages model.Sequence
}

// NewBuilder creates an empty builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		logger: zerolog.Nop(),
		stages: model.Sequence{},
	}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Append adds a custom stage. The stage must convert to a document; it is not
// checked for a single operator until Validate is called.
func (b *Builder) Append(stage any) *Builder {
	if b.err != nil {
		return b
	}

	v, err := stageOf(stage)
	if err != nil {
		return b.fail(err)
	}

	b.stages = append(b.stages, v)

	return b
}

// stageOf converts a custom stage, which must be document shaped.
func stageOf(stage any) (model.Value, error) {
	if stage == nil {
		return model.Value{}, errors.Wrap(ErrInvalidStage, "stage is nil")
	}

	v, err := model.ValueOf(stage)
	if err != nil {
		return model.Value{}, errors.Wrap(ErrInvalidStage, err.Error())
	}

	if !v.IsDocument() {
		return model.Value{}, errors.Wrapf(ErrInvalidStage, "got %s", v.Kind())
	}

	return v, nil
}

// appendOperator adds {operator: arg}.
func (b *Builder) appendOperator(operator string, arg any) *Builder {
	if b.err != nil {
		return b
	}

	v, err := model.ValueOf(arg)
	if err != nil {
		return b.fail(errors.Wrapf(ErrInvalidArgument, "%s: %v", operator, err))
	}

	b.stages = append(b.stages, model.Doc(model.F(operator, v)))

	return b
}

func (b *Builder) appendCount(operator string, n int64) *Builder {
	if b.err != nil {
		return b
	}

	if n < 0 {
		return b.fail(errors.Wrapf(ErrInvalidArgument, "%s value must be non-negative, got %d", operator, n))
	}

	b.stages = append(b.stages, model.Doc(model.F(operator, model.Int(n))))

	return b
}

func (b *Builder) fail(err error) *Builder {
	b.logger.Debug().Err(err).Int("stages", len(b.stages)).Msg("builder call rejected")
	b.err = err

	return b
}

// Err returns the first failure recorded since creation or the last Clear.
func (b *Builder) Err() error {
	return b.err
}

// Build returns a copy of the accumulated stages together with the recorded
// failure, if any. It does not reset the builder.
func (b *Builder) Build() (model.Sequence, error) {
	return b.stages.Clone(), b.err
}

// Clear removes every stage and forgets any recorded failure.
func (b *Builder) Clear() *Builder {
	b.stages = model.Sequence{}
	b.err = nil

	return b
}

// StageCount returns the number of accumulated stages.
func (b *Builder) StageCount() int {
	return len(b.stages)
}

// StageAt returns a copy of the stage at index. It reports false when index is
// out of range instead of failing.
func (b *Builder) StageAt(index int) (model.Value, bool) {
	if index < 0 || index >= len(b.stages) {
		return model.Value{}, false
	}

	return b.stages[index].Clone(), true
}

// ReplaceAt replaces the stage at index.
func (b *Builder) ReplaceAt(index int, stage any) error {
	if index < 0 || index >= len(b.stages) {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, length %d", index, len(b.stages))
	}

	v, err := stageOf(stage)
	if err != nil {
		return err
	}

	b.stages[index] = v

	return nil
}

// RemoveAt removes the stage at index.
func (b *Builder) RemoveAt(index int) error {
	if index < 0 || index >= len(b.stages) {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, length %d", index, len(b.stages))
	}

	b.stages = append(b.stages[:index], b.stages[index+1:]...)

	return nil
}

// Validate checks the accumulated stages.
func (b *Builder) Validate(opts ...ValidationOption) error {
	return Validate(b.stages, opts...)
}
