package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/askiada/go-aggregation/pkg/pipeline/model"
)

// Composer validates independently built sequences and merges them into one.
// Inputs are validated before anything is merged, so a failed Compose or
// Extend leaves the composed sequence untouched.
type Composer struct {
	logger     zerolog.Logger
	now        func() time.Time
	newID      func() string
	stages     model.Sequence
	validation ValidationOptions
}

// NewComposer creates an empty composer validating inputs with the default options.
func NewComposer(opts ...ComposerOption) *Composer {
	c := &Composer{
		logger:     zerolog.Nop(),
		now:        time.Now,
		newID:      defaultID,
		stages:     model.Sequence{},
		validation: DefaultValidationOptions(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Validate checks the structure of seq. It is the same check as the package level Validate.
func (c *Composer) Validate(seq model.Sequence, opts ...ValidationOption) error {
	return Validate(seq, opts...)
}

// Compose replaces the composed sequence with the concatenation of seqs, in
// argument order.
func (c *Composer) Compose(seqs ...model.Sequence) error {
	if len(seqs) == 0 {
		return &CompositionError{Kind: CompositionNoInput, Index: -1, Err: ErrNoPipelines}
	}

	total := 0

	for i, seq := range seqs {
		err := validate(seq, c.validation)
		if err != nil {
			c.logger.Debug().Err(err).Int("index", i).Msg("compose rejected")

			return &CompositionError{Kind: CompositionInvalidPipeline, Index: i, Err: err}
		}

		total += len(seq)
	}

	stages := make(model.Sequence, 0, total)
	for _, seq := range seqs {
		stages = append(stages, seq.Clone()...)
	}

	c.stages = stages
	c.logger.Debug().Int("pipelines", len(seqs)).Int("stages", total).Msg("pipelines composed")

	return nil
}

// Extend replaces the composed sequence with base followed by extension.
func (c *Composer) Extend(base, extension model.Sequence) error {
	err := validate(base, c.validation)
	if err != nil {
		c.logger.Debug().Err(err).Msg("extend rejected base")

		return &CompositionError{Kind: CompositionInvalidBase, Index: -1, Err: err}
	}

	err = validate(extension, c.validation)
	if err != nil {
		c.logger.Debug().Err(err).Msg("extend rejected extension")

		return &CompositionError{Kind: CompositionInvalidExtension, Index: -1, Err: err}
	}

	stages := make(model.Sequence, 0, len(base)+len(extension))
	stages = append(stages, base.Clone()...)
	stages = append(stages, extension.Clone()...)

	c.stages = stages
	c.logger.Debug().Int("stages", len(stages)).Msg("pipeline extended")

	return nil
}

// Build returns a copy of the composed sequence.
func (c *Composer) Build() model.Sequence {
	return c.stages.Clone()
}

// Clear empties the composed sequence.
func (c *Composer) Clear() *Composer {
	c.stages = model.Sequence{}
	c.logger.Debug().Msg("composer cleared")

	return c
}

// StageCount returns the number of composed stages.
func (c *Composer) StageCount() int {
	return len(c.stages)
}

// StageAt returns a copy of the stage at index. Unlike Builder.StageAt it fails
// when index is out of range.
func (c *Composer) StageAt(index int) (model.Value, error) {
	if index < 0 || index >= len(c.stages) {
		return model.Value{}, errors.Wrapf(ErrIndexOutOfRange, "index %d, length %d", index, len(c.stages))
	}

	return c.stages[index].Clone(), nil
}

// HasStageType reports whether a stage has operator as its sole key.
func (c *Composer) HasStageType(operator string) bool {
	for _, stage := range c.stages {
		if isOperator(stage, operator) {
			return true
		}
	}

	return false
}

// StagesOfType returns copies of the stages whose sole key is operator, in order.
func (c *Composer) StagesOfType(operator string) model.Sequence {
	return FilterByType(c.stages, operator)
}

// JSON returns the composed sequence as JSON, indented when pretty is set.
func (c *Composer) JSON(pretty bool) string {
	return Serialize(c.stages, pretty)
}

// Export is a composed sequence with its metadata.
type Export struct {
	Pipeline model.Sequence `json:"pipeline"`
	Metadata map[string]any `json:"metadata"`
}

// Metadata keys always present in an Export.
const (
	MetadataStageCount = "stageCount"
	MetadataCreatedAt  = "createdAt"
	MetadataExportID   = "exportId"
)

// ExportWithMetadata returns a copy of the composed sequence with its stage
// count, creation time and an export identifier. Entries of extra are merged
// last and override the generated ones.
func (c *Composer) ExportWithMetadata(extra map[string]any) Export {
	metadata := map[string]any{
		MetadataStageCount: len(c.stages),
		MetadataCreatedAt:  c.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		MetadataExportID:   c.newID(),
	}

	for k, v := range extra {
		metadata[k] = v
	}

	return Export{
		Pipeline: c.Build(),
		Metadata: metadata,
	}
}

// JSON encodes the export, indented when pretty is set.
func (e Export) JSON(pretty bool) (string, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if pretty {
		enc.SetIndent("", prettyIndent)
	}

	err := enc.Encode(e)
	if err != nil {
		return "", errors.Wrap(err, "unable to encode export")
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}

// String lists the composed stages by position and operator.
func (c *Composer) String() string {
	return fmt.Sprintf("Composed Pipeline with %d stages:\n%s", len(c.stages), listStages(c.stages))
}
