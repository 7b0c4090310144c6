package pipeline

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	// OperatorSigil prefixes every operator name, e.g. $match.
	OperatorSigil = "$"

	DefaultMaxStages = 1000
)

// ValidationOptions configures structural validation.
type ValidationOptions struct {
	// Strict requires every stage to hold exactly one sigil-prefixed key.
	Strict bool
	// AllowEmpty accepts a zero-length sequence.
	AllowEmpty bool
	// MaxStages bounds the sequence length.
	MaxStages int
}

// DefaultValidationOptions returns strict validation, rejecting empty sequences
// and sequences longer than DefaultMaxStages.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{
		Strict:    true,
		MaxStages: DefaultMaxStages,
	}
}

type ValidationOption func(o *ValidationOptions)

func Strict(strict bool) ValidationOption {
	return func(o *ValidationOptions) {
		o.Strict = strict
	}
}

func AllowEmpty(allow bool) ValidationOption {
	return func(o *ValidationOptions) {
		o.AllowEmpty = allow
	}
}

func MaxStages(limit int) ValidationOption {
	return func(o *ValidationOptions) {
		o.MaxStages = limit
	}
}

// WithOptions replaces the options being built with opts.
func WithOptions(opts ValidationOptions) ValidationOption {
	return func(o *ValidationOptions) {
		*o = opts
	}
}

func resolveValidationOptions(opts ...ValidationOption) ValidationOptions {
	resolved := DefaultValidationOptions()
	for _, opt := range opts {
		opt(&resolved)
	}

	return resolved
}

type validationOptionsFile struct {
	Strict     *bool `yaml:"strict"`
	AllowEmpty *bool `yaml:"allowEmpty"`
	MaxStages  *int  `yaml:"maxStages"`
}

// ParseValidationOptions reads validation options from a YAML document.
// Missing keys keep their default value.
func ParseValidationOptions(data []byte) (ValidationOptions, error) {
	var file validationOptionsFile

	err := yaml.Unmarshal(data, &file)
	if err != nil {
		return ValidationOptions{}, errors.Wrap(err, "unable to decode validation options")
	}

	opts := DefaultValidationOptions()
	if file.Strict != nil {
		opts.Strict = *file.Strict
	}

	if file.AllowEmpty != nil {
		opts.AllowEmpty = *file.AllowEmpty
	}

	if file.MaxStages != nil {
		if *file.MaxStages < 0 {
			return ValidationOptions{}, errors.Wrapf(ErrInvalidArgument, "maxStages must be non-negative, got %d", *file.MaxStages)
		}

		opts.MaxStages = *file.MaxStages
	}

	return opts, nil
}

type BuilderOption func(b *Builder)

// BuilderLogger sets the logger used by the builder.
func BuilderLogger(logger zerolog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

type ComposerOption func(c *Composer)

// ComposerLogger sets the logger used by the composer.
func ComposerLogger(logger zerolog.Logger) ComposerOption {
	return func(c *Composer) {
		c.logger = logger
	}
}

// ComposerValidation sets the options used to validate inputs of Compose and Extend.
func ComposerValidation(opts ...ValidationOption) ComposerOption {
	return func(c *Composer) {
		c.validation = resolveValidationOptions(opts...)
	}
}

// ComposerClock sets the clock used to timestamp exports.
func ComposerClock(now func() time.Time) ComposerOption {
	return func(c *Composer) {
		c.now = now
	}
}

// ComposerIDGenerator sets the generator of export identifiers.
func ComposerIDGenerator(newID func() string) ComposerOption {
	return func(c *Composer) {
		c.newID = newID
	}
}

func defaultID() string {
	return uuid.NewString()
}
