package mcode

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// PostOrder controls the order of the haircut and fluff passes.
type PostOrder int

const (
	// HaircutThenFluff trims pendants before the fluff pass.
	HaircutThenFluff PostOrder = iota
	// FluffThenHaircut grows the complex before trimming pendants.
	FluffThenHaircut
)

// String returns the string representation of a post order.
func (p PostOrder) String() string {
	switch p {
	case HaircutThenFluff:
		return "haircut-then-fluff"
	case FluffThenHaircut:
		return "fluff-then-haircut"
	default:
		return "unknown"
	}
}

// ParsePostOrder maps a configuration string to a post order. The
// empty string selects the default.
func ParsePostOrder(s string) (PostOrder, error) {
	switch s {
	case "", "haircut-then-fluff":
		return HaircutThenFluff, nil
	case "fluff-then-haircut":
		return FluffThenHaircut, nil
	default:
		return 0, fmt.Errorf("unknown post order %q", s)
	}
}

// PostMode controls when post-processing runs relative to seed expansion.
type PostMode int

const (
	// TwoPhase expands every seed first, then post-processes all candidates.
	// Vertices stay claimed even when a haircut removes them.
	TwoPhase PostMode = iota
	// Interleaved post-processes each candidate right after its expansion
	// and releases haircut-trimmed vertices so later seeds can absorb them.
	Interleaved
)

// String returns the string representation of a post mode.
func (p PostMode) String() string {
	switch p {
	case TwoPhase:
		return "two-phase"
	case Interleaved:
		return "interleaved"
	default:
		return "unknown"
	}
}

// ParsePostMode maps a configuration string to a post mode. The empty
// string selects the default.
func ParsePostMode(s string) (PostMode, error) {
	switch s {
	case "", "two-phase":
		return TwoPhase, nil
	case "interleaved":
		return Interleaved, nil
	default:
		return 0, fmt.Errorf("unknown post mode %q", s)
	}
}

// Options configures a clustering run.
type Options struct {
	// VertexWeightPercentage sets the admission threshold during seed
	// expansion: a boundary vertex joins when its weight is at least
	// weight(seed) * (1 - VertexWeightPercentage). Larger values admit
	// more vertices and grow looser complexes.
	VertexWeightPercentage float64 `yaml:"vertex_weight_percentage" validate:"gte=0,lte=1"`

	// Haircut iteratively removes vertices with exactly one neighbor
	// inside the complex.
	Haircut bool `yaml:"haircut"`

	// Fluff admits outside neighbors whose inclusion keeps the complex
	// density at or above FluffDensityThreshold. Single pass.
	Fluff bool `yaml:"fluff"`

	// FluffDensityThreshold is only consulted when Fluff is enabled.
	FluffDensityThreshold float64 `yaml:"fluff_density_threshold" validate:"gte=0,lte=1"`

	// MinComplexSize drops complexes with fewer members. Must be at
	// least 2; a single vertex is not a complex.
	MinComplexSize int `yaml:"min_complex_size" validate:"gte=2"`

	// MinScore drops complexes scoring below this value.
	MinScore float64 `yaml:"min_score" validate:"gte=0"`

	// Workers sets the vertex-weighting pool size. Zero means one
	// worker per CPU.
	Workers int `yaml:"workers" validate:"gte=0"`

	// PostOrder picks which of haircut and fluff runs first.
	PostOrder PostOrder `yaml:"post_order" validate:"gte=0,lte=1"`

	// PostMode picks two-phase or interleaved post-processing.
	PostMode PostMode `yaml:"post_mode" validate:"gte=0,lte=1"`
}

// DefaultOptions returns the standard parameterization: 0.2 vertex
// weight percentage, haircut on, fluff off with a 0.7 density threshold,
// complexes of at least 2 vertices, no score floor.
func DefaultOptions() *Options {
	return &Options{
		VertexWeightPercentage: 0.2,
		Haircut:                true,
		Fluff:                  false,
		FluffDensityThreshold:  0.7,
		MinComplexSize:         2,
		MinScore:               0,
		Workers:                0,
		PostOrder:              HaircutThenFluff,
		PostMode:               TwoPhase,
	}
}

// Validate checks the options; failures unwrap to ErrInvalidOptions.
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors to OptionErrors that
// carry the offending field.
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &OptionError{Field: "options", Detail: err.Error()}
	}

	for _, e := range validationErrs {
		field := e.Field()
		switch e.Tag() {
		case "gte":
			return &OptionError{Field: field, Detail: "must be at least " + e.Param()}
		case "lte":
			return &OptionError{Field: field, Detail: "must not exceed " + e.Param()}
		default:
			return &OptionError{Field: field, Detail: "validation failed (" + e.Tag() + ")"}
		}
	}

	return &OptionError{Field: "options", Detail: err.Error()}
}
