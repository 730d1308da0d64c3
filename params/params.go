// Package params turns boundary parameters (query strings, CLI flags) into
// engine filters.
package params

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/spektr-org/orderlens/engine"
	"github.com/spektr-org/orderlens/schema"
)

// ============================================================================
// REQUEST — Dashboard parameters as they arrive at the boundary
// ============================================================================

// DateLayout is the accepted format for start and end.
const DateLayout = "2006-01-02"

// ErrInvalidRequest wraps every validation failure.
var ErrInvalidRequest = errors.New("invalid dashboard parameters")

// Request carries the filter parameters of one dashboard render.
// Start and End are inclusive calendar days; empty means the dataset bound.
// Regions and Categories may repeat or hold comma-separated lists; empty
// means no restriction.
type Request struct {
	Start      string   `form:"start" json:"start,omitempty" validate:"omitempty,datetime=2006-01-02"`
	End        string   `form:"end" json:"end,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Regions    []string `form:"region" json:"regions,omitempty" validate:"max=64,dive,max=64"`
	Categories []string `form:"category" json:"categories,omitempty" validate:"max=256,dive,max=128"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field formats. A start after end is valid and yields an
// empty dashboard.
func (r Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, describe(fe))
			}
			return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "datetime":
		return fmt.Sprintf("%s must be a date formatted YYYY-MM-DD, got %q", field, fe.Value())
	case "max":
		return fmt.Sprintf("%s exceeds %s", fe.Namespace(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
	}
}

// ============================================================================
// PARSING
// ============================================================================

// Filters validates the request and resolves it against the dataset facets.
// Missing dates default to the dataset's purchase date bounds.
func (r Request) Filters(facets schema.Config) (engine.Filters, error) {
	if err := r.Validate(); err != nil {
		return engine.Filters{}, err
	}

	start, err := day(firstNonEmpty(r.Start, facets.MinDate))
	if err != nil {
		return engine.Filters{}, err
	}
	end, err := day(firstNonEmpty(r.End, facets.MaxDate))
	if err != nil {
		return engine.Filters{}, err
	}

	return engine.Filters{
		Dates:      engine.NewDateRange(start, end),
		Regions:    engine.OneOf(splitValues(r.Regions)...),
		Categories: engine.OneOf(splitValues(r.Categories)...),
	}, nil
}

// Default is the dashboard shown before any parameter is chosen: the full
// date range with no region or category restriction.
func Default(facets schema.Config) engine.Filters {
	f, err := Request{}.Filters(facets)
	if err != nil {
		return engine.Filters{}
	}
	return f
}

func day(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return t, nil
}

// splitValues flattens repeated and comma-separated values, dropping blanks.
func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
