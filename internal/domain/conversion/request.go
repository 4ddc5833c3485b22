// Package conversion turns a (from, to, value) selection into a prompt, asks the
// remote model for an answer, and classifies the result for display.
//
// There is no conversion arithmetic here: the model's text is the answer.
package conversion

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matiasleandrokruk/unitai/internal/domain/units"
)

// Sources identify which surface submitted a request.
const (
	SourceWeb = "web"
	SourceAPI = "api"
	SourceCLI = "cli"
	SourceMCP = "mcp"
)

// Request is one conversion submission. It is never stored as-is.
type Request struct {
	Category string  `json:"category,omitempty"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Value    float64 `json:"value"`
	Source   string  `json:"source,omitempty"`
}

// Normalized returns a copy with surrounding whitespace removed from labels.
func (r Request) Normalized() Request {
	r.Category = strings.TrimSpace(r.Category)
	r.From = strings.TrimSpace(r.From)
	r.To = strings.TrimSpace(r.To)
	return r
}

// FormatValue renders v with the fewest digits that round-trip: 5, 2.5, -40.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BuildPrompt returns the exact text sent to the model:
// "Convert {value} {from_unit} to {to_unit}."
func BuildPrompt(r Request) string {
	return fmt.Sprintf("Convert %s %s to %s.", FormatValue(r.Value), r.From, r.To)
}

// Warning texts shown for requests the user can fix.
const (
	MissingUnitsMessage = "Please select both units!"
	InvalidValueMessage = "Please enter a valid number."
)

var (
	ErrMissingUnits      = errors.New("both units are required")
	ErrInvalidValue      = errors.New("value must be a finite number")
	ErrValueBelowMinimum = errors.New("value below category minimum")
	ErrUnknownCategory   = units.ErrUnknownCategory
	ErrUnknownUnit       = errors.New("unit not in category")
	ErrGenerationFailed  = errors.New("could not generate response")
	ErrEmptyResponse     = errors.New("model returned an empty response")

	errNoCatalog = errors.New("category given but no catalog configured")
)

// ValidationError is a request the user can fix. Message is safe to display.
type ValidationError struct {
	Err     error
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidation reports whether err came from Validate.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalid(err error, format string, args ...any) *ValidationError {
	return &ValidationError{Err: err, Message: fmt.Sprintf(format, args...)}
}

// Validate checks r against the catalog. An empty category skips the
// membership and minimum checks so free-form API callers are not boxed in.
// On success it returns r with the category and unit labels in their catalog
// spelling.
func Validate(r Request, catalog *units.Catalog) (Request, error) {
	r = r.Normalized()
	if r.From == "" || r.To == "" {
		return r, invalid(ErrMissingUnits, MissingUnitsMessage)
	}
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return r, invalid(ErrInvalidValue, InvalidValueMessage)
	}
	if r.Category == "" {
		return r, nil
	}
	if catalog == nil {
		return r, errNoCatalog
	}

	cat, err := catalog.Category(r.Category)
	if err != nil {
		return r, invalid(ErrUnknownCategory, "Unknown category %q.", r.Category)
	}
	r.Category = cat.Name
	for _, label := range []*string{&r.From, &r.To} {
		u, ok := cat.Unit(*label)
		if !ok {
			return r, invalid(ErrUnknownUnit, "%q is not a %s unit.", *label, cat.Name)
		}
		*label = u
	}
	if cat.MinValue != nil && r.Value < *cat.MinValue {
		return r, invalid(ErrValueBelowMinimum, "%s values must be at least %s.", cat.Name, FormatValue(*cat.MinValue))
	}
	return r, nil
}
