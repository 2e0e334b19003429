package translate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/wrapping-quotes/internal/quote"
	"github.com/noah-isme/wrapping-quotes/internal/shape"
)

// QuoteInput is the raw selection submitted by a quote form.
type QuoteInput struct {
	Title      string   `json:"title"`
	Shape      string   `json:"shape" validate:"required,oneof=cube cuboid cylinder"`
	Dimensions []string `json:"dimensions" validate:"max=3"`
	Paper      string   `json:"paper" validate:"required,oneof=cheap expensive"`
	Colour     string   `json:"colour"`
	Bow        bool     `json:"bow"`
	GiftCard   bool     `json:"giftCard"`
	Message    string   `json:"message"`
}

// ValidationError collects every field that failed while building a quote.
type ValidationError struct {
	Fields map[string]string
	errs   []error
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid quote: " + strings.Join(parts, "; ")
}

// Unwrap exposes the underlying sentinel errors to errors.Is.
func (e *ValidationError) Unwrap() []error {
	return e.errs
}

func (e *ValidationError) add(field string, err error) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = err.Error()
	e.errs = append(e.errs, err)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// usedDimensions is how many of the three dimension slots each shape reads.
var usedDimensions = map[shape.Kind]int{
	shape.KindCube:     1,
	shape.KindCuboid:   3,
	shape.KindCylinder: 2,
}

// BuildQuote validates in and assembles a quote from it. Any failure is
// reported as a *ValidationError.
func BuildQuote(in QuoteInput) (quote.Quote, error) {
	in.Shape = normalizeTag(in.Shape)
	in.Paper = normalizeTag(in.Paper)

	verr := &ValidationError{}
	if err := structValidator().Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return quote.Quote{}, err
		}
		for _, fe := range fieldErrs {
			verr.add(fe.Field(), structErr(fe))
		}
		return quote.Quote{}, verr
	}

	dims := dimensionsFor(in)
	s, err := ParsePresent(in.Shape, dims[0], dims[1], dims[2])
	if err != nil {
		verr.add("dimensions", err)
	} else if err := ValidateDimensions(s); err != nil {
		verr.add("dimensions", err)
	} else if s.RecommendedArea() <= 0 {
		verr.add("dimensions", fmt.Errorf("%w: area out of range", shape.ErrInvalidDimensions))
	}

	colour, err := ParseColour(in.Colour)
	if err != nil {
		verr.add("colour", err)
	}
	p, err := ParsePaper(in.Paper, colour)
	if err != nil {
		verr.add("paper", err)
	}
	if len(verr.Fields) > 0 {
		return quote.Quote{}, verr
	}

	return quote.New(in.Title, s, p, ParseBow(in.Bow), ParseGiftCard(in.GiftCard, in.Message)), nil
}

// dimensionsFor pads the submitted dimensions to three and fills the slots the
// shape ignores so they cannot fail parsing.
func dimensionsFor(in QuoteInput) []string {
	dims := make([]string, 3)
	copy(dims, in.Dimensions)
	used := usedDimensions[shape.Kind(in.Shape)]
	for i := used; i < len(dims); i++ {
		if strings.TrimSpace(dims[i]) == "" {
			dims[i] = "0"
		}
	}
	return dims
}

func structErr(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return errors.New("is required")
	case "oneof":
		cause := ErrUnknownPaper
		if fe.Field() == "shape" {
			cause = ErrUnknownShape
		}
		return fmt.Errorf("%w: must be one of %s", cause, fe.Param())
	case "max":
		return fmt.Errorf("must have at most %s entries", fe.Param())
	default:
		return fmt.Errorf("failed %s", fe.Tag())
	}
}
