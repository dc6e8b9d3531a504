package validate

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Kind selects how a field's raw value is coerced
type Kind int

const (
	Text Kind = iota
	Number
	Integer
)

// Field describes one schema entry: the form field name, how to coerce
// it, and the constraints it must satisfy
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Min      *float64 // inclusive, Number/Integer only
	Max      *float64 // inclusive, Number/Integer only
}

// Schema is an ordered set of field descriptions. New fields extend the
// slice; the evaluation loop never changes.
type Schema struct {
	Fields []Field
}

// Violation is a single field-level constraint failure
type Violation struct {
	Field   string
	Message string
}

// Violations is the structured result of a failed validation
type Violations struct {
	Items []Violation
}

// Error implements error
func (v *Violations) Error() string {
	msgs := make([]string, len(v.Items))
	for i, item := range v.Items {
		msgs[i] = item.Field + ": " + item.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ByField returns the message for a field, or empty if the field passed
func (v *Violations) ByField(name string) string {
	for _, item := range v.Items {
		if item.Field == name {
			return item.Message
		}
	}
	return ""
}

// Values holds the coerced output of a successful validation
type Values struct {
	text    map[string]string
	numbers map[string]float64
}

// Text returns the cleaned text value for a field
func (v *Values) Text(name string) string {
	return v.text[name]
}

// Number returns the coerced numeric value for a field
func (v *Values) Number(name string) float64 {
	return v.numbers[name]
}

// Int returns the coerced integer value for a field
func (v *Values) Int(name string) int {
	return int(v.numbers[name])
}

// Min returns a pointer to the given bound, for use in Field literals
func Min(n float64) *float64 { return &n }

// Max returns a pointer to the given bound, for use in Field literals
func Max(n float64) *float64 { return &n }

// Apply checks the submitted form values against the schema, returning
// either the coerced values or the full list of field violations.
// Nothing is partially applied: a single violation fails the whole payload.
func (s Schema) Apply(form url.Values) (*Values, *Violations) {
	out := &Values{
		text:    make(map[string]string),
		numbers: make(map[string]float64),
	}
	var violations []Violation

	for _, f := range s.Fields {
		raw := strings.TrimSpace(form.Get(f.Name))

		if raw == "" {
			if f.Required {
				violations = append(violations, Violation{f.Name, "is required"})
			}
			continue
		}

		switch f.Kind {
		case Text:
			out.text[f.Name] = raw

		case Number, Integer:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				violations = append(violations, Violation{f.Name, "must be a number"})
				continue
			}
			if f.Kind == Integer && n != float64(int(n)) {
				violations = append(violations, Violation{f.Name, "must be a whole number"})
				continue
			}
			if f.Min != nil && n < *f.Min {
				violations = append(violations, Violation{f.Name, fmt.Sprintf("must be at least %g", *f.Min)})
				continue
			}
			if f.Max != nil && n > *f.Max {
				violations = append(violations, Violation{f.Name, fmt.Sprintf("must be at most %g", *f.Max)})
				continue
			}
			out.numbers[f.Name] = n
		}
	}

	if len(violations) > 0 {
		return nil, &Violations{Items: violations}
	}
	return out, nil
}
