// Package validation runs the submit-time checks on edited records and
// account forms. Checks collect every violation instead of stopping at the
// first one.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Violation is one user-facing validation message.
type Violation struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Error carries every violation found by a check.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

// Messages returns the violation messages in report order.
func (e *Error) Messages() []string {
	out := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		out[i] = v.Message
	}
	return out
}

// AsError extracts a *Error from err.
func AsError(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Join combines the violations of several checks. A non-validation error
// is returned as is.
func Join(errs ...error) error {
	var c collector
	for _, err := range errs {
		if err := c.merge(err); err != nil {
			return err
		}
	}
	return c.err()
}

// collector accumulates violations, dropping exact duplicates.
type collector struct {
	seen map[string]struct{}
	list []Violation
}

func (c *collector) add(field, msg string) {
	if c.seen == nil {
		c.seen = map[string]struct{}{}
	}
	if _, dup := c.seen[msg]; dup {
		return
	}
	c.seen[msg] = struct{}{}
	c.list = append(c.list, Violation{Field: field, Message: msg})
}

func (c *collector) merge(err error) error {
	if err == nil {
		return nil
	}
	ve, ok := AsError(err)
	if !ok {
		return err
	}
	for _, v := range ve.Violations {
		c.add(v.Field, v.Message)
	}
	return nil
}

func (c *collector) err() error {
	if len(c.list) == 0 {
		return nil
	}
	return &Error{Violations: c.list}
}

// Validator bundles the struct validator, the record schemas and a clock.
type Validator struct {
	v       *validator.Validate
	schemas *schemaSet
	now     func() time.Time
}

// New builds a Validator. A nil clock means time.Now.
func New(now func() time.Time) (*Validator, error) {
	if now == nil {
		now = time.Now
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	schemas, err := loadSchemas()
	if err != nil {
		return nil, err
	}
	return &Validator{v: v, schemas: schemas, now: now}, nil
}

// MustNew is New for program start-up.
func MustNew(now func() time.Time) *Validator {
	v, err := New(now)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate satisfies the echo.Validator interface.
func (v *Validator) Validate(i any) error {
	return v.Struct(i)
}

// Struct runs the validate tags of i and reports them as violations.
func (v *Validator) Struct(i any) error {
	if err := v.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return err
		}
		var c collector
		for _, fe := range ve {
			c.add(fe.Field(), fieldError(fe))
		}
		return c.err()
	}
	return nil
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	if field == "phoneNumber" {
		return "Phone number must be 10 digits long"
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "url":
		return field + " must be a valid URL"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters long", field, fe.Param())
	case "numeric":
		return field + " must contain only digits"
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
