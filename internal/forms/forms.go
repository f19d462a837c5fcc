// Package forms validates user input before anything is written to the store.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/conorfennell/nyx/internal/domain"
)

// personNamePattern allows letters, whitespace and hyphens only.
var personNamePattern = regexp.MustCompile(`^[A-Za-z\s\-]+$`)

// ValidationError maps a form field to a human-readable problem.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Validator wraps a validator.Validate with the form-specific tags registered.
// Today is consulted by the date tags.
type Validator struct {
	v     *validator.Validate
	today func() time.Time
}

// New returns a Validator that evaluates date rules against the given clock.
func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	fv := &Validator{v: validator.New(validator.WithRequiredStructEnabled()), today: now}

	fv.v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" {
			return name
		}
		return f.Name
	})
	fv.mustRegister("notblank", validators.NotBlank)
	fv.mustRegister("personname", func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	})
	fv.mustRegister("pastdate", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(time.Time)
		return ok && d.Format(domain.DateLayout) < fv.todayString()
	})
	fv.mustRegister("notfuture", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(time.Time)
		return ok && d.Format(domain.DateLayout) <= fv.todayString()
	})
	return fv
}

func (fv *Validator) mustRegister(tag string, fn validator.Func) {
	if err := fv.v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

func (fv *Validator) todayString() string {
	return fv.today().Format(domain.DateLayout)
}

// Struct validates any of the forms in this package.
func (fv *Validator) Struct(form any) error {
	err := fv.v.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		if _, seen := out.Fields[fe.Field()]; seen {
			continue
		}
		out.Fields[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "personname":
		return "may only contain letters, spaces and hyphens"
	case "pastdate":
		return "must be before today"
	case "notfuture":
		return "must not be in the future"
	case "email":
		return "is not a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "eqfield":
		return "does not match"
	case "gt":
		return "must be greater than " + fe.Param()
	}
	return "failed " + fe.Tag() + " check"
}
