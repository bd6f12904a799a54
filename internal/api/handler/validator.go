package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	loginEmailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern      = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// FieldErrors maps a form field name to the message shown under it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f+": "+fe[f])
	}
	return strings.Join(msgs, "; ")
}

// fieldMessager lets a form word its own errors. tag is the failed
// validation tag.
type fieldMessager interface {
	fieldMessage(field, tag string) string
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	mustRegister(v, "loginemail", matches(loginEmailPattern))
	mustRegister(v, "emailaddr", matches(emailPattern))
	mustRegister(v, "phone", matches(phonePattern))
	v.RegisterStructValidation(passwordOnCreate, accountantForm{}, clientForm{})
	return &echoValidator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// passwordOnCreate requires a password when the form creates a new user.
// Edits may leave it blank to keep the stored one.
func passwordOnCreate(sl validator.StructLevel) {
	var id, password string
	switch f := sl.Current().Interface().(type) {
	case accountantForm:
		id, password = f.ID, f.Password
	case clientForm:
		id, password = f.ID, f.Password
	default:
		return
	}
	if id == "" && password == "" {
		sl.ReportError(password, "password", "Password", "required", "")
	}
}

// Validate satisfies the echo.Validator interface. Field failures come back
// as FieldErrors.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := make(FieldErrors, len(ve))
	fm, _ := i.(fieldMessager)
	for _, fe := range ve {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		msg := ""
		if fm != nil {
			msg = fm.fieldMessage(field, fe.Tag())
		}
		if msg == "" {
			msg = fieldError(fe)
		}
		out[field] = msg
	}
	return out
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}
