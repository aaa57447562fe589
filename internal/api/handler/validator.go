package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tariq-shuvo/social-media-rest-api/internal/core/domain"
)

// dateLayouts are the accepted shapes of a date field, tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01"}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Field errors are reported under their json name with the message from the
// field's msg tag.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := parseDate(fl.Field().String())
		return err == nil
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	t := reflect.TypeOf(i)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	out := &domain.ValidationError{Fields: make([]domain.FieldError, 0, len(ve))}
	for _, fe := range ve {
		out.Fields = append(out.Fields, domain.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(t, fe),
		})
	}
	return out
}

// fieldMessage prefers the msg tag of the failing field and falls back to a
// message built from the rule.
func fieldMessage(t reflect.Type, fe validator.FieldError) string {
	if t.Kind() == reflect.Struct {
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if msg := sf.Tag.Get("msg"); msg != "" {
				return msg
			}
		}
	}

	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, strings.ToLower(fe.Param()))
	case "date":
		return field + " must be a date"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// optionalDate parses s when present.
func optionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// dateRange parses validated from/to fields.
func dateRange(from, to string) (time.Time, *time.Time, error) {
	f, err := parseDate(from)
	if err != nil {
		return time.Time{}, nil, &domain.ValidationError{Fields: []domain.FieldError{{Field: "from", Message: "From date is required."}}}
	}
	t, err := optionalDate(to)
	if err != nil {
		return time.Time{}, nil, &domain.ValidationError{Fields: []domain.FieldError{{Field: "to", Message: "To date is not a valid date."}}}
	}
	return f, t, nil
}
