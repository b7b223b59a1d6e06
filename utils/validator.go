package utils

import (
	"encoding/json"
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"coolrentals/models"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	e164Pattern    = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
	inPhonePattern = regexp.MustCompile(`^\+91\s?\d{10}$`)
	clock24Pattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	clock12Pattern = regexp.MustCompile(`(?i)^(0?[1-9]|1[0-2]):[0-5]\d\s?(AM|PM)$`)

	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the domain rules registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		rules := map[string]func(string) bool{
			"phone":       e164Pattern.MatchString,
			"inphone":     inPhonePattern.MatchString,
			"objectid":    primitive.IsValidObjectID,
			"clock":       func(s string) bool { return clock24Pattern.MatchString(s) || clock12Pattern.MatchString(s) },
			"unit_type":   func(s string) bool { return models.UnitType(s).Valid() },
			"unit_status": func(s string) bool { return models.UnitStatus(s).Valid() },
			"ac_type":     func(s string) bool { return models.ACType(s).Valid() },
			"duration":    func(s string) bool { return models.RentalDuration(s).Valid() },
			"badge":       func(s string) bool { return s == "" || models.ServiceBadge(s).Valid() },
		}
		for tag, fn := range rules {
			fn := fn
			_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				return fn(fl.Field().String())
			})
		}
		validate = v
	})
	return validate
}

// Validate checks v against its `validate` tags and reports the first violation
// using the message declared in the field's `msg` tag.
func Validate(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return InternalError(err)
	}
	fe := verrs[0]
	return ValidationError(fieldMessage(reflect.TypeOf(v), fe.StructField(), fe.Tag()))
}

// DecodeError turns a JSON decoding failure for target into a validation error.
func DecodeError(err error, target any) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		name := strings.SplitN(typeErr.Field, ".", 2)[0]
		if sf, ok := fieldByJSONName(reflect.TypeOf(target), name); ok {
			return ValidationError(fieldMessage(reflect.TypeOf(target), sf.Name, "type"))
		}
		return ValidationError("Invalid value for " + name)
	}
	var fieldErr *models.FieldDecodeError
	if errors.As(err, &fieldErr) {
		if sf, ok := fieldByJSONName(reflect.TypeOf(target), fieldErr.Field); ok {
			return ValidationError(fieldMessage(reflect.TypeOf(target), sf.Name, "type"))
		}
		return ValidationError(fieldErr.Message)
	}
	return ValidationError("Invalid request body")
}

func fieldMessage(t reflect.Type, structField, tag string) string {
	// Slice element failures are reported as "Images[0]".
	if i := strings.IndexByte(structField, '['); i >= 0 {
		structField = structField[:i]
	}
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil && t.Kind() == reflect.Struct {
		if sf, ok := t.FieldByName(structField); ok {
			msgs := parseMessages(sf.Tag.Get("msg"))
			if m, ok := msgs[tag]; ok {
				return m
			}
			if m, ok := msgs["*"]; ok {
				return m
			}
			return jsonName(sf) + " is invalid"
		}
	}
	return structField + " is invalid"
}

// parseMessages reads a `msg` tag of the form "required=Name is required;email=Please provide a valid email".
func parseMessages(tag string) map[string]string {
	out := map[string]string{}
	for _, part := range strings.Split(tag, ";") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}

func fieldByJSONName(t reflect.Type, name string) (reflect.StructField, bool) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return reflect.StructField{}, false
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if jsonName(sf) == name {
			return sf, true
		}
	}
	return reflect.StructField{}, false
}

func jsonName(sf reflect.StructField) string {
	name := strings.Split(sf.Tag.Get("json"), ",")[0]
	if name == "" {
		return sf.Name
	}
	return name
}
