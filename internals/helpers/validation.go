package helper

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"campusevents_backend/internals/constants"
)

var (
	tagPattern   = regexp.MustCompile(`^[a-zA-Z0-9-]{2,20}$`)
	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)
)

// Validate is the shared validator with the custom tags registered.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// use json names in error maps
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("event_tag", func(fl validator.FieldLevel) bool {
		return IsValidTag(fl.Field().String())
	})
	_ = v.RegisterValidation("event_category", func(fl validator.FieldLevel) bool {
		return constants.IsValidCategory(fl.Field().String())
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	return v
}

func IsValidTag(tag string) bool {
	return tagPattern.MatchString(tag)
}

// ValidateStruct runs the validator and converts failures to a Validation AppError.
func ValidateStruct(s any) error {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return ErrValidation("Invalid input")
	}
	fields := ValidationMessages(ve)
	msg := "Validation failed"
	if len(ve) > 0 {
		msg = validationMessage(ve[0])
	}
	return &AppError{Kind: KindValidation, Message: msg, Fields: fields}
}

func ValidationMessages(ve validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		key := fieldKey(fe)
		out[key] = append(out[key], validationMessage(fe))
	}
	return out
}

// fieldKey strips the struct name from the namespace ("RegisterRequest.tags[0]" -> "tags[0]").
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	field := fieldKey(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid id", field)
	case "event_tag":
		return fmt.Sprintf("Invalid tag: %v. Tags must be 2-20 characters long and contain only letters, numbers, and hyphens.", fe.Value())
	case "event_category":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(constants.EventCategories, ", "))
	case "clock":
		return fmt.Sprintf("%s must be a time in HH:MM format", field)
	case "ymd":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
