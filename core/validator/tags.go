package validator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// ValidatorFunc is a function that validates a value and returns a Rule
type ValidatorFunc func(field string, value reflect.Value, params []string) Rule

var (
	registryMu sync.RWMutex
	registry   = map[string]ValidatorFunc{
		"required": requiredValidator,
		"email":    emailValidator,
		"max":      maxValidator,
	}
)

// RegisterValidator adds a custom validator function to the registry
func RegisterValidator(name string, fn ValidatorFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// ValidateStruct validates a struct based on its `validate` field tags.
// Rules are separated by semicolons, parameters follow a colon: `validate:"required;max:200"`.
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return fmt.Errorf("validator: must pass a pointer to struct")
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("validator: must pass a pointer to struct")
	}

	var errs ValidationErrors
	validateStructRecursive(rv, "", &errs)

	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func validateStructRecursive(rv reflect.Value, prefix string, errs *ValidationErrors) {
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		structField := rt.Field(i)
		tag := structField.Tag.Get("validate")
		if tag == "-" {
			continue
		}

		fieldPath := fieldName(structField)
		if prefix != "" {
			fieldPath = prefix + "." + fieldPath
		}

		switch {
		case field.Kind() == reflect.Struct && tag == "":
			validateStructRecursive(field, fieldPath, errs)
		case field.Kind() == reflect.Slice && field.Type().Elem().Kind() == reflect.Struct:
			if tag != "" {
				validateField(fieldPath, field, tag, errs)
			}
			for j := range field.Len() {
				validateStructRecursive(field.Index(j), fieldPath+"."+strconv.Itoa(j), errs)
			}
		case tag != "":
			validateField(fieldPath, field, tag, errs)
		}
	}
}

// fieldName prefers the form tag so errors can be mapped back to inputs.
func fieldName(sf reflect.StructField) string {
	if tag := sf.Tag.Get("form"); tag != "" && tag != "-" {
		name, _, _ := strings.Cut(tag, ",")
		return name
	}
	return sf.Name
}

func validateField(fieldPath string, field reflect.Value, tag string, errs *ValidationErrors) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for ruleStr := range strings.SplitSeq(tag, ";") {
		ruleStr = strings.TrimSpace(ruleStr)
		if ruleStr == "" {
			continue
		}

		name, paramStr, _ := strings.Cut(ruleStr, ":")
		name = strings.TrimSpace(name)

		var params []string
		if paramStr = strings.TrimSpace(paramStr); paramStr != "" {
			params = strings.Split(paramStr, ",")
			for i := range params {
				params[i] = strings.TrimSpace(params[i])
			}
		}

		if fn, ok := registry[name]; ok {
			rule := fn(fieldPath, field, params)
			if !rule.Check() {
				errs.Add(rule.Error)
			}
		}
	}
}

func requiredValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() == reflect.String {
		return Required(field, value.String())
	}
	return Rule{
		Check: func() bool {
			switch value.Kind() {
			case reflect.Slice, reflect.Map, reflect.Array:
				return value.Len() > 0
			case reflect.Pointer, reflect.Interface:
				return !value.IsNil()
			default:
				return !value.IsZero()
			}
		},
		Error: ValidationError{Field: field, Message: "field is required"},
	}
}

func emailValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return Rule{Check: func() bool { return true }}
	}
	return ValidEmail(field, value.String())
}

func maxValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 || value.Kind() != reflect.String {
		return Rule{Check: func() bool { return true }}
	}
	max, _ := strconv.Atoi(params[0])
	return MaxLenString(field, value.String(), max)
}
