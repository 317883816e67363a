package sanitizer

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]func(string) string{
		"trim":        Trim,
		"single_line": SingleLine,
		"no_spaces":   RemoveExtraWhitespace,
		"no_control":  RemoveControlChars,
		"nfc":         NormalizeUnicode,

		// Composite sanitizer for free-text form inputs
		"text": func(s string) string {
			return NormalizeUnicode(SingleLine(RemoveControlChars(s)))
		},
	}
)

// RegisterSanitizer adds a custom sanitizer function to the registry
func RegisterSanitizer(name string, fn func(string) string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// SanitizeStruct applies sanitization to struct fields based on their tags.
// Nested structs, pointers to structs and slices of structs are processed recursively.
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return errors.New("sanitizer: must pass a pointer to struct")
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return errors.New("sanitizer: must pass a pointer to struct")
	}

	sanitizeStructRecursive(rv)
	return nil
}

func sanitizeStructRecursive(rv reflect.Value) {
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		tag := rt.Field(i).Tag.Get("sanitize")
		if tag == "-" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			if tag != "" {
				field.SetString(applySanitizers(field.String(), tag))
			}

		case reflect.Pointer:
			if field.IsNil() {
				continue
			}
			elem := field.Elem()
			switch {
			case elem.Kind() == reflect.String && tag != "":
				elem.SetString(applySanitizers(elem.String(), tag))
			case elem.Kind() == reflect.Struct:
				sanitizeStructRecursive(elem)
			}

		case reflect.Struct:
			sanitizeStructRecursive(field)

		case reflect.Slice:
			switch field.Type().Elem().Kind() {
			case reflect.String:
				if tag == "" {
					continue
				}
				for j := range field.Len() {
					elem := field.Index(j)
					elem.SetString(applySanitizers(elem.String(), tag))
				}
			case reflect.Struct:
				for j := range field.Len() {
					sanitizeStructRecursive(field.Index(j))
				}
			}
		}
	}
}

func applySanitizers(value string, tag string) string {
	result := value

	registryMu.RLock()
	defer registryMu.RUnlock()

	for name := range strings.SplitSeq(tag, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		// max:100 truncates to 100 runes
		if limit, ok := strings.CutPrefix(name, "max:"); ok {
			if n, err := strconv.Atoi(limit); err == nil && n > 0 {
				result = MaxLength(result, n)
			}
			continue
		}

		if fn, ok := registry[name]; ok {
			result = fn(result)
		}
	}

	return result
}
