package configvalidator

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrUnknownField returns when an unknown field appears in the config.
var ErrUnknownField = errors.New("unknown field")

// CheckForUnknownFields validates the config map against the config struct:
// every key must match a `mapstructure` tag (or a field name) of the struct
// at the same level, nested maps must correspond to nested structs.
func CheckForUnknownFields(configMap map[string]any, config any) error {
	return checkForUnknownFields(configMap, reflect.TypeOf(config), "")
}

func checkForUnknownFields(configMap map[string]any, t reflect.Type, currentPath string) error {
	fields := fieldsOf(t)

	for key, val := range configMap {
		fullPath := key
		if currentPath != "" {
			fullPath = currentPath + "." + key
		}

		ft, ok := fields[key]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, fullPath)
		}

		if ft.Kind() == reflect.Slice {
			ft = ft.Elem()
		}

		switch v := val.(type) {
		case map[string]any:
			if ft.Kind() != reflect.Struct {
				return fmt.Errorf("%w: %s is not a section", ErrUnknownField, fullPath)
			}
			if err := checkForUnknownFields(v, ft, fullPath); err != nil {
				return err
			}
		case []any:
			if ft.Kind() != reflect.Struct {
				continue
			}
			for i := range v {
				m, ok := v[i].(map[string]any)
				if !ok {
					return fmt.Errorf("%w: %s[%d] is not a section", ErrUnknownField, fullPath, i)
				}
				if err := checkForUnknownFields(m, ft, fmt.Sprintf("%s[%d]", fullPath, i)); err != nil {
					return err
				}
			}
		default:
			if ft.Kind() == reflect.Struct {
				return fmt.Errorf("%w: %s is a section", ErrUnknownField, fullPath)
			}
		}
	}

	return nil
}

func fieldsOf(t reflect.Type) map[string]reflect.Type {
	fields := make(map[string]reflect.Type, t.NumField())
	for i := range t.NumField() {
		field := t.Field(i)
		if tag := field.Tag.Get("mapstructure"); tag != "" {
			fields[tag] = field.Type
		} else {
			fields[field.Name] = field.Type
		}
	}
	return fields
}
