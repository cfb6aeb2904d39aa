package xmlmap

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// Encode dumps a model instance into its nested-mapping form using wire
// names: nil optionals are omitted, attributes become "@"-prefixed keys,
// and scalars are rendered as strings ready for serialization. v must be
// a struct or a pointer to one.
func Encode(v any) (map[string]any, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("xmlmap: encode source is nil")
		}

		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("xmlmap: encode source must be a struct, got %T", v)
	}

	return encodeStruct(rv)
}

func encodeStruct(sv reflect.Value) (map[string]any, error) {
	m := make(map[string]any)

	if err := encodeFields(sv, m); err != nil {
		return nil, err
	}

	return m, nil
}

func encodeFields(sv reflect.Value, m map[string]any) error {
	st := sv.Type()

	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}

		fv := sv.Field(i)

		if field.Anonymous {
			if field.Type == reflect.TypeOf(Abstract{}) {
				continue
			}

			if fv.Kind() == reflect.Struct {
				// Embedded base fields flatten into the parent.
				if err := encodeFields(fv, m); err != nil {
					return err
				}
			}

			continue
		}

		if fv.Kind() == reflect.Pointer && fv.IsNil() {
			continue
		}

		if fv.Kind() == reflect.Slice && fv.IsNil() {
			continue
		}

		key, _ := wireKey(field)

		val, err := encodeValue(fv)
		if err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}

		m[key] = val
	}

	return nil
}

func encodeValue(v reflect.Value) (any, error) {
	switch v.Kind() {
	case reflect.Pointer:
		return encodeValue(v.Elem())

	case reflect.Slice:
		out := make([]any, v.Len())

		for i := 0; i < v.Len(); i++ {
			item, err := encodeValue(v.Index(i))
			if err != nil {
				return nil, err
			}

			out[i] = item
		}

		return out, nil

	case reflect.Struct:
		if v.Type() == timeType {
			return v.Interface().(time.Time).Format(time.RFC3339), nil
		}

		return encodeStruct(v)

	case reflect.String:
		return v.String(), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil

	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64), nil

	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil

	default:
		return nil, fmt.Errorf("unsupported field kind %s", v.Kind())
	}
}
