package xmlmap

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// Decode constructs a model instance from a parsed document mapping. v
// must be a non-nil pointer to a struct; fields are matched by their xml
// struct tags ("name", "name,attr", ",chardata") falling back to the
// field name. Absent keys leave fields at their zero value, so optional
// pointers stay nil and absent collections stay empty.
func Decode(m map[string]any, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("xmlmap: decode target must be a non-nil struct pointer, got %T", v)
	}

	return decodeStruct(m, rv.Elem())
}

func decodeStruct(m map[string]any, sv reflect.Value) error {
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

			// Embedded bases share the parent's mapping.
			if fv.Kind() == reflect.Struct {
				if err := decodeStruct(m, fv); err != nil {
					return err
				}
			}

			continue
		}

		key, _ := wireKey(field)

		raw, ok := m[key]
		if !ok || raw == nil {
			continue
		}

		if err := assign(fv, raw); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}

	return nil
}

// wireKey derives the mapping key and attribute flag for a struct field
// from its xml tag.
func wireKey(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("xml")
	if tag == "" {
		return field.Name, false
	}

	parts := strings.Split(tag, ",")
	name := parts[0]

	if name == "" {
		name = field.Name
	}

	for _, p := range parts[1:] {
		switch p {
		case "attr":
			return "@" + name, true
		case "chardata":
			return "#text", false
		}
	}

	return name, false
}

func assign(v reflect.Value, raw any) error {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}

		return assign(v.Elem(), raw)

	case reflect.Slice:
		items, ok := raw.([]any)
		if !ok {
			items = []any{raw}
		}

		out := reflect.MakeSlice(v.Type(), len(items), len(items))
		for i, item := range items {
			if err := assign(out.Index(i), item); err != nil {
				return err
			}
		}

		v.Set(out)

		return nil

	case reflect.Struct:
		if v.Type() == timeType {
			return assignTime(v, raw)
		}

		m, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("expected element content, got %T", raw)
		}

		return decodeStruct(m, v)

	case reflect.Interface:
		v.Set(reflect.ValueOf(raw))
		return nil

	default:
		return assignScalar(v, raw)
	}
}

func assignScalar(v reflect.Value, raw any) error {
	s, err := scalarText(raw)
	if err != nil {
		return err
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(s)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q: %w", s, err)
		}

		v.SetInt(n)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", s, err)
		}

		v.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("invalid boolean %q: %w", s, err)
		}

		v.SetBool(b)

	default:
		return fmt.Errorf("unsupported field kind %s", v.Kind())
	}

	return nil
}

func assignTime(v reflect.Value, raw any) error {
	s, err := scalarText(raw)
	if err != nil {
		return err
	}

	s = strings.TrimSpace(s)

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// xsd:date carries no time portion.
		t, err = time.Parse("2006-01-02", s)
	}

	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}

	v.Set(reflect.ValueOf(t))

	return nil
}

// scalarText extracts the textual content of a mapping value: strings
// pass through, element maps with attributes yield their "#text" entry.
func scalarText(raw any) (string, error) {
	switch t := raw.(type) {
	case string:
		return t, nil
	case map[string]any:
		if s, ok := t["#text"].(string); ok {
			return s, nil
		}

		return "", fmt.Errorf("element has no text content")
	default:
		return "", fmt.Errorf("expected text content, got %T", raw)
	}
}
