package bind

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// Codec is the serialization capability registered under a type name.
// Decode and Encode cover wire bodies (JSON or any other format the codec
// chooses); Describe supplies the human-readable text used by the doc
// renderer; GoType is the concrete Go type a decoded value carries, used
// for handler shape checks at Bind time.
type Codec interface {
	Decode(data []byte) (any, error)
	Encode(v any) ([]byte, error)
	Describe() string
	GoType() reflect.Type
}

// TextCodec is optionally implemented by codecs whose values can appear in
// a path segment or query parameter. Path and query text is raw, never
// JSON-quoted, so it needs its own conversion.
type TextCodec interface {
	DecodeText(s string) (any, error)
	EncodeText(v any) (string, error)
}

// JSONType builds a Codec for T backed by encoding/json. Scalar shapes
// (string, integer, float, bool kinds and time.Duration) also satisfy
// TextCodec, so they may be used for captures and query parameters.
func JSONType[T any](describe string) Codec {
	t := reflect.TypeFor[T]()
	if textableKind(t) {
		return textJSONCodec[T]{jsonCodec[T]{describe: describe}}
	}
	return jsonCodec[T]{describe: describe}
}

type jsonCodec[T any] struct {
	describe string
}

func (c jsonCodec[T]) Decode(data []byte) (any, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (c jsonCodec[T]) Encode(v any) ([]byte, error) {
	tv, ok := v.(T)
	if !ok {
		return nil, fmt.Errorf("encode: want %s, got %T", reflect.TypeFor[T](), v)
	}
	return json.Marshal(tv)
}

func (c jsonCodec[T]) Describe() string { return c.describe }

func (c jsonCodec[T]) GoType() reflect.Type { return reflect.TypeFor[T]() }

// textJSONCodec augments jsonCodec with raw-text conversion for scalar kinds.
type textJSONCodec[T any] struct {
	jsonCodec[T]
}

func (c textJSONCodec[T]) DecodeText(s string) (any, error) {
	var v T
	if err := setFromText(reflect.ValueOf(&v).Elem(), s); err != nil {
		return nil, err
	}
	return v, nil
}

func (c textJSONCodec[T]) EncodeText(v any) (string, error) {
	tv, ok := v.(T)
	if !ok {
		return "", fmt.Errorf("encode: want %s, got %T", reflect.TypeFor[T](), v)
	}
	return formatText(reflect.ValueOf(tv))
}

// textableKind reports whether values of t can round-trip through raw
// path/query text.
func textableKind(t reflect.Type) bool {
	if t == reflect.TypeFor[time.Duration]() {
		return true
	}
	//exhaustive:ignore
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// setFromText sets a reflect.Value from raw text, supporting common scalar types.
func setFromText(field reflect.Value, value string) error {
	if field.Type() == reflect.TypeFor[time.Duration]() {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(d))
		return nil
	}

	//exhaustive:ignore
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported type: %s", field.Type())
	}
	return nil
}

// formatText renders a scalar reflect.Value as raw path/query text.
func formatText(v reflect.Value) (string, error) {
	if v.Type() == reflect.TypeFor[time.Duration]() {
		return v.Interface().(time.Duration).String(), nil
	}

	//exhaustive:ignore
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits()), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	default:
		return "", fmt.Errorf("unsupported type: %s", v.Type())
	}
}
