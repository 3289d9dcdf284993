// Package params binds loosely typed MCP tool arguments to ordered request
// parameters using a declarative field table per tool.
package params

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind is the declared type of a tool argument.
type Kind int

const (
	String Kind = iota
	Number
	Boolean
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "unknown"
}

// Field declares one tool argument.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// InPath marks identifiers interpolated into the URL path.
	InPath bool
	// Rename sends the value under a different key than the argument name.
	Rename string
	// Message replaces the default "<name> is required" error.
	Message string

	Description string
	Enum        []string
	Default     any
	Items       []Field
	Properties  []Field
}

// Key is the outgoing parameter name.
func (f Field) Key() string {
	if f.Rename != "" {
		return f.Rename
	}
	return f.Name
}

// FieldError reports an argument that failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

// Pair is one bound parameter.
type Pair struct {
	Key   string
	Value any
}

// Values is an ordered parameter list. Order follows the field table.
type Values []Pair

// Add appends key with value.
func (v *Values) Add(key string, value any) {
	*v = append(*v, Pair{Key: key, Value: value})
}

// Get returns the first value stored under key.
func (v Values) Get(key string) (any, bool) {
	for _, p := range v {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Str returns the value under key formatted as a string, or "" if absent.
func (v Values) Str(key string) string {
	val, ok := v.Get(key)
	if !ok || val == nil {
		return ""
	}
	return Format(val)
}

// Without returns a copy of v with the named keys removed.
func (v Values) Without(keys ...string) Values {
	out := make(Values, 0, len(v))
	for _, p := range v {
		skip := false
		for _, k := range keys {
			if p.Key == k {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, p)
		}
	}
	return out
}

// Map returns v as a map suitable for a JSON request body.
func (v Values) Map() map[string]any {
	m := make(map[string]any, len(v))
	for _, p := range v {
		m[p.Key] = p.Value
	}
	return m
}

// Format stringifies a scalar parameter value the way it is sent on the wire.
func Format(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	}
	return fmt.Sprint(v)
}

// Bind validates args against fields and returns the supplied values in
// field order. Required fields are checked before any coercion error is
// reported so callers see the first missing field.
func Bind(fields []Field, args map[string]any) (Values, error) {
	for _, f := range fields {
		if f.Required && isMissing(f, args[f.Name]) {
			return nil, f.requiredError()
		}
	}

	out := make(Values, 0, len(fields))
	for _, f := range fields {
		raw, ok := args[f.Name]
		if !ok || raw == nil {
			continue
		}
		if f.Kind == String && raw == "" {
			continue
		}

		val, err := coerce(f, raw)
		if err != nil {
			return nil, err
		}
		if f.InPath {
			if err := checkPathSegment(f.Name, Format(val)); err != nil {
				return nil, err
			}
		}
		out.Add(f.Key(), val)
	}
	return out, nil
}

func (f Field) requiredError() error {
	msg := f.Message
	if msg == "" {
		msg = f.Name + " is required"
	}
	return &FieldError{Field: f.Name, Message: msg}
}

// isMissing reports whether v fails a required check. For string fields
// false also counts as missing so it never reaches a URL as "false".
func isMissing(f Field, v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return f.Kind == String && !t
	}
	return false
}

func coerce(f Field, raw any) (any, error) {
	switch f.Kind {
	case String:
		return Format(raw), nil

	case Number:
		switch t := raw.(type) {
		case float64:
			return t, nil
		case float32:
			return float64(t), nil
		case int:
			return float64(t), nil
		case int64:
			return float64(t), nil
		case json.Number:
			n, err := t.Float64()
			if err != nil {
				return nil, typeError(f)
			}
			return n, nil
		case string:
			n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
			if err != nil {
				return nil, typeError(f)
			}
			return n, nil
		}
		return nil, typeError(f)

	case Boolean:
		switch t := raw.(type) {
		case bool:
			return t, nil
		case string:
			b, err := strconv.ParseBool(t)
			if err != nil {
				return nil, typeError(f)
			}
			return b, nil
		}
		return nil, typeError(f)

	case Array:
		if _, ok := raw.([]any); !ok {
			return nil, typeError(f)
		}
		return raw, nil

	case Object:
		if _, ok := raw.(map[string]any); !ok {
			return nil, typeError(f)
		}
		return raw, nil
	}
	return raw, nil
}

func typeError(f Field) error {
	article := "a"
	if f.Kind == Array || f.Kind == Object {
		article = "an"
	}
	return &FieldError{Field: f.Name, Message: fmt.Sprintf("%s must be %s %s", f.Name, article, f.Kind)}
}

// checkPathSegment rejects values that would change the URL structure when
// inserted verbatim into a path.
func checkPathSegment(name, value string) error {
	if strings.ContainsAny(value, "/?#") {
		return &FieldError{Field: name, Message: name + " contains invalid characters"}
	}
	return nil
}
