package jsonvalue

// Kind identifies the active variant of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindArray
	KindObject
	KindString
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Value is a parsed JSON document node. The zero Value is Null.
// JSON booleans are carried as Numbers (1 or 0).
type Value struct {
	kind  Kind
	items []Value
	props map[string]Value
	str   string
	num   float64
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// String wraps a JSON string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps a JSON number.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Array wraps an ordered list of values.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, items: items}
}

// Object wraps a key/value mapping.
func Object(props map[string]Value) Value {
	if props == nil {
		props = map[string]Value{}
	}
	return Value{kind: KindObject, props: props}
}

// Kind reports the active variant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string payload when v is a String.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsNumber returns the numeric payload when v is a Number.
func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// AsArray returns the elements when v is an Array.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.items, true
}

// AsObject returns the members when v is an Object.
func (v Value) AsObject() (map[string]Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.props, true
}

// Get looks up key on an Object. It reports false for missing keys and for
// non-object values.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	member, ok := v.props[key]
	return member, ok
}

// Len returns the element count of an Array or member count of an Object.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.props)
	default:
		return 0
	}
}
