package decode

import (
	"github.com/yanqian/unsplash-go/pkg/jsonvalue"
)

// Object reads named members of a JSON object. The first failure sticks:
// once Err is non-nil every later read is skipped and returns a zero value,
// so a model decoder can read all its fields and check Err once.
type Object struct {
	fields map[string]jsonvalue.Value
	err    error
}

// ObjectOf starts reading v, which must be a JSON object.
func ObjectOf(v jsonvalue.Value) *Object {
	fields, ok := v.AsObject()
	if !ok {
		return &Object{err: mismatch("object", v)}
	}
	return &Object{fields: fields}
}

// Err returns the first failure, if any.
func (o *Object) Err() error {
	return o.err
}

// Required decodes the member key with fn. A missing member is an error
// whose Actual is "absent".
func Required[T any](o *Object, key string, fn Func[T]) T {
	var zero T
	if o.err != nil {
		return zero
	}
	v, ok := o.fields[key]
	if !ok {
		o.err = within(absent(fn), key)
		return zero
	}
	out, err := fn(v)
	if err != nil {
		o.err = within(err, key)
		return zero
	}
	return out
}

// Optional decodes the member key with fn, yielding nil when it is missing
// or null.
func Optional[T any](o *Object, key string, fn Func[T]) *T {
	if o.err != nil {
		return nil
	}
	v, ok := o.fields[key]
	out, err := Opt(fn)(v, ok)
	if err != nil {
		o.err = within(err, key)
		return nil
	}
	return out
}

// Default decodes the member key with fn, substituting def only when the
// member is missing. A null member goes to fn like any other value.
func Default[T any](o *Object, key string, fn Func[T], def T) T {
	if o.err != nil {
		return def
	}
	if _, ok := o.fields[key]; !ok {
		return def
	}
	return Required(o, key, fn)
}

// absent builds the error for a missing required member, reusing the
// expectation fn reports for null.
func absent[T any](fn Func[T]) error {
	_, err := fn(jsonvalue.Null())
	de, ok := err.(*DecodeError)
	if !ok {
		return &DecodeError{Expected: "value", Actual: Absent}
	}
	return &DecodeError{Expected: de.Expected, Actual: Absent}
}
