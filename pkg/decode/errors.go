package decode

import (
	"fmt"
	"strings"

	"github.com/yanqian/unsplash-go/pkg/jsonvalue"
)

// Absent is reported as the actual kind when a required key is missing.
const Absent = "absent"

// DecodeError reports a value that does not match the shape a decoder
// expects. Path locates the value from the document root, e.g.
// ["photos", "[3]", "urls", "full"].
type DecodeError struct {
	Path     []string
	Expected string
	Actual   string
	Err      error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if p := e.PathString(); p != "" {
		return "decode " + p + ": " + msg
	}
	return "decode: " + msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// PathString renders Path in dotted form with bracketed indexes.
func (e *DecodeError) PathString() string {
	var b strings.Builder
	for _, elem := range e.Path {
		if b.Len() > 0 && !strings.HasPrefix(elem, "[") {
			b.WriteByte('.')
		}
		b.WriteString(elem)
	}
	return b.String()
}

func mismatch(expected string, v jsonvalue.Value) error {
	return &DecodeError{Expected: expected, Actual: v.Kind().String()}
}

func malformed(expected string, v jsonvalue.Value, err error) error {
	return &DecodeError{Expected: expected, Actual: v.Kind().String(), Err: err}
}

// within prefixes the path of a DecodeError with elem. Other errors pass
// through untouched.
func within(err error, elem string) error {
	de, ok := err.(*DecodeError)
	if !ok {
		return err
	}
	de.Path = append([]string{elem}, de.Path...)
	return de
}

func index(i int) string {
	return fmt.Sprintf("[%d]", i)
}
