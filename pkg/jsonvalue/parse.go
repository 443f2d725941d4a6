package jsonvalue

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"

	json "github.com/goccy/go-json"
)

// ParseError reports input that is not valid JSON text.
type ParseError struct {
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid json at offset %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var errTrailingData = errors.New("unexpected data after top-level value")

var numberLiteral = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// Parse converts raw JSON text into a Value tree. Exactly one top-level value
// is accepted; anything after it is an error.
func Parse(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{}, &ParseError{Err: io.ErrUnexpectedEOF}
	}

	// The stream decoder's Token does not check separators or literals;
	// Unmarshal does, so it gates the input first.
	var strict any
	if err := json.Unmarshal(data, &strict); err != nil {
		return Value{}, &ParseError{Offset: offsetOf(err), Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, &ParseError{Offset: dec.InputOffset(), Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errTrailingData
		}
		return Value{}, &ParseError{Offset: dec.InputOffset(), Err: err}
	}

	root, err := fromAny(raw)
	if err != nil {
		return Value{}, &ParseError{Offset: numberOffset(data, err), Err: err}
	}
	return root, nil
}

func offsetOf(err error) int64 {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Offset
	}
	return 0
}

type numberError struct {
	literal string
}

func (e *numberError) Error() string {
	return fmt.Sprintf("invalid number literal %q", e.literal)
}

func numberOffset(data []byte, err error) int64 {
	var numErr *numberError
	if errors.As(err, &numErr) {
		if i := bytes.Index(data, []byte(numErr.literal)); i >= 0 {
			return int64(i)
		}
	}
	return 0
}

func fromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case bool:
		if t {
			return Number(1), nil
		}
		return Number(0), nil
	case json.Number:
		if !numberLiteral.MatchString(string(t)) {
			return Value{}, &numberError{literal: string(t)}
		}
		n, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("number %q: %w", string(t), err)
		}
		return Number(n), nil
	case float64:
		return Number(t), nil
	case []any:
		items := make([]Value, 0, len(t))
		for _, item := range t {
			v, err := fromAny(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Array(items...), nil
	case map[string]any:
		props := make(map[string]Value, len(t))
		for key, member := range t {
			v, err := fromAny(member)
			if err != nil {
				return Value{}, err
			}
			props[key] = v
		}
		return Object(props), nil
	default:
		return Value{}, fmt.Errorf("unexpected json value %T", raw)
	}
}
