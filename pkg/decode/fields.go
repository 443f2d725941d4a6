package decode

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"net/url"
	"time"

	json "github.com/goccy/go-json"

	"github.com/yanqian/unsplash-go/pkg/jsonvalue"
)

// TimestampLayout is the wire format for date-time fields, e.g.
// 2015-06-17T11:53:00-04:00.
const TimestampLayout = "2006-01-02T15:04:05Z07:00"

// secondsEnd is the offset just past the seconds in TimestampLayout.
const secondsEnd = len("2006-01-02T15:04:05")

var errFractionalSeconds = errors.New("fractional seconds are not allowed")

// Func is the required decoder shape: it fails on null and on any variant
// other than the one it expects.
type Func[T any] func(jsonvalue.Value) (T, error)

// OptionalFunc is the optional decoder shape: a missing or null input yields
// nil, a present value of the wrong variant still fails.
type OptionalFunc[T any] func(v jsonvalue.Value, present bool) (*T, error)

// Opt lifts a required decoder into its optional form.
func Opt[T any](fn Func[T]) OptionalFunc[T] {
	return func(v jsonvalue.Value, present bool) (*T, error) {
		if !present || v.IsNull() {
			return nil, nil
		}
		out, err := fn(v)
		if err != nil {
			return nil, err
		}
		return &out, nil
	}
}

// String decodes a JSON string.
func String(v jsonvalue.Value) (string, error) {
	s, ok := v.AsString()
	if !ok {
		return "", mismatch("string", v)
	}
	return s, nil
}

// Float64 decodes a JSON number.
func Float64(v jsonvalue.Value) (float64, error) {
	n, ok := v.AsNumber()
	if !ok {
		return 0, mismatch("number", v)
	}
	return n, nil
}

// Uint32 decodes a JSON number, truncating the fraction. Values outside the
// uint32 range wrap; no range check is applied.
func Uint32(v jsonvalue.Value) (uint32, error) {
	n, ok := v.AsNumber()
	if !ok {
		return 0, mismatch("number", v)
	}
	return uint32(int64(n)), nil
}

// Bool decodes a number as its truthiness. The parser already maps JSON
// true/false to 1/0.
func Bool(v jsonvalue.Value) (bool, error) {
	n, ok := v.AsNumber()
	if !ok {
		return false, mismatch("number", v)
	}
	return n != 0, nil
}

// Time decodes a TimestampLayout string to an instant in UTC.
func Time(v jsonvalue.Value) (time.Time, error) {
	s, ok := v.AsString()
	if !ok {
		return time.Time{}, mismatch("timestamp string", v)
	}
	// time.Parse accepts fractional seconds the layout does not name.
	if len(s) > secondsEnd && s[secondsEnd] == '.' {
		return time.Time{}, malformed("timestamp string", v, errFractionalSeconds)
	}
	ts, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, malformed("timestamp string", v, err)
	}
	return ts.UTC(), nil
}

// Color is an RGB triple with channels in [0,1].
type Color struct {
	R float64
	G float64
	B float64
}

// Hex renders the color in #RRGGBB form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", channel(c.R), channel(c.G), channel(c.B))
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Hex())
}

func channel(f float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, f)) * 255))
}

var errColorFormat = errors.New("color must look like #RRGGBB")

// ParseColor parses a #RRGGBB string.
func ParseColor(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, errColorFormat
	}
	raw, err := hex.DecodeString(s[1:])
	if err != nil {
		return Color{}, errColorFormat
	}
	return Color{
		R: float64(raw[0]) / 255,
		G: float64(raw[1]) / 255,
		B: float64(raw[2]) / 255,
	}, nil
}

// ColorValue decodes a #RRGGBB string.
func ColorValue(v jsonvalue.Value) (Color, error) {
	s, ok := v.AsString()
	if !ok {
		return Color{}, mismatch("color string", v)
	}
	c, err := ParseColor(s)
	if err != nil {
		return Color{}, malformed("color string", v, fmt.Errorf("%q: %w", s, err))
	}
	return c, nil
}

// URL is an absolute URL that encodes back to its string form.
type URL struct {
	url.URL
}

func (u URL) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

var errRelativeURL = errors.New("url must be absolute")

// URLValue decodes an absolute URL string.
func URLValue(v jsonvalue.Value) (URL, error) {
	s, ok := v.AsString()
	if !ok {
		return URL{}, mismatch("url string", v)
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return URL{}, malformed("url string", v, err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return URL{}, malformed("url string", v, fmt.Errorf("%q: %w", s, errRelativeURL))
	}
	return URL{URL: *parsed}, nil
}

// Array decodes every element of a JSON array with fn, preserving order.
func Array[T any](fn Func[T]) Func[[]T] {
	return func(v jsonvalue.Value) ([]T, error) {
		items, ok := v.AsArray()
		if !ok {
			return nil, mismatch("array", v)
		}
		out := make([]T, 0, len(items))
		for i, item := range items {
			decoded, err := fn(item)
			if err != nil {
				return nil, within(err, index(i))
			}
			out = append(out, decoded)
		}
		return out, nil
	}
}
