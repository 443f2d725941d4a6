package jsonvalue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_Object(t *testing.T) {
	v, err := Parse([]byte(`{"id":"abc","width":5245,"ratio":1.5,"tags":["a","b"],"exif":null,"nested":{"k":"v"}}`))
	require.NoError(t, err)
	require.Equal(t, KindObject, v.Kind())
	require.Equal(t, 6, v.Len())

	id, ok := v.Get("id")
	require.True(t, ok)
	s, ok := id.AsString()
	require.True(t, ok)
	require.Equal(t, "abc", s)

	width, _ := v.Get("width")
	n, ok := width.AsNumber()
	require.True(t, ok)
	require.Equal(t, 5245.0, n)

	ratio, _ := v.Get("ratio")
	n, _ = ratio.AsNumber()
	require.Equal(t, 1.5, n)

	tags, _ := v.Get("tags")
	items, ok := tags.AsArray()
	require.True(t, ok)
	require.Len(t, items, 2)
	first, _ := items[0].AsString()
	second, _ := items[1].AsString()
	require.Equal(t, "a", first)
	require.Equal(t, "b", second)

	exif, ok := v.Get("exif")
	require.True(t, ok)
	require.True(t, exif.IsNull())

	nested, _ := v.Get("nested")
	inner, ok := nested.Get("k")
	require.True(t, ok)
	s, _ = inner.AsString()
	require.Equal(t, "v", s)

	_, ok = v.Get("missing")
	require.False(t, ok)
}

func TestParse_ArrayRootPreservesOrder(t *testing.T) {
	v, err := Parse([]byte(`[3, 1, 2]`))
	require.NoError(t, err)
	items, ok := v.AsArray()
	require.True(t, ok)
	got := make([]float64, 0, len(items))
	for _, item := range items {
		n, ok := item.AsNumber()
		require.True(t, ok)
		got = append(got, n)
	}
	require.Equal(t, []float64{3, 1, 2}, got)
}

func TestParse_BooleansBecomeNumbers(t *testing.T) {
	v, err := Parse([]byte(`{"curated":true,"private":false}`))
	require.NoError(t, err)

	curated, _ := v.Get("curated")
	require.Equal(t, KindNumber, curated.Kind())
	n, _ := curated.AsNumber()
	require.Equal(t, 1.0, n)

	private, _ := v.Get("private")
	n, _ = private.AsNumber()
	require.Equal(t, 0.0, n)
}

func TestParse_Scalars(t *testing.T) {
	v, err := Parse([]byte(`"plain"`))
	require.NoError(t, err)
	require.Equal(t, KindString, v.Kind())

	v, err = Parse([]byte(`null`))
	require.NoError(t, err)
	require.True(t, v.IsNull())

	v, err = Parse([]byte(`  -12.25 `))
	require.NoError(t, err)
	n, ok := v.AsNumber()
	require.True(t, ok)
	require.Equal(t, -12.25, n)
}

func TestParse_EmptyContainers(t *testing.T) {
	v, err := Parse([]byte(`{"a":[],"b":{}}`))
	require.NoError(t, err)
	a, _ := v.Get("a")
	require.Equal(t, KindArray, a.Kind())
	require.Equal(t, 0, a.Len())
	b, _ := v.Get("b")
	require.Equal(t, KindObject, b.Kind())
	require.Equal(t, 0, b.Len())
}

func TestParse_InvalidInput(t *testing.T) {
	cases := map[string]string{
		"empty":               ``,
		"truncated":           `{"errors":["not found"`,
		"html":                `<html>oops</html>`,
		"trailing":            `{"a":1} {"b":2}`,
		"missing colon":       `{"a" 1}`,
		"comma for colon":     `{"a",1}`,
		"missing comma":       `[1 2]`,
		"leading comma":       `[,1]`,
		"colon in array":      `["a":1]`,
		"broken null":         `nul`,
		"broken true":         `tru`,
		"leading zero":        `01`,
		"nested leading zero": `{"width":007}`,
		"whitespace only":     "  \n\t",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(input))
			require.Error(t, err)
			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
		})
	}
}

func TestParse_NumberForms(t *testing.T) {
	for input, want := range map[string]float64{
		`0`:      0,
		`-0.5`:   -0.5,
		`1e3`:    1000,
		`2.5E-1`: 0.25,
	} {
		v, err := Parse([]byte(input))
		require.NoError(t, err, input)
		n, ok := v.AsNumber()
		require.True(t, ok, input)
		require.Equal(t, want, n, input)
	}
}

func TestValue_AccessorsRejectOtherKinds(t *testing.T) {
	v := String("x")
	_, ok := v.AsNumber()
	require.False(t, ok)
	_, ok = v.AsArray()
	require.False(t, ok)
	_, ok = v.AsObject()
	require.False(t, ok)
	_, ok = v.Get("x")
	require.False(t, ok)
	require.Equal(t, "string", v.Kind().String())
	require.Equal(t, "null", Value{}.Kind().String())
}
