package decode

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/unsplash-go/pkg/jsonvalue"
)

func mustParse(t *testing.T, raw string) jsonvalue.Value {
	t.Helper()
	v, err := jsonvalue.Parse([]byte(raw))
	require.NoError(t, err)
	return v
}

func requireDecodeError(t *testing.T, err error, path, expected, actual string) {
	t.Helper()
	var de *DecodeError
	require.True(t, errors.As(err, &de), "expected DecodeError, got %v", err)
	require.Equal(t, path, de.PathString())
	require.Equal(t, expected, de.Expected)
	require.Equal(t, actual, de.Actual)
}

func TestRequiredFails_OnNullAndAbsent(t *testing.T) {
	obj := ObjectOf(mustParse(t, `{"name":null}`))
	_ = Required(obj, "name", String)
	requireDecodeError(t, obj.Err(), "name", "string", "null")

	obj = ObjectOf(mustParse(t, `{}`))
	_ = Required(obj, "name", String)
	requireDecodeError(t, obj.Err(), "name", "string", Absent)
}

func TestOptionalReturnsNil_OnNullAndAbsent(t *testing.T) {
	obj := ObjectOf(mustParse(t, `{"name":null}`))
	require.Nil(t, Optional(obj, "name", String))
	require.Nil(t, Optional(obj, "missing", String))
	require.NoError(t, obj.Err())
}

func TestOptionalStillFails_OnWrongVariant(t *testing.T) {
	obj := ObjectOf(mustParse(t, `{"width":"wide"}`))
	require.Nil(t, Optional(obj, "width", Uint32))
	requireDecodeError(t, obj.Err(), "width", "number", "string")
}

func TestObject_FirstErrorSticks(t *testing.T) {
	obj := ObjectOf(mustParse(t, `{"a":1,"b":"ok"}`))
	_ = Required(obj, "a", String)
	b := Required(obj, "b", String)
	require.Empty(t, b)
	requireDecodeError(t, obj.Err(), "a", "string", "number")
}

func TestObjectOf_RejectsNonObject(t *testing.T) {
	obj := ObjectOf(mustParse(t, `[1,2]`))
	_ = Required(obj, "a", String)
	requireDecodeError(t, obj.Err(), "", "object", "array")
}

func TestDefault(t *testing.T) {
	obj := ObjectOf(mustParse(t, `{"id":7}`))
	require.Equal(t, uint32(0), Default(obj, "downloads", Uint32, 0))
	require.Equal(t, uint32(7), Default(obj, "id", Uint32, 0))
	require.NoError(t, obj.Err())
}

func TestDefault_NullIsNotAbsent(t *testing.T) {
	obj := ObjectOf(mustParse(t, `{"downloads":null}`))
	require.Equal(t, uint32(0), Default(obj, "downloads", Uint32, 5))
	requireDecodeError(t, obj.Err(), "downloads", "number", "null")
}

func TestUint32_Truncates(t *testing.T) {
	n, err := Uint32(jsonvalue.Number(42.9))
	require.NoError(t, err)
	require.Equal(t, uint32(42), n)
}

func TestFloat64(t *testing.T) {
	n, err := Float64(jsonvalue.Number(-73.6384879))
	require.NoError(t, err)
	require.Equal(t, -73.6384879, n)

	_, err = Float64(jsonvalue.String("1"))
	requireDecodeError(t, err, "", "number", "string")
}

func TestBool_Truthiness(t *testing.T) {
	b, err := Bool(jsonvalue.Number(1))
	require.NoError(t, err)
	require.True(t, b)

	b, err = Bool(jsonvalue.Number(0))
	require.NoError(t, err)
	require.False(t, b)

	b, err = Bool(mustParse(t, `true`))
	require.NoError(t, err)
	require.True(t, b)

	_, err = Bool(jsonvalue.String("true"))
	require.Error(t, err)
}

func TestTime_RejectsFractionalSeconds(t *testing.T) {
	for _, input := range []string{"2016-02-19T16:52:57.123Z", "2015-06-17T11:53:00.5-04:00"} {
		_, err := Time(jsonvalue.String(input))
		var de *DecodeError
		require.True(t, errors.As(err, &de), input)
		require.Equal(t, "timestamp string", de.Expected)
		require.ErrorIs(t, err, errFractionalSeconds)
	}
}

func TestTime(t *testing.T) {
	ts, err := Time(jsonvalue.String("2015-06-17T11:53:00-04:00"))
	require.NoError(t, err)
	require.Equal(t, time.Date(2015, 6, 17, 15, 53, 0, 0, time.UTC), ts)
	require.Equal(t, "2015-06-17T15:53:00Z", ts.Format(TimestampLayout))

	ts, err = Time(jsonvalue.String("2016-02-19T16:52:57Z"))
	require.NoError(t, err)
	require.Equal(t, int64(1455900777), ts.Unix())

	_, err = Time(jsonvalue.String("17/06/2015"))
	requireDecodeError(t, err, "", "timestamp string", "string")
}

func TestColor(t *testing.T) {
	c, err := ColorValue(jsonvalue.String("#FF0080"))
	require.NoError(t, err)
	require.Equal(t, 1.0, c.R)
	require.Equal(t, 0.0, c.G)
	require.InDelta(t, 128.0/255.0, c.B, 1e-12)
	require.Equal(t, "#FF0080", c.Hex())

	for _, bad := range []string{"red", "#FFF", "#GG0000", "FF0080", "#FF00800"} {
		_, err := ColorValue(jsonvalue.String(bad))
		requireDecodeError(t, err, "", "color string", "string")
	}

	_, err = ColorValue(jsonvalue.Number(1))
	requireDecodeError(t, err, "", "color string", "number")
}

func TestURLValue(t *testing.T) {
	u, err := URLValue(jsonvalue.String("https://images.unsplash.com/photo-1?q=75"))
	require.NoError(t, err)
	require.Equal(t, "images.unsplash.com", u.Host)
	require.Equal(t, "https://images.unsplash.com/photo-1?q=75", u.String())

	_, err = URLValue(jsonvalue.String("not a url"))
	require.Error(t, err)

	_, err = URLValue(jsonvalue.String("http://[::1"))
	require.Error(t, err)
}

func TestArray_PathIncludesIndex(t *testing.T) {
	_, err := Array(String)(mustParse(t, `["a","b",3]`))
	requireDecodeError(t, err, "[2]", "string", "number")

	out, err := Array(String)(mustParse(t, `["a","b"]`))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, out)
}

func TestNestedPath(t *testing.T) {
	type urls struct{ full URL }
	decodeURLs := func(v jsonvalue.Value) (urls, error) {
		obj := ObjectOf(v)
		out := urls{full: Required(obj, "full", URLValue)}
		return out, obj.Err()
	}
	decodeItem := func(v jsonvalue.Value) (urls, error) {
		obj := ObjectOf(v)
		out := Required(obj, "urls", decodeURLs)
		return out, obj.Err()
	}
	root := ObjectOf(mustParse(t, `{"photos":[{"urls":{"full":"https://x/a"}},{"urls":{}}]}`))
	_ = Required(root, "photos", Array(decodeItem))
	requireDecodeError(t, root.Err(), "photos[1].urls.full", "url string", Absent)
	require.Contains(t, root.Err().Error(), "photos[1].urls.full")
}

func TestColorAndURL_MarshalJSON(t *testing.T) {
	c, err := ParseColor("#60544D")
	require.NoError(t, err)
	raw, err := c.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"#60544D"`, string(raw))

	u, err := URLValue(jsonvalue.String("https://x/a"))
	require.NoError(t, err)
	raw, err = u.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"https://x/a"`, string(raw))
}
