package shred_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pachadata/shred"
)

func TestValueRoundTrip(t *testing.T) {
	t.Run("bool", func(t *testing.T) {
		v, err := shred.ValueOf(true).AsBool()
		require.NoError(t, err)
		assert.Equal(t, true, v)
	})
	t.Run("u8", func(t *testing.T) {
		v, err := shred.ValueOf(uint8(200)).AsU8()
		require.NoError(t, err)
		assert.Equal(t, uint8(200), v)
	})
	t.Run("i8", func(t *testing.T) {
		v, err := shred.ValueOf(int8(-7)).AsI8()
		require.NoError(t, err)
		assert.Equal(t, int8(-7), v)
	})
	t.Run("u16", func(t *testing.T) {
		v, err := shred.ValueOf(uint16(65000)).AsU16()
		require.NoError(t, err)
		assert.Equal(t, uint16(65000), v)
	})
	t.Run("i16", func(t *testing.T) {
		v, err := shred.ValueOf(int16(-12345)).AsI16()
		require.NoError(t, err)
		assert.Equal(t, int16(-12345), v)
	})
	t.Run("u32", func(t *testing.T) {
		v, err := shred.ValueOf(uint32(4000000000)).AsU32()
		require.NoError(t, err)
		assert.Equal(t, uint32(4000000000), v)
	})
	t.Run("i32", func(t *testing.T) {
		v, err := shred.ValueOf(int32(-42)).AsI32()
		require.NoError(t, err)
		assert.Equal(t, int32(-42), v)
	})
	t.Run("u64", func(t *testing.T) {
		v, err := shred.ValueOf(uint64(1<<63 + 1)).AsU64()
		require.NoError(t, err)
		assert.Equal(t, uint64(1<<63+1), v)
	})
	t.Run("i64", func(t *testing.T) {
		v, err := shred.ValueOf(int64(-1 << 40)).AsI64()
		require.NoError(t, err)
		assert.Equal(t, int64(-1<<40), v)
	})
	t.Run("f32", func(t *testing.T) {
		v, err := shred.ValueOf(float32(1.5)).AsF32()
		require.NoError(t, err)
		assert.Equal(t, float32(1.5), v)
	})
	t.Run("f64", func(t *testing.T) {
		v, err := shred.ValueOf(2.25).AsF64()
		require.NoError(t, err)
		assert.Equal(t, 2.25, v)
	})
	t.Run("date", func(t *testing.T) {
		v, err := shred.ValueOf(shred.Date(19000)).AsDate()
		require.NoError(t, err)
		assert.Equal(t, shred.Date(19000), v)
	})
	t.Run("time", func(t *testing.T) {
		v, err := shred.ValueOf(shred.TimeFromMillis(86399999)).AsTime()
		require.NoError(t, err)
		assert.Equal(t, int64(86399999), v.Millis())
	})
	t.Run("timestamp", func(t *testing.T) {
		ts := shred.TimestampFromMillis(1_600_000_000_123)
		v, err := shred.ValueOf(ts).AsTimestamp()
		require.NoError(t, err)
		assert.Equal(t, ts, v)
		millis, ok := v.Millis()
		require.True(t, ok)
		assert.Equal(t, int64(1_600_000_000_123), millis)
	})
	t.Run("decimal", func(t *testing.T) {
		d := shred.DecimalFromInt64(12345, 9, 2)
		v, err := shred.ValueOf(d).AsDecimal()
		require.NoError(t, err)
		assert.Equal(t, "123.45", v.String())
	})
	t.Run("byte_array", func(t *testing.T) {
		v, err := shred.ValueOf([]byte("blob")).AsByteArray()
		require.NoError(t, err)
		assert.Equal(t, []byte("blob"), v)
	})
	t.Run("bson", func(t *testing.T) {
		v, err := shred.ValueOf(shred.Bson{0x1}).AsBson()
		require.NoError(t, err)
		assert.Equal(t, shred.Bson{0x1}, v)
	})
	t.Run("string", func(t *testing.T) {
		v, err := shred.ValueOf("hello").AsString()
		require.NoError(t, err)
		assert.Equal(t, "hello", v)
	})
	t.Run("json", func(t *testing.T) {
		v, err := shred.ValueOf(shred.Json(`{"a":1}`)).AsJson()
		require.NoError(t, err)
		assert.Equal(t, shred.Json(`{"a":1}`), v)
	})
	t.Run("enum", func(t *testing.T) {
		v, err := shred.ValueOf(shred.Enum("RED")).AsEnum()
		require.NoError(t, err)
		assert.Equal(t, shred.Enum("RED"), v)
	})
	t.Run("uuid", func(t *testing.T) {
		id := uuid.MustParse("c803dd26-ad16-4ad3-98bb-6ab43ffea5eb")
		v, err := shred.ValueOf(id).AsByteArray()
		require.NoError(t, err)
		assert.Equal(t, id[:], v)
	})
	t.Run("time.Time", func(t *testing.T) {
		at := time.Date(2021, 3, 4, 5, 6, 7, 8000, time.UTC)
		ts, err := shred.ValueOf(at).AsTimestamp()
		require.NoError(t, err)
		got, ok := ts.Time()
		require.True(t, ok)
		assert.True(t, got.Equal(at))
	})
}

func TestListRoundTrip(t *testing.T) {
	v := shred.ValueOf([]int32{1, 2, 3})
	out, err := shred.ListOf(v, shred.Value.AsI32)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, out)
}

func TestMapRoundTrip(t *testing.T) {
	m := shred.NewMap()
	m.Set(shred.StringValue("a"), shred.I32Value(1))
	m.Set(shred.StringValue("b"), shred.I32Value(2))

	out, err := shred.MapOf(shred.MapValue(m), shred.Value.AsString, shred.Value.AsI32)
	require.NoError(t, err)
	assert.Equal(t, map[string]int32{"a": 1, "b": 2}, out)
}

func TestOptionRoundTrip(t *testing.T) {
	seven := int32(7)
	some := shred.ValueOf(&seven)
	out, err := shred.OptionOf(some, shred.Value.AsI32)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, int32(7), *out)

	none, err := shred.OptionOf(shred.None(), shred.Value.AsI32)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestValueTypeMismatch(t *testing.T) {
	_, err := shred.StringValue("not a number").AsI64()
	var mismatch *shred.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "i64", mismatch.Expected)
	assert.Equal(t, "string", mismatch.Actual)
}

func TestValueMatches(t *testing.T) {
	assert.True(t, shred.I32Value(7).Matches(int32(7)))
	assert.False(t, shred.I32Value(7).Matches(int64(7)), "variant mismatch never matches")
	assert.False(t, shred.I32Value(7).Matches(struct{}{}), "inconvertible values never match")
	assert.True(t, shred.Some(shred.StringValue("x")).Matches(ptr("x")))
	assert.True(t, shred.None().Matches(nil))
}

func ptr[T any](v T) *T { return &v }

func TestOptionNeverNests(t *testing.T) {
	assert.Panics(t, func() {
		shred.Some(shred.Some(shred.BoolValue(true)))
	})
	inner := int32(3)
	p := &inner
	v := shred.ValueOf(&p)
	_, some, err := v.AsOption()
	require.NoError(t, err)
	assert.True(t, some, "pointer chains collapse into a single option")
}

func TestValueHashDistinctAcrossVariants(t *testing.T) {
	m := shred.NewMap()
	group := shred.NewGroup(nil, shred.NewFieldNames(nil))

	variants := []shred.Value{
		shred.BoolValue(false),
		shred.U8Value(0),
		shred.I8Value(0),
		shred.U16Value(0),
		shred.I16Value(0),
		shred.U32Value(0),
		shred.I32Value(0),
		shred.U64Value(0),
		shred.I64Value(0),
		shred.F32Value(0),
		shred.F64Value(0),
		shred.DateValue(0),
		shred.TimeValue(0),
		shred.TimestampValue(shred.Timestamp{}),
		shred.DecimalValue(shred.DecimalFromInt32(0, 0, 0)),
		shred.ByteArrayValue(nil),
		shred.BsonValue(nil),
		shred.StringValue(""),
		shred.JsonValue(""),
		shred.EnumValue(""),
		shred.ListValue(nil),
		shred.MapValue(m),
		shred.GroupValue(group),
		shred.None(),
	}

	seen := make(map[uint64]shred.Kind, len(variants))
	for _, v := range variants {
		h := v.Hash()
		if prev, ok := seen[h]; ok {
			t.Errorf("variants %s and %s hash to the same digest", prev, v.Kind())
		}
		seen[h] = v.Kind()
	}
}

func TestValueHashSkipsUnhashablePayloads(t *testing.T) {
	// Distinct payloads, same digest: these variants mix only their tag.
	assert.Equal(t, shred.F64Value(1.5).Hash(), shred.F64Value(-2.5).Hash())
	assert.NotEqual(t, shred.F64Value(1.5), shred.F64Value(-2.5))

	a := shred.NewMap()
	a.Set(shred.I32Value(1), shred.I32Value(2))
	b := shred.NewMap()
	assert.Equal(t, shred.MapValue(a).Hash(), shred.MapValue(b).Hash())

	// Hashable payloads do contribute.
	assert.NotEqual(t, shred.I32Value(1).Hash(), shred.I32Value(2).Hash())
	assert.NotEqual(t, shred.StringValue("a").Hash(), shred.StringValue("b").Hash())
}

func TestMapInsertionOrderAndLaterWins(t *testing.T) {
	m := shred.NewMap()
	m.Set(shred.StringValue("a"), shred.I32Value(1))
	m.Set(shred.StringValue("b"), shred.I32Value(2))
	m.Set(shred.StringValue("a"), shred.I32Value(3))

	require.Equal(t, 2, m.Len())
	entries := m.Entries()
	assert.True(t, entries[0].Key.Matches("a"))
	assert.True(t, entries[0].Value.Matches(int32(3)), "later entry wins, position is kept")
	assert.True(t, entries[1].Key.Matches("b"))

	v, ok := m.Get(shred.StringValue("a"))
	require.True(t, ok)
	assert.True(t, v.Matches(int32(3)))
}

func TestMapEqualityIsUnordered(t *testing.T) {
	a := shred.NewMap()
	a.Set(shred.StringValue("x"), shred.I32Value(1))
	a.Set(shred.StringValue("y"), shred.I32Value(2))

	b := shred.NewMap()
	b.Set(shred.StringValue("y"), shred.I32Value(2))
	b.Set(shred.StringValue("x"), shred.I32Value(1))

	assert.True(t, shred.Equal(shred.MapValue(a), shred.MapValue(b)))

	b.Set(shred.StringValue("x"), shred.I32Value(9))
	assert.False(t, shred.Equal(shred.MapValue(a), shred.MapValue(b)))
}

func TestGroupOrderPreservation(t *testing.T) {
	names := shred.NewFieldNames([]string{"first", "second", "third"})
	group := shred.NewGroup([]shred.Value{
		shred.I32Value(1), shred.I32Value(2), shred.I32Value(3),
	}, names)

	for i, want := range []string{"first", "second", "third"} {
		assert.Equal(t, want, group.Names().Name(i))
		ordinal, ok := group.Names().Ordinal(want)
		require.True(t, ok)
		assert.Equal(t, i, ordinal)
		byName, ok := group.Get(want)
		require.True(t, ok)
		assert.True(t, shred.Equal(group.Field(i), byName))
	}
}

func TestDuplicateFieldNamesPanic(t *testing.T) {
	assert.Panics(t, func() {
		shred.NewFieldNames([]string{"a", "a"})
	})
}

func TestValueJSON(t *testing.T) {
	names := shred.NewFieldNames([]string{"id", "tags", "attrs", "note"})
	m := shred.NewMap()
	m.Set(shred.StringValue("k"), shred.I32Value(1))
	row := shred.GroupValue(shred.NewGroup([]shred.Value{
		shred.I64Value(7),
		shred.ListValue(shred.List{shred.StringValue("x"), shred.StringValue("y")}),
		shred.MapValue(m),
		shred.None(),
	}, names))

	b, err := row.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"id":7,"tags":["x","y"],"attrs":{"k":1},"note":null}`, string(b))
}

func TestJsonPayloadEmbeddedVerbatim(t *testing.T) {
	b, err := shred.JsonValue(shred.Json(`{"nested":[1,2]}`)).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"nested":[1,2]}`, string(b))

	b, err = shred.JsonValue(shred.Json(`{broken`)).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"{broken"`, string(b))
}
