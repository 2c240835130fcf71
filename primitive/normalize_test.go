package primitive

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_BoundsPerWidth(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want uint64
	}{
		{"int8 min", int8(math.MinInt8), 0x80},
		{"int8 max", int8(math.MaxInt8), 0x7f},
		{"int8 -1", int8(-1), 255},
		{"uint8 max", uint8(math.MaxUint8), 255},
		{"int16 min", int16(math.MinInt16), 0x8000},
		{"int16 max", int16(math.MaxInt16), 0x7fff},
		{"uint16 max", uint16(math.MaxUint16), 0xffff},
		{"int32 min", int32(math.MinInt32), 0x80000000},
		{"int32 -1", int32(-1), 4294967295},
		{"int32 max", int32(math.MaxInt32), 0x7fffffff},
		{"uint32 max", uint32(math.MaxUint32), 0xffffffff},
		{"int64 min", int64(math.MinInt64), 1 << 63},
		{"int64 max", int64(math.MaxInt64), 1<<63 - 1},
		{"uint64 max", uint64(math.MaxUint64), math.MaxUint64},
		{"zero", int32(0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_NamedTypes(t *testing.T) {
	type Small int8
	type Wide uint32

	got, err := Normalize(Small(-2))
	require.NoError(t, err)
	assert.Equal(t, uint64(254), got)

	got, err = Normalize(Wide(7))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), got)
}

func TestNormalize_Fallback(t *testing.T) {
	got, err := Normalize(float64(3))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got)

	got, err = Normalize("12")
	require.NoError(t, err)
	assert.Equal(t, uint64(12), got)

	_, err = Normalize(float64(-1))
	assert.Error(t, err)
}

func TestNormalizeAs(t *testing.T) {
	got, err := NormalizeAs(KindInt8, int64(-1))
	require.NoError(t, err)
	assert.Equal(t, uint64(255), got)

	got, err = NormalizeAs(KindUint16, int64(-1))
	require.NoError(t, err)
	assert.Equal(t, uint64(0xffff), got)

	got, err = NormalizeAs(KindInt64, int64(-1))
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), got)
}

func TestFromBits_RoundTrip(t *testing.T) {
	for _, v := range []any{int8(-128), int16(-3), int32(-1), int64(math.MinInt64), uint8(9), uint16(300), uint32(1 << 31), uint64(math.MaxUint64)} {
		u, err := Normalize(v)
		require.NoError(t, err)

		kind := FromReflectKind(reflect.TypeOf(v).Kind())
		assert.Equal(t, v, FromBits(kind, u), "%T", v)
	}
}

func TestParseUnderlying(t *testing.T) {
	v, err := ParseUnderlying(KindInt8, " -5 ")
	require.NoError(t, err)
	assert.Equal(t, int8(-5), v)

	v, err = ParseUnderlying(KindUint16, "0x10")
	require.NoError(t, err)
	assert.Equal(t, uint16(16), v)

	v, err = ParseUnderlying(KindInt, "42")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = ParseUnderlying(KindInt8, "300")
	assert.Error(t, err)

	_, err = ParseUnderlying(KindUint32, "-1")
	assert.Error(t, err)

	_, err = ParseUnderlying(KindInt32, "Red")
	assert.Error(t, err)

	_, err = ParseUnderlying(KindString, "1")
	assert.Error(t, err)
}

func TestKindTraits(t *testing.T) {
	assert.True(t, KindInt16.IsSigned())
	assert.True(t, KindUint16.IsUnsigned())
	assert.False(t, KindFloat32.IsInteger())
	assert.True(t, KindFloat32.IsNumber())
	assert.Equal(t, 16, KindUint16.Bits())
	assert.Equal(t, 0, KindString.Bits())
	assert.Equal(t, 0, KindEnum(0).Bits())
	assert.Equal(t, 0, KindEnum(99).Bits())
}

func TestIsNumeric(t *testing.T) {
	type Cents int64

	assert.True(t, IsNumeric(reflect.TypeOf(Cents(0))))
	assert.True(t, IsNumeric(reflect.TypeOf(float32(0))))
	assert.False(t, IsNumeric(reflect.TypeOf("")))
	assert.False(t, IsNumeric(reflect.TypeOf(true)))
	assert.False(t, IsNumeric(nil))
}
