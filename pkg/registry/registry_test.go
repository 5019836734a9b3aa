package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bifrostdb/bifrost/pkg/codec"
)

func TestRegistry_Get(t *testing.T) {
	reg := New(nil)

	for _, name := range []string{
		"Int8", "Int16", "Int32", "Int64", "Int128", "Int256",
		"UInt8", "UInt16", "UInt32", "UInt64", "UInt128", "UInt256",
		"Float32", "Float64",
		"Date", "Date32", "DateTime", "DateTime64(3)",
		"DateTime64(6, 'Asia/Istanbul')", "DateTime('UTC')",
		"String", "FixedString(16)", "UUID", "Bool", "Boolean",
		"Decimal(18, 4)", "Decimal32(2)", "Decimal64(4)",
		"Decimal128(10)", "Decimal256(20)",
		"IPv4", "IPv6",
	} {
		c, err := reg.Get(name)
		require.NoError(t, err, name)
		require.NotNil(t, c, name)
	}
}

func TestRegistry_CachesPerParametrizedName(t *testing.T) {
	reg := New(nil)

	a, err := reg.Get("Decimal(18, 4)")
	require.NoError(t, err)
	b, err := reg.Get("Decimal(18, 4)")
	require.NoError(t, err)
	other, err := reg.Get("Decimal(9, 2)")
	require.NoError(t, err)

	assert.Same(t, a, b, "same parametrized name should share an instance")
	assert.NotSame(t, a, other, "different parameters need their own instance")
}

func TestRegistry_Errors(t *testing.T) {
	reg := New(nil)

	testCases := []struct {
		name     string
		typeName string
	}{
		{"unknown type", "Flumph"},
		{"malformed name", "Decimal(18"},
		{"bad parameters", "Decimal(80, 4)"},
		{"bare sized family", "Int"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := reg.Get(tc.typeName)
			assert.Error(t, err)
		})
	}
}

func TestRegistry_SharedPolicy(t *testing.T) {
	reg := New(nil)

	c, err := reg.Get("UInt64")
	require.NoError(t, err)

	src := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	v, _, err := c.Decode(src, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), v)

	// The registry's policy governs codecs it already handed out.
	reg.Policy().SetUInt64Handling(codec.UInt64Signed)
	v, _, err = c.Decode(src, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), v)
}

func TestRegistry_Schema(t *testing.T) {
	reg := New(nil)

	codecs, err := reg.Schema([]string{"UInt32", "String", "Date"})
	require.NoError(t, err)
	require.Len(t, codecs, 3)
	assert.Equal(t, "UInt32", codecs[0].Name())
	assert.Equal(t, "String", codecs[1].Name())
	assert.Equal(t, "Date", codecs[2].Name())

	_, err = reg.Schema([]string{"UInt32", "Flumph"})
	assert.Error(t, err)
}

func TestTypeNames(t *testing.T) {
	names := TypeNames()
	assert.Contains(t, names, "Decimal")
	assert.Contains(t, names, "FixedString")
	assert.Contains(t, names, "IPv6")
	assert.IsIncreasing(t, names)
}
