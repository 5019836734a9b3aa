package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/cockroachdb/apd/v2"

	"github.com/bifrostdb/bifrost/pkg/types"
)

func decimalDef(prec, scale int) types.TypeDef {
	return types.TypeDef{
		Name:   "Decimal",
		Values: []any{prec, scale},
		ArgStr: "",
	}
}

func mustDecimal(t *testing.T, s string) *apd.Decimal {
	t.Helper()
	d, _, err := apd.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestDecimalStorageBits(t *testing.T) {
	testCases := []struct {
		precision int
		want      int
	}{
		{1, 32},
		{9, 32},
		{10, 64},
		{18, 64},
		{19, 128},
		{38, 128},
		{39, 256},
		{79, 256},
	}
	for _, tc := range testCases {
		if got := DecimalStorageBits(tc.precision); got != tc.want {
			t.Errorf("DecimalStorageBits(%d): got %d, want %d", tc.precision, got, tc.want)
		}
	}
}

func TestDecimalCodec_RoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		prec  int
		scale int
		val   string
		width int
	}{
		{"small positive", 9, 2, "123.45", 4},
		{"small negative", 9, 2, "-123.45", 4},
		{"zero", 9, 2, "0.00", 4},
		{"mid tier", 18, 4, "12345678.9012", 8},
		{"mid negative", 18, 4, "-0.0001", 8},
		{"wide tier", 38, 10, "1234567890123456789.0123456789", 16},
		{"widest tier", 76, 10, "-99999999999999999999999999999999.0000000001", 32},
		{"integral", 18, 0, "42", 8},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := mustCodec(t, NewDecimal, decimalDef(tc.prec, tc.scale), NewPolicy())
			v := mustDecimal(t, tc.val)

			encoded, err := c.Encode(v, nil)
			if err != nil {
				t.Fatalf("Encode(%s) failed: %v", tc.val, err)
			}
			if len(encoded) != tc.width {
				t.Errorf("encoded width: got %d, want %d", len(encoded), tc.width)
			}

			got, next, err := c.Decode(encoded, 0)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			d := got.(*apd.Decimal)
			if d.Cmp(v) != 0 {
				t.Errorf("round trip: got %s, want %s", d, v)
			}
			if next != tc.width {
				t.Errorf("offset: got %d, want %d", next, tc.width)
			}
		})
	}
}

func TestDecimalCodec_ZeroHasNoSign(t *testing.T) {
	c := mustCodec(t, NewDecimal, decimalDef(9, 4), NewPolicy())

	got, _, err := c.Decode(make([]byte, 4), 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	s := got.(*apd.Decimal).String()
	if strings.HasPrefix(s, "-") {
		t.Errorf("zero rendered with a sign: %q", s)
	}
	if got.(*apd.Decimal).Sign() != 0 {
		t.Errorf("zero has nonzero sign: %s", s)
	}
}

func TestDecimalCodec_DecodeKnownBytes(t *testing.T) {
	// Decimal(9, 2) with coefficient -12345 is -123.45.
	c := mustCodec(t, NewDecimal, decimalDef(9, 2), NewPolicy())

	src := []byte{0xC7, 0xCF, 0xFF, 0xFF} // -12345 little-endian
	got, _, err := c.Decode(src, 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got.(*apd.Decimal).String() != "-123.45" {
		t.Errorf("value mismatch: got %s, want -123.45", got)
	}
}

func TestDecimalCodec_FixedWidthNames(t *testing.T) {
	def := types.TypeDef{Name: "Decimal", Size: 64, Values: []any{4}, ArgStr: "4"}
	c := mustCodec(t, NewDecimal, def, NewPolicy())

	if c.Name() != "Decimal64(4)" {
		t.Errorf("name mismatch: got %q", c.Name())
	}

	v := mustDecimal(t, "99.9999")
	encoded, err := c.Encode(v, nil)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(encoded) != 8 {
		t.Errorf("encoded width: got %d, want 8", len(encoded))
	}
	got, _, err := c.Decode(encoded, 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got.(*apd.Decimal).Cmp(v) != 0 {
		t.Errorf("round trip: got %s, want %s", got, v)
	}
}

func TestDecimalCodec_PrecisionBounds(t *testing.T) {
	for _, prec := range []int{0, 80, -1} {
		if _, err := NewDecimal(decimalDef(prec, 0), NewPolicy()); !errors.Is(err, ErrInvalidTypeParameters) {
			t.Errorf("precision %d: expected ErrInvalidTypeParameters, got %v", prec, err)
		}
	}
	// Boundary precisions construct fine.
	for _, prec := range []int{1, 79} {
		if _, err := NewDecimal(decimalDef(prec, 0), NewPolicy()); err != nil {
			t.Errorf("precision %d: unexpected error %v", prec, err)
		}
	}
}

func TestDecimalCodec_InvalidParameters(t *testing.T) {
	testCases := []struct {
		name string
		def  types.TypeDef
	}{
		{"missing scale", types.TypeDef{Name: "Decimal", Values: []any{18}}},
		{"scale above precision", decimalDef(4, 5)},
		{"negative scale", decimalDef(9, -1)},
		{"missing everything", types.TypeDef{Name: "Decimal"}},
		{"bad fixed width", types.TypeDef{Name: "Decimal", Size: 24, Values: []any{2}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewDecimal(tc.def, NewPolicy()); !errors.Is(err, ErrInvalidTypeParameters) {
				t.Errorf("expected ErrInvalidTypeParameters, got %v", err)
			}
		})
	}
}

func TestDecimalCodec_EncodeOutOfRange(t *testing.T) {
	c := mustCodec(t, NewDecimal, decimalDef(9, 2), NewPolicy())

	// 10 digits of coefficient overflow the 32-bit backing integer.
	if _, err := c.Encode(mustDecimal(t, "99999999.99"), nil); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := c.Encode("123.45", nil); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("wrong type: expected ErrOutOfRange, got %v", err)
	}
}

func TestDecimalCodec_Underrun(t *testing.T) {
	c := mustCodec(t, NewDecimal, decimalDef(18, 4), NewPolicy())
	if _, _, err := c.Decode(make([]byte, 7), 0); !errors.Is(err, ErrBufferUnderrun) {
		t.Errorf("expected ErrBufferUnderrun, got %v", err)
	}
}
