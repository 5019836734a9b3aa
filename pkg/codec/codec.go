package codec

import (
	"math/big"

	"github.com/cockroachdb/errors"

	"github.com/bifrostdb/bifrost/pkg/types"
)

// Errors returned by codec construction, decode and encode. Callers
// match them with errors.Is; the wrapped message carries the codec name
// and offsets for diagnostics.
var (
	// ErrInvalidTypeParameters means a type's constructor arguments are
	// malformed or out of domain. Fatal to codec construction.
	ErrInvalidTypeParameters = errors.New("invalid type parameters")

	// ErrBufferUnderrun means fewer bytes remain than a decode requires.
	// It signals upstream framing corruption and is never silently
	// truncated.
	ErrBufferUnderrun = errors.New("buffer underrun")

	// ErrOutOfRange means an encoded value falls outside the codec's
	// representable domain.
	ErrOutOfRange = errors.New("value out of range")

	// ErrUnsupported means a codec was exercised in a direction it does
	// not implement.
	ErrUnsupported = errors.New("unsupported operation")
)

// Codec converts one column type's values between the row-binary wire
// layout and native Go values. Implementations are immutable after
// construction and safe for concurrent decoding, subject to the Policy
// constraint documented on that type.
type Codec interface {
	// Name returns the full parametrized display name, e.g. "Decimal(18, 4)".
	Name() string

	// Decode reads exactly this codec's byte width from src starting at
	// loc and returns the native value together with the offset of the
	// first unread byte. src is never mutated. A short buffer yields
	// ErrBufferUnderrun.
	Decode(src []byte, loc int) (value any, next int, err error)

	// Encode appends exactly this codec's byte width to dst and returns
	// the extended slice. Values outside the representable domain yield
	// ErrOutOfRange; decode-only codecs yield ErrUnsupported.
	Encode(value any, dst []byte) ([]byte, error)
}

// Factory builds a codec from a parsed type descriptor. The policy is
// captured by the codecs whose decoding it governs and consulted at
// decode time, not at construction time.
type Factory func(def types.TypeDef, pol *Policy) (Codec, error)

// checkLen verifies that width bytes are readable at loc.
func checkLen(name string, src []byte, loc, width int) error {
	if loc < 0 || loc+width > len(src) {
		return errors.Wrapf(ErrBufferUnderrun,
			"%s: need %d bytes at offset %d, have %d", name, width, loc, len(src))
	}
	return nil
}

// unsupportedEncode is the Encode implementation shared by decode-only codecs.
func unsupportedEncode(name string) ([]byte, error) {
	return nil, errors.Wrapf(ErrUnsupported, "%s does not support encode", name)
}

// floorDiv divides a by b rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// bigFromLE interprets b as a little-endian integer, two's-complement
// when signed.
func bigFromLE(b []byte, signed bool) *big.Int {
	be := make([]byte, len(b))
	for i, c := range b {
		be[len(b)-1-i] = c
	}
	v := new(big.Int).SetBytes(be)
	if signed && len(b) > 0 && b[len(b)-1]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(8*len(b))))
	}
	return v
}

// appendBigLE appends v as a width-byte little-endian integer,
// two's-complement when signed. Values that do not fit yield
// ErrOutOfRange.
func appendBigLE(name string, dst []byte, v *big.Int, width int, signed bool) ([]byte, error) {
	bits := uint(8 * width)
	lo, hi := new(big.Int), new(big.Int)
	if signed {
		hi.Lsh(big.NewInt(1), bits-1)
		lo.Neg(hi)
		hi.Sub(hi, big.NewInt(1))
	} else {
		hi.Lsh(big.NewInt(1), bits)
		hi.Sub(hi, big.NewInt(1))
	}
	if v.Cmp(lo) < 0 || v.Cmp(hi) > 0 {
		return nil, errors.Wrapf(ErrOutOfRange, "%s: %s does not fit in %d bits", name, v, bits)
	}
	u := new(big.Int).Set(v)
	if u.Sign() < 0 {
		u.Add(u, new(big.Int).Lsh(big.NewInt(1), bits))
	}
	be := u.FillBytes(make([]byte, width))
	for i := width - 1; i >= 0; i-- {
		dst = append(dst, be[i])
	}
	return dst, nil
}
