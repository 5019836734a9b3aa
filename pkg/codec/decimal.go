package codec

import (
	"fmt"
	"math/big"

	"github.com/cockroachdb/apd/v2"
	"github.com/cockroachdb/errors"

	"github.com/bifrostdb/bifrost/pkg/types"
)

// DecimalStorageBits returns the backing integer width for a decimal of
// the given precision: 32 bits below 10 digits, 64 below 19, 128 below
// 39, 256 otherwise.
func DecimalStorageBits(precision int) int {
	switch {
	case precision < 10:
		return 32
	case precision < 19:
		return 64
	case precision < 39:
		return 128
	default:
		return 256
	}
}

// decimalCodec handles Decimal(p, s) and the width-suffixed aliases
// Decimal32(s)..Decimal256(s): a two's-complement little-endian
// coefficient scaled by 10^-s. Values are *apd.Decimal.
type decimalCodec struct {
	name  string
	width int // bytes
	scale int
}

// NewDecimal builds a decimal codec. Precision must be in [1, 79] when
// the name does not fix the width; the scale must not exceed it.
func NewDecimal(def types.TypeDef, _ *Policy) (Codec, error) {
	var name string
	var bits, scale int
	if def.Size == 0 {
		prec, ok := def.IntAt(0)
		if !ok {
			return nil, errors.Wrap(ErrInvalidTypeParameters, "Decimal: missing precision")
		}
		if prec < 1 || prec > 79 {
			return nil, errors.Wrapf(ErrInvalidTypeParameters, "Decimal: precision %d out of range [1, 79]", prec)
		}
		scale, ok = def.IntAt(1)
		if !ok {
			return nil, errors.Wrap(ErrInvalidTypeParameters, "Decimal: missing scale")
		}
		if scale < 0 || scale > prec {
			return nil, errors.Wrapf(ErrInvalidTypeParameters, "Decimal: scale %d out of range [0, %d]", scale, prec)
		}
		bits = DecimalStorageBits(prec)
		name = "Decimal(" + def.ArgStr + ")"
	} else {
		var ok bool
		scale, ok = def.IntAt(0)
		if !ok || scale < 0 {
			return nil, errors.Wrap(ErrInvalidTypeParameters, "Decimal: missing or negative scale")
		}
		bits = def.Size
		if !validIntSize(bits) || bits < 32 {
			return nil, errors.Wrapf(ErrInvalidTypeParameters, "Decimal: unsupported bit width %d", bits)
		}
		name = fmt.Sprintf("Decimal%d(%d)", bits, scale)
	}
	return &decimalCodec{name: name, width: bits / 8, scale: scale}, nil
}

func (c *decimalCodec) Name() string { return c.name }

// Decode reads the signed coefficient and attaches the exponent. The
// sign lives on the coefficient, so zero never renders with a leading
// minus.
func (c *decimalCodec) Decode(src []byte, loc int) (any, int, error) {
	if err := checkLen(c.name, src, loc, c.width); err != nil {
		return nil, loc, err
	}
	next := loc + c.width
	coeff := bigFromLE(src[loc:next], true)
	d := &apd.Decimal{Exponent: int32(-c.scale)}
	if coeff.Sign() < 0 {
		d.Negative = true
		coeff.Neg(coeff)
	}
	d.Coeff.Set(coeff)
	return d, next, nil
}

// Encode quantizes the value to the declared scale and writes the
// coefficient as a fixed-width two's-complement integer.
func (c *decimalCodec) Encode(value any, dst []byte) ([]byte, error) {
	d, ok := value.(*apd.Decimal)
	if !ok {
		return nil, errors.Wrapf(ErrOutOfRange, "%s: cannot encode %T", c.name, value)
	}
	if d.Form != apd.Finite {
		return nil, errors.Wrapf(ErrOutOfRange, "%s: cannot encode non-finite value %s", c.name, d)
	}
	var q apd.Decimal
	ctx := apd.BaseContext.WithPrecision(96)
	if _, err := ctx.Quantize(&q, d, int32(-c.scale)); err != nil {
		return nil, errors.Wrapf(ErrOutOfRange, "%s: cannot represent %s at scale %d", c.name, d, c.scale)
	}
	coeff := new(big.Int).Set(&q.Coeff)
	if q.Negative {
		coeff.Neg(coeff)
	}
	return appendBigLE(c.name, dst, coeff, c.width, true)
}
