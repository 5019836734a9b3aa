package codec

import (
	"math/big"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/bifrostdb/bifrost/pkg/types"
)

// intCodec handles every fixed-width integer variant. Little-endian,
// two's-complement when signed. Widths of 8 bytes or less decode to
// int64/uint64; 128- and 256-bit variants decode to *big.Int.
type intCodec struct {
	name   string
	width  int // bytes
	signed bool
	pol    *Policy // non-nil only for UInt64, whose signedness it overrides
}

func validIntSize(bits int) bool {
	switch bits {
	case 8, 16, 32, 64, 128, 256:
		return true
	}
	return false
}

// NewInt builds a signed integer codec for Int8..Int256.
func NewInt(def types.TypeDef, _ *Policy) (Codec, error) {
	if !validIntSize(def.Size) {
		return nil, errors.Wrapf(ErrInvalidTypeParameters, "Int: unsupported bit width %d", def.Size)
	}
	return &intCodec{
		name:   def.Name + strconv.Itoa(def.Size),
		width:  def.Size / 8,
		signed: true,
	}, nil
}

// NewUInt builds an unsigned integer codec for UInt8..UInt256. The
// 64-bit variant is special: its effective signedness comes from the
// policy at decode time, not from the type.
func NewUInt(def types.TypeDef, pol *Policy) (Codec, error) {
	if !validIntSize(def.Size) {
		return nil, errors.Wrapf(ErrInvalidTypeParameters, "UInt: unsupported bit width %d", def.Size)
	}
	c := &intCodec{
		name:  def.Name + strconv.Itoa(def.Size),
		width: def.Size / 8,
	}
	if def.Size == 64 {
		c.pol = pol
	}
	return c, nil
}

func (c *intCodec) Name() string { return c.name }

// effectiveSigned resolves signedness at call time so that flipping the
// UInt64 policy switch changes codecs that already exist.
func (c *intCodec) effectiveSigned() bool {
	if c.pol != nil {
		return c.pol.uint64Mode == UInt64Signed
	}
	return c.signed
}

func (c *intCodec) Decode(src []byte, loc int) (any, int, error) {
	if err := checkLen(c.name, src, loc, c.width); err != nil {
		return nil, loc, err
	}
	next := loc + c.width
	if c.width > 8 {
		return bigFromLE(src[loc:next], c.effectiveSigned()), next, nil
	}
	var u uint64
	for i := 0; i < c.width; i++ {
		u |= uint64(src[loc+i]) << (8 * i)
	}
	if c.effectiveSigned() {
		shift := 64 - 8*c.width
		return int64(u<<shift) >> shift, next, nil
	}
	return u, next, nil
}

func (c *intCodec) Encode(value any, dst []byte) ([]byte, error) {
	v, err := toBigInt(c.name, value)
	if err != nil {
		return nil, err
	}
	return appendBigLE(c.name, dst, v, c.width, c.effectiveSigned())
}

// toBigInt normalizes the integer types Encode accepts.
func toBigInt(name string, value any) (*big.Int, error) {
	switch v := value.(type) {
	case int:
		return big.NewInt(int64(v)), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case uint:
		return new(big.Int).SetUint64(uint64(v)), nil
	case *big.Int:
		return v, nil
	}
	return nil, errors.Wrapf(ErrOutOfRange, "%s: cannot encode %T as integer", name, value)
}
