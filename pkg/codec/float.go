package codec

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/bifrostdb/bifrost/pkg/types"
)

// floatCodec handles Float32 and Float64: IEEE-754, little-endian.
// Both widths decode to float64.
type floatCodec struct {
	name  string
	width int
}

// NewFloat builds a floating point codec for Float32 or Float64.
func NewFloat(def types.TypeDef, _ *Policy) (Codec, error) {
	if def.Size != 32 && def.Size != 64 {
		return nil, errors.Wrapf(ErrInvalidTypeParameters, "Float: unsupported bit width %d", def.Size)
	}
	return &floatCodec{
		name:  def.Name + strconv.Itoa(def.Size),
		width: def.Size / 8,
	}, nil
}

func (c *floatCodec) Name() string { return c.name }

func (c *floatCodec) Decode(src []byte, loc int) (any, int, error) {
	if err := checkLen(c.name, src, loc, c.width); err != nil {
		return nil, loc, err
	}
	next := loc + c.width
	if c.width == 4 {
		bits := binary.LittleEndian.Uint32(src[loc:next])
		return float64(math.Float32frombits(bits)), next, nil
	}
	bits := binary.LittleEndian.Uint64(src[loc:next])
	return math.Float64frombits(bits), next, nil
}

// Encode packs the scalar value itself, not a wrapper around it.
func (c *floatCodec) Encode(value any, dst []byte) ([]byte, error) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	default:
		return nil, errors.Wrapf(ErrOutOfRange, "%s: cannot encode %T as float", c.name, value)
	}
	if c.width == 4 {
		return binary.LittleEndian.AppendUint32(dst, math.Float32bits(float32(f))), nil
	}
	return binary.LittleEndian.AppendUint64(dst, math.Float64bits(f)), nil
}
