package codec

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/bifrostdb/bifrost/pkg/types"
)

const secondsPerDay = 86400

// dateCodec handles Date: an unsigned 16-bit day offset from
// 1970-01-01, rendered as midnight UTC.
type dateCodec struct{}

// NewDate builds the Date codec.
func NewDate(_ types.TypeDef, _ *Policy) (Codec, error) {
	return dateCodec{}, nil
}

func (dateCodec) Name() string { return "Date" }

func (c dateCodec) Decode(src []byte, loc int) (any, int, error) {
	if err := checkLen(c.Name(), src, loc, 2); err != nil {
		return nil, loc, err
	}
	days := binary.LittleEndian.Uint16(src[loc:])
	return time.Unix(int64(days)*secondsPerDay, 0).UTC(), loc + 2, nil
}

func (c dateCodec) Encode(value any, dst []byte) ([]byte, error) {
	t, ok := value.(time.Time)
	if !ok {
		return nil, errors.Wrapf(ErrOutOfRange, "%s: cannot encode %T", c.Name(), value)
	}
	days := floorDiv(t.Unix(), secondsPerDay)
	if days < math.MinInt16 || days > math.MaxInt16 {
		return nil, errors.Wrapf(ErrOutOfRange, "%s: %s is outside the representable range", c.Name(), t)
	}
	return binary.LittleEndian.AppendUint16(dst, uint16(int16(days))), nil
}

// date32Codec handles Date32: a signed 32-bit day offset from
// 1970-01-01, permitting pre-1970 dates.
type date32Codec struct{}

// NewDate32 builds the Date32 codec.
func NewDate32(_ types.TypeDef, _ *Policy) (Codec, error) {
	return date32Codec{}, nil
}

func (date32Codec) Name() string { return "Date32" }

func (c date32Codec) Decode(src []byte, loc int) (any, int, error) {
	if err := checkLen(c.Name(), src, loc, 4); err != nil {
		return nil, loc, err
	}
	days := int32(binary.LittleEndian.Uint32(src[loc:]))
	return time.Unix(int64(days)*secondsPerDay, 0).UTC(), loc + 4, nil
}

// Encode writes the day delta between the value and the epoch date.
func (c date32Codec) Encode(value any, dst []byte) ([]byte, error) {
	t, ok := value.(time.Time)
	if !ok {
		return nil, errors.Wrapf(ErrOutOfRange, "%s: cannot encode %T", c.Name(), value)
	}
	days := floorDiv(t.Unix(), secondsPerDay)
	if days < math.MinInt32 || days > math.MaxInt32 {
		return nil, errors.Wrapf(ErrOutOfRange, "%s: %s is outside the representable range", c.Name(), t)
	}
	return binary.LittleEndian.AppendUint32(dst, uint32(int32(days))), nil
}

// dateTimeCodec handles DateTime: an unsigned 32-bit second offset from
// the epoch, interpreted in the zone named by the type's first
// parameter (UTC when absent).
type dateTimeCodec struct {
	name string
	loc  *time.Location
}

// NewDateTime builds a DateTime codec, loading the timezone named in
// the type parameters.
func NewDateTime(def types.TypeDef, _ *Policy) (Codec, error) {
	name := "DateTime"
	if def.ArgStr != "" {
		name += "(" + def.ArgStr + ")"
	}
	loc := time.UTC
	if tz, ok := def.StringAt(0); ok {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidTypeParameters, "DateTime: unknown timezone %q", tz)
		}
		loc = l
	}
	return &dateTimeCodec{name: name, loc: loc}, nil
}

func (c *dateTimeCodec) Name() string { return c.name }

func (c *dateTimeCodec) Decode(src []byte, loc int) (any, int, error) {
	if err := checkLen(c.name, src, loc, 4); err != nil {
		return nil, loc, err
	}
	sec := binary.LittleEndian.Uint32(src[loc:])
	return time.Unix(int64(sec), 0).In(c.loc), loc + 4, nil
}

// Encode truncates to whole seconds.
func (c *dateTimeCodec) Encode(value any, dst []byte) ([]byte, error) {
	t, ok := value.(time.Time)
	if !ok {
		return nil, errors.Wrapf(ErrOutOfRange, "%s: cannot encode %T", c.name, value)
	}
	sec := t.Unix()
	if sec < math.MinInt32 || sec > math.MaxInt32 {
		return nil, errors.Wrapf(ErrOutOfRange, "%s: %s is outside the representable range", c.name, t)
	}
	return binary.LittleEndian.AppendUint32(dst, uint32(int32(sec))), nil
}

// dateTime64Codec handles DateTime64: a signed 64-bit tick count at
// 10^scale ticks per second. First parameter is the scale, optional
// second parameter the timezone name.
type dateTime64Codec struct {
	name string
	prec int64
	loc  *time.Location
}

// NewDateTime64 builds a DateTime64 codec. The scale must be in [0, 9].
func NewDateTime64(def types.TypeDef, _ *Policy) (Codec, error) {
	scale, ok := def.IntAt(0)
	if !ok {
		return nil, errors.Wrap(ErrInvalidTypeParameters, "DateTime64: missing precision")
	}
	if scale < 0 || scale > 9 {
		return nil, errors.Wrapf(ErrInvalidTypeParameters, "DateTime64: precision %d out of range [0, 9]", scale)
	}
	prec := int64(1)
	for i := 0; i < scale; i++ {
		prec *= 10
	}
	loc := time.UTC
	if tz, ok := def.StringAt(1); ok {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidTypeParameters, "DateTime64: unknown timezone %q", tz)
		}
		loc = l
	}
	return &dateTime64Codec{
		name: "DateTime64(" + def.ArgStr + ")",
		prec: prec,
		loc:  loc,
	}, nil
}

func (c *dateTime64Codec) Name() string { return c.name }

// Decode floors the tick count into whole seconds so that negative
// ticks land on the second boundary below them, then adds the
// non-negative microsecond remainder.
func (c *dateTime64Codec) Decode(src []byte, loc int) (any, int, error) {
	if err := checkLen(c.name, src, loc, 8); err != nil {
		return nil, loc, err
	}
	ticks := int64(binary.LittleEndian.Uint64(src[loc:]))
	seconds := floorDiv(ticks, c.prec)
	micros := (ticks - seconds*c.prec) * 1000000 / c.prec
	return time.Unix(seconds, micros*1000).In(c.loc), loc + 8, nil
}

func (c *dateTime64Codec) Encode(_ any, _ []byte) ([]byte, error) {
	return unsupportedEncode(c.name)
}
