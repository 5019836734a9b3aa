package codec

import (
	"github.com/google/uuid"

	"github.com/bifrostdb/bifrost/pkg/types"
)

// uuidCodec handles UUID: 16 bytes on the wire as two little-endian
// 64-bit halves. Each half is byte-reversed to big-endian order before
// the two are concatenated into a standard identifier.
type uuidCodec struct{}

// NewUUID builds the UUID codec.
func NewUUID(_ types.TypeDef, _ *Policy) (Codec, error) {
	return uuidCodec{}, nil
}

func (uuidCodec) Name() string { return "UUID" }

func (c uuidCodec) Decode(src []byte, loc int) (any, int, error) {
	if err := checkLen(c.Name(), src, loc, 16); err != nil {
		return nil, loc, err
	}
	var b [16]byte
	for i := 0; i < 8; i++ {
		b[i] = src[loc+7-i]
		b[8+i] = src[loc+15-i]
	}
	u, err := uuid.FromBytes(b[:])
	if err != nil {
		return nil, loc, err
	}
	return u, loc + 16, nil
}

func (c uuidCodec) Encode(_ any, _ []byte) ([]byte, error) {
	return unsupportedEncode(c.Name())
}

// boolCodec handles Bool/Boolean: one byte, nonzero is true.
type boolCodec struct {
	name string
}

// NewBool builds a boolean codec, displayed under whichever alias the
// type name used.
func NewBool(def types.TypeDef, _ *Policy) (Codec, error) {
	return boolCodec{name: def.Name}, nil
}

func (c boolCodec) Name() string { return c.name }

func (c boolCodec) Decode(src []byte, loc int) (any, int, error) {
	if err := checkLen(c.name, src, loc, 1); err != nil {
		return nil, loc, err
	}
	return src[loc] > 0, loc + 1, nil
}

func (c boolCodec) Encode(_ any, _ []byte) ([]byte, error) {
	return unsupportedEncode(c.name)
}
