package codec

import (
	"encoding/binary"
	"net/netip"

	"github.com/bifrostdb/bifrost/pkg/types"
)

// ipv4Codec handles IPv4: a little-endian 32-bit integer rendered as
// dotted-quad text.
type ipv4Codec struct{}

// NewIPv4 builds the IPv4 codec.
func NewIPv4(_ types.TypeDef, _ *Policy) (Codec, error) {
	return ipv4Codec{}, nil
}

func (ipv4Codec) Name() string { return "IPv4" }

func (c ipv4Codec) Decode(src []byte, loc int) (any, int, error) {
	if err := checkLen(c.Name(), src, loc, 4); err != nil {
		return nil, loc, err
	}
	v := binary.LittleEndian.Uint32(src[loc:])
	addr := netip.AddrFrom4([4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
	return addr.String(), loc + 4, nil
}

func (c ipv4Codec) Encode(_ any, _ []byte) ([]byte, error) {
	return unsupportedEncode(c.Name())
}

// ipv6Codec handles IPv6: 16 big-endian bytes. An IPv4-mapped address
// (ten zero bytes, then FFFF) unwraps to its embedded dotted quad.
type ipv6Codec struct{}

// NewIPv6 builds the IPv6 codec.
func NewIPv6(_ types.TypeDef, _ *Policy) (Codec, error) {
	return ipv6Codec{}, nil
}

func (ipv6Codec) Name() string { return "IPv6" }

func (c ipv6Codec) Decode(src []byte, loc int) (any, int, error) {
	if err := checkLen(c.Name(), src, loc, 16); err != nil {
		return nil, loc, err
	}
	var b [16]byte
	copy(b[:], src[loc:loc+16])
	return netip.AddrFrom16(b).Unmap().String(), loc + 16, nil
}

func (c ipv6Codec) Encode(_ any, _ []byte) ([]byte, error) {
	return unsupportedEncode(c.Name())
}
