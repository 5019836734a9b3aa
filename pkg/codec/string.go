package codec

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding"

	"github.com/bifrostdb/bifrost/pkg/types"
)

// stringCodec handles String: a LEB128 (unsigned varint) byte-length
// prefix followed by that many bytes of text. The prefix is part of the
// consumed width.
type stringCodec struct{}

// NewString builds the String codec.
func NewString(_ types.TypeDef, _ *Policy) (Codec, error) {
	return stringCodec{}, nil
}

func (stringCodec) Name() string { return "String" }

func (c stringCodec) Decode(src []byte, loc int) (any, int, error) {
	if loc < 0 || loc >= len(src) {
		return nil, loc, errors.Wrapf(ErrBufferUnderrun,
			"String: need length prefix at offset %d, have %d bytes", loc, len(src))
	}
	n, w := binary.Uvarint(src[loc:])
	if w == 0 {
		return nil, loc, errors.Wrapf(ErrBufferUnderrun,
			"String: length prefix cut off at offset %d", loc)
	}
	if w < 0 {
		return nil, loc, errors.Wrapf(ErrBufferUnderrun,
			"String: corrupt length prefix at offset %d overflows 64 bits", loc)
	}
	start := loc + w
	if n > uint64(len(src)-start) {
		return nil, loc, errors.Wrapf(ErrBufferUnderrun,
			"String: need %d bytes at offset %d, have %d", n, start, len(src)-start)
	}
	end := start + int(n)
	return string(src[start:end]), end, nil
}

func (c stringCodec) Encode(_ any, _ []byte) ([]byte, error) {
	return unsupportedEncode(c.Name())
}

// fixedStringCodec handles FixedString(n): n raw bytes whose rendering
// is governed by the shared Policy at decode time. Changing the policy
// changes the behavior of instances that already exist.
type fixedStringCodec struct {
	name string
	size int
	pol  *Policy
}

// NewFixedString builds a FixedString codec from the declared byte length.
func NewFixedString(def types.TypeDef, pol *Policy) (Codec, error) {
	size, ok := def.IntAt(0)
	if !ok || size <= 0 {
		return nil, errors.Wrap(ErrInvalidTypeParameters, "FixedString: missing or non-positive length")
	}
	return &fixedStringCodec{
		name: fmt.Sprintf("FixedString(%d)", size),
		size: size,
		pol:  pol,
	}, nil
}

func (c *fixedStringCodec) Name() string { return c.name }

func (c *fixedStringCodec) Decode(src []byte, loc int) (any, int, error) {
	if err := checkLen(c.name, src, loc, c.size); err != nil {
		return nil, loc, err
	}
	next := loc + c.size
	raw := src[loc:next]
	switch c.pol.fixedMethod {
	case FixedStringHex:
		return hex.EncodeToString(raw), next, nil
	case FixedStringDecode:
		return c.decodeText(raw), next, nil
	default:
		out := make([]byte, c.size)
		copy(out, raw)
		return out, next, nil
	}
}

// decodeText renders raw as text in the policy's encoding. This is the
// one recoverable decode-error path: invalid bytes fall back to a hex
// rendering or a placeholder instead of propagating.
func (c *fixedStringCodec) decodeText(raw []byte) string {
	if c.pol.enc == nil {
		if utf8.Valid(raw) {
			return string(raw)
		}
		return c.fallback(raw)
	}
	decoded, err := c.pol.enc.NewDecoder().Bytes(raw)
	if err != nil || replacedInvalid(c.pol.enc, raw, decoded) {
		return c.fallback(raw)
	}
	return string(decoded)
}

// replacedInvalid reports whether decoded carries replacement runes the
// decoder substituted for unmappable input. Charset decoders do not
// error on invalid bytes; they emit U+FFFD, so invalid input can only be
// spotted after the fact by checking that every replacement rune in the
// output traces back to a literal U+FFFD in raw.
func replacedInvalid(enc encoding.Encoding, raw, decoded []byte) bool {
	repl := []byte(string(utf8.RuneError))
	got := bytes.Count(decoded, repl)
	if got == 0 {
		return false
	}
	lit, err := enc.NewEncoder().Bytes(repl)
	if err != nil {
		// The charset cannot represent U+FFFD, so any replacement
		// rune marks unmappable input.
		return true
	}
	return got != bytes.Count(raw, lit)
}

func (c *fixedStringCodec) fallback(raw []byte) string {
	if c.pol.onInvalid == FallbackPlaceholder {
		return Placeholder
	}
	return hex.EncodeToString(raw)
}

func (c *fixedStringCodec) Encode(_ any, _ []byte) ([]byte, error) {
	return unsupportedEncode(c.name)
}
