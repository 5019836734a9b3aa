package codec

import (
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// FixedStringMethod selects how FixedString columns are rendered.
type FixedStringMethod int

const (
	// FixedStringRaw returns the raw bytes unchanged.
	FixedStringRaw FixedStringMethod = iota
	// FixedStringDecode decodes the bytes as text in the configured
	// encoding, falling back per OnInvalid when the bytes are invalid.
	FixedStringDecode
	// FixedStringHex renders the bytes as lowercase hex text.
	FixedStringHex
)

// InvalidTextFallback selects what FixedStringDecode produces when the
// bytes are not valid text.
type InvalidTextFallback int

const (
	// FallbackHex renders the invalid bytes as hex.
	FallbackHex InvalidTextFallback = iota
	// FallbackPlaceholder substitutes a fixed placeholder string.
	FallbackPlaceholder
)

// UInt64Mode selects the effective signedness of UInt64 columns.
type UInt64Mode int

const (
	// UInt64Unsigned treats the 8 bytes as an unsigned integer.
	UInt64Unsigned UInt64Mode = iota
	// UInt64Signed treats the same bytes as a signed integer.
	UInt64Signed
)

// Placeholder is substituted for invalid FixedString bytes under
// FallbackPlaceholder.
const Placeholder = "<binary data>"

// FixedStringOptions configures FixedString handling. Encoding is an
// IANA charset name; empty means UTF-8.
type FixedStringOptions struct {
	Method    FixedStringMethod
	Encoding  string
	OnInvalid InvalidTextFallback
}

// Policy holds the decoding switches for the two ambiguous type
// families: FixedString rendering and UInt64 signedness. One Policy is
// shared by every codec a Registry builds; it is read at decode time,
// so mutating it changes the behavior of codecs that already exist.
//
// The Policy is deliberately unsynchronized. Configure it before
// streaming decodes begin, never mid-stream: a mutation concurrent with
// active decodes is a data race and can produce mixed-mode values
// within one result set.
type Policy struct {
	fixedMethod  FixedStringMethod
	encodingName string
	enc          encoding.Encoding // nil means UTF-8
	onInvalid    InvalidTextFallback
	uint64Mode   UInt64Mode
}

// NewPolicy returns the default policy: raw FixedString bytes, UTF-8
// with hex fallback when decoding is enabled, unsigned UInt64.
func NewPolicy() *Policy {
	return &Policy{
		fixedMethod:  FixedStringRaw,
		encodingName: "utf-8",
		onInvalid:    FallbackHex,
		uint64Mode:   UInt64Unsigned,
	}
}

// SetFixedStringHandling reconfigures FixedString rendering for every
// codec sharing this policy, including instances built before the call.
// Non-UTF-8 encodings are resolved through the IANA charset index; an
// unknown name is an error and leaves the policy unchanged.
func (p *Policy) SetFixedStringHandling(opts FixedStringOptions) error {
	name := opts.Encoding
	if name == "" {
		name = "utf-8"
	}
	var enc encoding.Encoding
	if !isUTF8Name(name) {
		e, err := ianaindex.IANA.Encoding(name)
		if err != nil || e == nil {
			return errors.Newf("unknown text encoding %q", opts.Encoding)
		}
		enc = e
	}
	p.fixedMethod = opts.Method
	p.encodingName = name
	p.enc = enc
	p.onInvalid = opts.OnInvalid
	return nil
}

// SetUInt64Handling reconfigures UInt64 signedness for every codec
// sharing this policy, including instances built before the call.
func (p *Policy) SetUInt64Handling(mode UInt64Mode) {
	p.uint64Mode = mode
}

func isUTF8Name(name string) bool {
	switch strings.ToLower(name) {
	case "utf8", "utf-8":
		return true
	}
	return false
}

// ParseFixedStringMethod maps a configuration string to a method.
func ParseFixedStringMethod(s string) (FixedStringMethod, error) {
	switch strings.ToLower(s) {
	case "raw":
		return FixedStringRaw, nil
	case "decode":
		return FixedStringDecode, nil
	case "hex":
		return FixedStringHex, nil
	}
	return 0, errors.Newf("unknown fixed string method %q", s)
}

// ParseInvalidTextFallback maps a configuration string to a fallback.
func ParseInvalidTextFallback(s string) (InvalidTextFallback, error) {
	switch strings.ToLower(s) {
	case "hex":
		return FallbackHex, nil
	case "placeholder":
		return FallbackPlaceholder, nil
	}
	return 0, errors.Newf("unknown invalid-text fallback %q", s)
}

// ParseUInt64Mode maps a configuration string to a mode.
func ParseUInt64Mode(s string) (UInt64Mode, error) {
	switch strings.ToLower(s) {
	case "unsigned":
		return UInt64Unsigned, nil
	case "signed":
		return UInt64Signed, nil
	}
	return 0, errors.Newf("unknown uint64 mode %q", s)
}
