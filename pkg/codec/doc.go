// Package codec converts scalar column values between their row-binary
// wire representation and native Go values.
//
// Row-binary is a positional layout: each column's values are
// concatenated with no per-value type tag and decoded against a schema
// resolved ahead of time. This package implements the per-type value
// layouts; type-name parsing lives in typeparse, codec lookup in
// registry, and row walking in rowbinary.
//
// # Wire layouts
//
// All multi-byte integers are little-endian.
//
//	Int8..Int256, UInt8..UInt256   Size/8 bytes, two's-complement when signed
//	Float32, Float64               IEEE-754
//	Date                           uint16 days since 1970-01-01
//	Date32                         int32 days since 1970-01-01
//	DateTime[(tz)]                 uint32 seconds since the epoch
//	DateTime64(s[, tz])            int64 ticks at 10^s per second
//	String                         LEB128 length prefix + bytes
//	FixedString(n)                 n bytes, rendering per Policy
//	UUID                           two little-endian 64-bit halves
//	Bool, Boolean                  one byte, nonzero true
//	Decimal(p, s)                  coefficient in 32/64/128/256 bits by p
//	IPv4                           uint32, dotted quad
//	IPv6                           16 big-endian bytes
//
// # Usage
//
// Codecs are built from a parsed TypeDef through the per-type factories
// (or through registry.Registry, which caches one instance per distinct
// parametrized name):
//
//	c, err := codec.NewDecimal(def, pol)
//	if err != nil {
//		return err
//	}
//	v, next, err := c.Decode(buf, loc)
//
// Decode returns the native value and the offset of the first unread
// byte; the caller threads that offset into the next field's decode.
// Encode appends to a caller-owned slice and returns the extension.
//
// # Error handling
//
// Construction fails with ErrInvalidTypeParameters for out-of-domain
// parameters. Decode fails with ErrBufferUnderrun when the buffer is
// short, which signals upstream framing corruption; a failed call
// leaves no partial state, so the caller aborts the whole row rather
// than resuming mid-field. Encode fails with ErrOutOfRange for
// unrepresentable values and ErrUnsupported on decode-only codecs.
// The one recoverable case is invalid text in a FixedString under the
// decode policy, which falls back to hex or a placeholder.
//
// # Thread safety
//
// Codec instances are immutable after construction and safe for
// concurrent decoding. The exception is the shared Policy: it is
// unsynchronized by design and must only be mutated while no decodes
// are in flight.
package codec
