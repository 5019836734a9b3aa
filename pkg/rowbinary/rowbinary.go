// Package rowbinary walks one row of a row-binary stream at a time
// across a pre-resolved codec schema. Framing, blocks and compression
// are the caller's concern.
package rowbinary

import (
	"github.com/cockroachdb/errors"

	"github.com/bifrostdb/bifrost/pkg/codec"
)

// Schema is an ordered list of column codecs for one row shape.
type Schema struct {
	codecs []codec.Codec
}

// NewSchema builds a schema over the given column codecs.
func NewSchema(codecs []codec.Codec) *Schema {
	return &Schema{codecs: codecs}
}

// Columns returns the number of columns in the schema.
func (s *Schema) Columns() int {
	return len(s.codecs)
}

// DecodeRow decodes one value per column starting at loc and returns
// the values with the offset of the first byte after the row. On error
// the partially decoded values are discarded; the caller aborts the row
// rather than resuming mid-field.
func (s *Schema) DecodeRow(src []byte, loc int) ([]any, int, error) {
	start := loc
	values := make([]any, len(s.codecs))
	for i, c := range s.codecs {
		v, next, err := c.Decode(src, loc)
		if err != nil {
			return nil, start, errors.Wrapf(err, "column %d", i)
		}
		values[i] = v
		loc = next
	}
	return values, loc, nil
}

// AppendRow encodes one value per column, appending to dst.
func (s *Schema) AppendRow(dst []byte, values []any) ([]byte, error) {
	if len(values) != len(s.codecs) {
		return nil, errors.Newf("row has %d values, schema has %d columns", len(values), len(s.codecs))
	}
	for i, c := range s.codecs {
		out, err := c.Encode(values[i], dst)
		if err != nil {
			return nil, errors.Wrapf(err, "column %d", i)
		}
		dst = out
	}
	return dst, nil
}
