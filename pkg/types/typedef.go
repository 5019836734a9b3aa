package types

import (
	"strconv"
	"strings"
)

// TypeDef describes a parsed column type name together with its
// parenthesized constructor parameters. It is produced once per distinct
// type name and never mutated; codecs derive all of their state from it
// at construction time.
type TypeDef struct {
	Name   string // base family name, e.g. "Int", "Decimal", "DateTime64"
	Size   int    // fixed bit width when the name carries one, 0 otherwise
	Values []any  // constructor parameters in declaration order (int or string)
	ArgStr string // original argument text inside the parentheses, for display
}

// IntAt returns the i-th constructor parameter as an int.
func (d TypeDef) IntAt(i int) (int, bool) {
	if i < 0 || i >= len(d.Values) {
		return 0, false
	}
	v, ok := d.Values[i].(int)
	return v, ok
}

// StringAt returns the i-th constructor parameter as a string.
// Quoted parameters are stored with their quotes already stripped.
func (d TypeDef) StringAt(i int) (string, bool) {
	if i < 0 || i >= len(d.Values) {
		return "", false
	}
	v, ok := d.Values[i].(string)
	return v, ok
}

// String reconstructs a display form of the type name: the base name,
// the embedded bit size when present, and the original argument text.
func (d TypeDef) String() string {
	var b strings.Builder
	b.WriteString(d.Name)
	if d.Size > 0 && sizedFamilies[d.Name] {
		b.WriteString(strconv.Itoa(d.Size))
	}
	if d.ArgStr != "" {
		b.WriteByte('(')
		b.WriteString(d.ArgStr)
		b.WriteByte(')')
	}
	return b.String()
}

// sizedFamilies are the base names whose trailing digits select a bit
// width rather than naming a distinct type (Date32 and DateTime64 are
// whole names, Int32 is Int at 32 bits).
var sizedFamilies = map[string]bool{
	"Int":     true,
	"UInt":    true,
	"Float":   true,
	"Decimal": true,
}

// SizedFamily reports whether trailing digits in a type name beginning
// with base select a storage width.
func SizedFamily(base string) bool {
	return sizedFamilies[base]
}
