// Package typeparse turns textual column type names like
// "Decimal(18, 4)" or "DateTime64(3, 'Asia/Istanbul')" into TypeDef
// descriptors the codec factories consume.
package typeparse

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/bifrostdb/bifrost/pkg/types"
)

// Parse splits a type name into its base family, embedded bit size and
// constructor parameters. Trailing digits are treated as a bit size
// only for the sized families (Int, UInt, Float, Decimal); Date32 and
// DateTime64 are whole names. Integer parameters parse as ints, quoted
// parameters as strings with the quotes stripped; the original argument
// text is preserved verbatim for display.
func Parse(name string) (types.TypeDef, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.TypeDef{}, errors.New("empty type name")
	}

	base := name
	argStr := ""
	if i := strings.IndexByte(name, '('); i >= 0 {
		if !strings.HasSuffix(name, ")") {
			return types.TypeDef{}, errors.Newf("unbalanced parentheses in type name %q", name)
		}
		base = strings.TrimSpace(name[:i])
		argStr = name[i+1 : len(name)-1]
	}
	if base == "" {
		return types.TypeDef{}, errors.Newf("missing base name in type name %q", name)
	}

	base, size, err := splitSize(base)
	if err != nil {
		return types.TypeDef{}, err
	}

	values, err := parseArgs(argStr)
	if err != nil {
		return types.TypeDef{}, errors.Wrapf(err, "type name %q", name)
	}

	return types.TypeDef{
		Name:   base,
		Size:   size,
		Values: values,
		ArgStr: argStr,
	}, nil
}

// splitSize peels trailing digits off sized family names.
func splitSize(base string) (string, int, error) {
	i := len(base)
	for i > 0 && base[i-1] >= '0' && base[i-1] <= '9' {
		i--
	}
	if i == len(base) {
		return base, 0, nil
	}
	family := base[:i]
	if !types.SizedFamily(family) {
		return base, 0, nil
	}
	size, err := strconv.Atoi(base[i:])
	if err != nil {
		return "", 0, errors.Newf("malformed bit size in type name %q", base)
	}
	return family, size, nil
}

func parseArgs(argStr string) ([]any, error) {
	if strings.TrimSpace(argStr) == "" {
		return nil, nil
	}
	parts := strings.Split(argStr, ",")
	values := make([]any, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if len(part) >= 2 && part[0] == '\'' && part[len(part)-1] == '\'' {
			values = append(values, part[1:len(part)-1])
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.Newf("malformed argument %q", part)
		}
		values = append(values, n)
	}
	return values, nil
}
