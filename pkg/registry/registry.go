// Package registry maps column type names to codec instances. One
// codec is built per distinct parametrized name ("Decimal(18, 4)" and
// "Decimal(9, 2)" are different instances) and cached for the lifetime
// of the registry.
package registry

import (
	"sort"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/bifrostdb/bifrost/pkg/codec"
	"github.com/bifrostdb/bifrost/pkg/typeparse"
	"github.com/bifrostdb/bifrost/pkg/types"
)

// factories maps base family names to codec constructors.
var factories = map[string]codec.Factory{
	"Int":         codec.NewInt,
	"UInt":        codec.NewUInt,
	"Float":       codec.NewFloat,
	"Date":        codec.NewDate,
	"Date32":      codec.NewDate32,
	"DateTime":    codec.NewDateTime,
	"DateTime64":  codec.NewDateTime64,
	"String":      codec.NewString,
	"FixedString": codec.NewFixedString,
	"UUID":        codec.NewUUID,
	"Bool":        codec.NewBool,
	"Boolean":     codec.NewBool,
	"Decimal":     codec.NewDecimal,
	"IPv4":        codec.NewIPv4,
	"IPv6":        codec.NewIPv6,
}

// Registry resolves type names to cached codec instances. All codecs a
// registry builds share its Policy, so the two decode-policy switches
// apply to existing instances as well as future ones.
type Registry struct {
	mu    sync.Mutex
	pol   *codec.Policy
	cache map[string]codec.Codec
}

// New creates a registry. A nil policy gets the defaults.
func New(pol *codec.Policy) *Registry {
	if pol == nil {
		pol = codec.NewPolicy()
	}
	return &Registry{
		pol:   pol,
		cache: make(map[string]codec.Codec),
	}
}

// Policy returns the shared decode policy for configuration. Mutate it
// only between decodes.
func (r *Registry) Policy() *codec.Policy {
	return r.pol
}

// Get returns the codec for a full parametrized type name, building and
// caching it on first use.
func (r *Registry) Get(typeName string) (codec.Codec, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.cache[typeName]; ok {
		return c, nil
	}

	def, err := typeparse.Parse(typeName)
	if err != nil {
		return nil, err
	}
	c, err := r.build(def)
	if err != nil {
		return nil, err
	}
	r.cache[typeName] = c
	return c, nil
}

func (r *Registry) build(def types.TypeDef) (codec.Codec, error) {
	factory, ok := factories[def.Name]
	if !ok {
		return nil, errors.Newf("unknown type %q", def.String())
	}
	return factory(def, r.pol)
}

// Schema resolves a list of type names into a codec slice, one per
// column, in order.
func (r *Registry) Schema(typeNames []string) ([]codec.Codec, error) {
	codecs := make([]codec.Codec, 0, len(typeNames))
	for _, name := range typeNames {
		c, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		codecs = append(codecs, c)
	}
	return codecs, nil
}

// TypeNames returns the registered base family names, sorted.
func TypeNames() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
