package mjml

import (
	"sort"
	"strings"
)

// Attributes is the resolved attribute map of a node. It is built once by
// Resolve and never modified afterwards.
type Attributes struct {
	m map[string]string
}

// Get returns the value of key, or "" when unset.
func (a Attributes) Get(key string) string {
	return a.m[key]
}

// Has reports whether key is set.
func (a Attributes) Has(key string) bool {
	_, ok := a.m[key]
	return ok
}

// Keys returns the attribute names in sorted order.
func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a.m))
	for k := range a.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len is the number of set attributes.
func (a Attributes) Len() int {
	return len(a.m)
}

const (
	// classKey lists the override classes of a node.
	classKey = "mj-class"
	// cssClassKey is the only attribute concatenated across classes.
	cssClassKey = "css-class"
	// nameKey names an mj-class; it never leaks into the nodes using it.
	nameKey = "name"
)

// Overrides are the document-level attribute overrides declared in
// <mj-attributes>.
type Overrides struct {
	All     map[string]string
	Tags    map[string]map[string]string
	Classes map[string]map[string]string
}

// NewOverrides returns empty Overrides.
func NewOverrides() *Overrides {
	return &Overrides{
		All:     map[string]string{},
		Tags:    map[string]map[string]string{},
		Classes: map[string]map[string]string{},
	}
}

// Resolve merges the layers of the cascade for a node with the given tag,
// highest precedence first: inline attributes, tag overrides, classes
// listed in inline "mj-class" (in listed order), mj-all overrides,
// attributes inherited from the parent component, and the builtin
// defaults. Each layer only fills keys not set by a higher one.
//
// Tag overrides rank above mj-class here. mjml.io ranks classes above tag
// overrides, so documents setting the same key in both resolve differently.
func Resolve(tag string, inline map[string]string, overrides *Overrides, inherited, defaults map[string]string) Attributes {
	m := make(map[string]string, len(inline)+len(defaults))
	fill := func(layer map[string]string) {
		for k, v := range layer {
			if k == classKey {
				continue
			}
			if _, ok := m[k]; !ok {
				m[k] = v
			}
		}
	}

	fill(inline)
	if overrides != nil {
		fill(overrides.Tags[tag])

		var classCSS []string
		for _, name := range strings.Fields(inline[classKey]) {
			class := overrides.Classes[name]
			if v := class[cssClassKey]; v != "" {
				classCSS = append(classCSS, v)
			}
			for k, v := range class {
				if k == nameKey || k == cssClassKey {
					continue
				}
				if _, ok := m[k]; !ok && k != classKey {
					m[k] = v
				}
			}
		}
		if len(classCSS) > 0 {
			if own := m[cssClassKey]; own != "" {
				classCSS = append(classCSS, own)
			}
			m[cssClassKey] = strings.Join(classCSS, " ")
		}

		fill(overrides.All)
	}
	fill(inherited)
	fill(defaults)

	if v, ok := inline[classKey]; ok {
		m[classKey] = v
	}
	return Attributes{m: m}
}
