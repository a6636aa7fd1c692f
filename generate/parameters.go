package generate

import (
	"sort"
	"strings"
)

// Parameters are the name=value options passed through to a Writer.
type Parameters map[string]string

// Get returns the named parameter, or fallback when it is unset or empty.
func (p Parameters) Get(name, fallback string) string {
	if v, ok := p[name]; ok && v != "" {
		return v
	}
	return fallback
}

// Set stores a parameter, allocating the map when needed.
func (p *Parameters) Set(name, value string) {
	if *p == nil {
		*p = make(Parameters)
	}
	(*p)[name] = value
}

// Names returns the parameter names in sorted order.
func (p Parameters) Names() []string {
	names := make([]string, 0, len(p))
	for n := range p {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseParameter splits a "name=value" argument. The name must be non-empty;
// the value may be empty or contain further '=' characters.
func ParseParameter(arg string) (name, value string, ok bool) {
	name, value, ok = strings.Cut(arg, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", false
	}
	return name, value, true
}
