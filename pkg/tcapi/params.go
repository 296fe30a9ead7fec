package tcapi

import (
	"net/url"
	"strconv"
	"strings"
)

// Params is an ordered set of query parameters for list requests.
// Insertion order is preserved because it is the serialization order; setting
// an existing key replaces its value in place.
type Params struct {
	keys   []string
	values map[string]string
}

// NewParams creates an empty parameter set.
func NewParams() *Params {
	return &Params{values: make(map[string]string)}
}

// Set adds or replaces a parameter.
func (p *Params) Set(key, value string) *Params {
	if p.values == nil {
		p.values = make(map[string]string)
	}

	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}

	p.values[key] = value

	return p
}

// WithBuildType scopes a builds query to one build type.
func (p *Params) WithBuildType(buildTypeID string) *Params {
	return p.Set("buildType", "id:"+buildTypeID)
}

// WithCount caps the number of returned results.
func (p *Params) WithCount(count int) *Params {
	return p.Set("count", strconv.Itoa(count))
}

// WithStatus restricts a builds query to one status.
func (p *Params) WithStatus(status BuildStatus) *Params {
	return p.Set("status", string(status))
}

// Get returns the value for key.
func (p *Params) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}

	value, ok := p.values[key]

	return value, ok
}

// Len returns the number of parameters. A nil *Params is empty.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}

	return len(p.keys)
}

// Each calls fn for every parameter in insertion order.
func (p *Params) Each(fn func(key, value string)) {
	if p == nil {
		return
	}

	for _, key := range p.keys {
		fn(key, p.values[key])
	}
}

// Clone returns an independent copy.
func (p *Params) Clone() *Params {
	clone := NewParams()
	p.Each(func(key, value string) { clone.Set(key, value) })

	return clone
}

// Merge copies every parameter of other into p, overriding existing keys.
func (p *Params) Merge(other *Params) *Params {
	other.Each(func(key, value string) { p.Set(key, value) })

	return p
}

// QueryString serializes the parameters as ordinary k=v&k=v pairs.
func (p *Params) QueryString() string {
	pairs := make([]string, 0, p.Len())
	p.Each(func(key, value string) {
		pairs = append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
	})

	return strings.Join(pairs, "&")
}

// Locator serializes the parameters as a TeamCity locator, k:v,k:v.
func (p *Params) Locator() string {
	pairs := make([]string, 0, p.Len())
	p.Each(func(key, value string) {
		pairs = append(pairs, key+":"+value)
	})

	return strings.Join(pairs, ",")
}
