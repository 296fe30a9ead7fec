package tcapi

import (
	"fmt"
	"slices"
	"sort"
)

// Supported filter keys.
const (
	FilterInclude = "include"
	FilterExclude = "exclude"
)

// Filter selects build types by id or name. The include and exclude keys each
// hold a single token (string) or a list of tokens ([]string). An absent
// include key accepts everything; an absent exclude key rejects nothing.
//
// Every token must match a build type: a token that matches nothing makes the
// whole selection fail with a *FilterMismatchError. A token is consumed by the
// first build type it matches, so listing a token twice selects two build types
// that share that name.
type Filter map[string]interface{}

// NewFilter creates an empty filter.
func NewFilter() Filter {
	return Filter{}
}

// Include appends include tokens.
func (f Filter) Include(tokens ...string) Filter {
	return f.add(FilterInclude, tokens)
}

// Exclude appends exclude tokens.
func (f Filter) Exclude(tokens ...string) Filter {
	return f.add(FilterExclude, tokens)
}

func (f Filter) add(key string, tokens []string) Filter {
	existing, _ := tokensOf(f[key])
	f[key] = append(existing, tokens...)

	return f
}

// ApplyFilter returns the build types that the filter retains, in input order.
//
// A build type is matched against pending tokens by id first and by name
// second, consuming the first token that hits. A token that equals the id of
// one build type and the name of another is therefore claimed by whichever of
// the two comes first in buildTypes.
func ApplyFilter(buildTypes []BuildType, filter Filter) ([]BuildType, error) {
	including, excluding, err := filter.compile()
	if err != nil {
		return nil, err
	}

	retained := make([]BuildType, 0, len(buildTypes))

	for _, buildType := range buildTypes {
		// Both filters see every build type so that each can consume its tokens.
		included := including.retain(buildType)
		notExcluded := excluding.retain(buildType)

		if included && notExcluded {
			retained = append(retained, buildType)
		}
	}

	includeMisses := including.misses()
	excludeMisses := excluding.misses()

	if len(includeMisses) > 0 || len(excludeMisses) > 0 {
		return nil, &FilterMismatchError{Include: includeMisses, Exclude: excludeMisses}
	}

	return retained, nil
}

func (f Filter) compile() (buildTypeFilter, buildTypeFilter, error) {
	var unsupported []string

	for key := range f {
		if key != FilterInclude && key != FilterExclude {
			unsupported = append(unsupported, key)
		}
	}

	if len(unsupported) > 0 {
		sort.Strings(unsupported)

		return nil, nil, &UnsupportedOptionError{Options: unsupported}
	}

	var including buildTypeFilter = includeAll{}

	if value, ok := f[FilterInclude]; ok {
		tokens, err := tokensOf(value)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", FilterInclude, err)
		}

		including = &includeFilter{pending: newTokenSet(tokens)}
	}

	var excluding buildTypeFilter = excludeNone{}

	if value, ok := f[FilterExclude]; ok {
		tokens, err := tokensOf(value)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", FilterExclude, err)
		}

		excluding = &excludeFilter{pending: newTokenSet(tokens)}
	}

	return including, excluding, nil
}

func tokensOf(value interface{}) ([]string, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{typed}, nil
	case []string:
		return slices.Clone(typed), nil
	case []interface{}:
		tokens := make([]string, 0, len(typed))

		for _, item := range typed {
			token, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: got %T", ErrInvalidFilterValue, item)
			}

			tokens = append(tokens, token)
		}

		return tokens, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidFilterValue, value)
	}
}

type buildTypeFilter interface {
	retain(buildType BuildType) bool
	misses() []string
}

type includeAll struct{}

func (includeAll) retain(BuildType) bool { return true }
func (includeAll) misses() []string      { return nil }

type excludeNone struct{}

func (excludeNone) retain(BuildType) bool { return true }
func (excludeNone) misses() []string      { return nil }

type includeFilter struct {
	pending *tokenSet
}

func (f *includeFilter) retain(buildType BuildType) bool {
	return f.pending.consume(buildType)
}

func (f *includeFilter) misses() []string {
	return f.pending.remaining()
}

type excludeFilter struct {
	pending *tokenSet
}

func (f *excludeFilter) retain(buildType BuildType) bool {
	return !f.pending.consume(buildType)
}

func (f *excludeFilter) misses() []string {
	return f.pending.remaining()
}

// tokenSet is a multiset of unmatched tokens that remembers first-seen order.
type tokenSet struct {
	order  []string
	counts map[string]int
}

func newTokenSet(tokens []string) *tokenSet {
	set := &tokenSet{counts: make(map[string]int, len(tokens))}

	for _, token := range tokens {
		if _, seen := set.counts[token]; !seen {
			set.order = append(set.order, token)
		}

		set.counts[token]++
	}

	return set
}

// consume removes the id or, failing that, the name of buildType.
func (s *tokenSet) consume(buildType BuildType) bool {
	return s.remove(buildType.ID) || s.remove(buildType.Name)
}

func (s *tokenSet) remove(token string) bool {
	if s.counts[token] == 0 {
		return false
	}

	s.counts[token]--

	return true
}

func (s *tokenSet) remaining() []string {
	var left []string

	for _, token := range s.order {
		for range s.counts[token] {
			left = append(left, token)
		}
	}

	return left
}
