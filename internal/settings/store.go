// Package settings provides a hierarchical key/value store for parsed options.
// A store falls back to its parent chain for keys it does not hold, and
// registered array keys accumulate values instead of overwriting them.
package settings

import (
	"slices"
	"sort"
)

// ArgumentsKey is the array key bare arguments are stored under.
const ArgumentsKey = "38f9b7b0-755f-11e4-82f8-0800200c9a66"

// Store is one level of a settings hierarchy.
// A child holds a non-owning reference to its parent; the parent must outlive it.
type Store struct {
	name      string
	parent    *Store
	values    map[string]any
	arrayKeys map[string]bool
}

// New creates an empty store. parent may be nil.
func New(name string, parent *Store) *Store {
	s := &Store{
		name:      name,
		parent:    parent,
		values:    map[string]any{},
		arrayKeys: map[string]bool{},
	}
	s.RegisterArray(ArgumentsKey)

	return s
}

// AddArgument appends a bare argument.
func (s *Store) AddArgument(arg string) {
	s.SetValue(ArgumentsKey, arg)
}

// Arguments returns the local bare arguments in order.
func (s *Store) Arguments() []string {
	list, _ := s.values[ArgumentsKey].([]any)
	out := make([]string, 0, len(list))

	for _, v := range list {
		if str, ok := v.(string); ok {
			out = append(out, str)
		}
	}

	return out
}

// Has reports whether key is set locally.
func (s *Store) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// IsArray reports whether key is registered as an array key on this store.
func (s *Store) IsArray(key string) bool {
	return s.arrayKeys[key]
}

// Keys returns the locally set keys, sorted, excluding ArgumentsKey.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.values))

	for k := range s.values {
		if k != ArgumentsKey {
			keys = append(keys, k)
		}
	}

	sort.Strings(keys)

	return keys
}

// LocalValue returns the value stored on this level only, or nil.
func (s *Store) LocalValue(key string) any {
	return s.values[key]
}

// Name returns the store's name.
func (s *Store) Name() string {
	return s.name
}

// Owner returns the nearest store in the chain (starting with s) that holds key, or nil.
func (s *Store) Owner(key string) *Store {
	for p := s; p != nil; p = p.parent {
		if p.Has(key) {
			return p
		}
	}

	return nil
}

// OwnerOf returns the nearest store whose array key holds the string value, or nil.
func (s *Store) OwnerOf(key, value string) *Store {
	for p := s; p != nil; p = p.parent {
		list, _ := p.values[key].([]any)
		if slices.Contains(list, any(value)) {
			return p
		}
	}

	return nil
}

// Parent returns the parent store, or nil.
func (s *Store) Parent() *Store {
	return s.parent
}

// RegisterArray marks key as array-valued on this store.
func (s *Store) RegisterArray(key string) {
	s.arrayKeys[key] = true
}

// SetLocalValue stores value under key on this level, bypassing array semantics.
func (s *Store) SetLocalValue(key string, value any) {
	s.values[key] = value
}

// SetValue stores value under key. For array keys the value is appended
// (list values are flattened); otherwise it replaces the local value.
func (s *Store) SetValue(key string, value any) {
	if !s.arrayKeys[key] {
		s.SetLocalValue(key, value)
		return
	}

	var list []any

	switch existing := s.values[key].(type) {
	case nil:
	case []any:
		list = existing
	default:
		list = []any{existing}
	}

	if values, ok := value.([]any); ok {
		list = append(list, values...)
	} else {
		list = append(list, value)
	}

	s.values[key] = list
}

// Value looks key up through the parent chain. Scalar keys return the nearest
// value; array keys return every level's values, nearest level first.
func (s *Store) Value(key string) any {
	if !s.arrayKeys[key] {
		if owner := s.Owner(key); owner != nil {
			return owner.values[key]
		}

		return nil
	}

	var out []any

	for p := s; p != nil; p = p.parent {
		switch v := p.values[key].(type) {
		case nil:
		case []any:
			out = append(out, v...)
		default:
			out = append(out, v)
		}
	}

	return out
}
