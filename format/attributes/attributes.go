package attributes

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Attributes is an insertion ordered set of string attributes read from a report element.
type Attributes struct {
	values *orderedmap.OrderedMap[string, string]
}

// New ...
func New() Attributes {
	return Attributes{values: orderedmap.New[string, string]()}
}

// FromPairs builds Attributes from alternating key, value arguments.
func FromPairs(keyValues ...string) Attributes {
	a := New()
	for i := 0; i+1 < len(keyValues); i += 2 {
		a.Set(keyValues[i], keyValues[i+1])
	}
	return a
}

// Set ...
func (a *Attributes) Set(key, value string) {
	if a.values == nil {
		a.values = orderedmap.New[string, string]()
	}
	a.values.Set(key, value)
}

// Get ...
func (a Attributes) Get(key string) (string, bool) {
	if a.values == nil {
		return "", false
	}
	return a.values.Get(key)
}

// Len ...
func (a Attributes) Len() int {
	if a.values == nil {
		return 0
	}
	return a.values.Len()
}

// Consume returns the value stored for key and removes it.
func (a *Attributes) Consume(key string) (string, bool) {
	if a.values == nil {
		return "", false
	}
	return a.values.Delete(key)
}

// Each calls fn for every attribute in insertion order.
func (a Attributes) Each(fn func(key, value string)) {
	if a.values == nil {
		return
	}
	for pair := a.values.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Clone returns an independent copy, so a caller can consume keys without touching the original.
func (a Attributes) Clone() Attributes {
	clone := New()
	a.Each(func(key, value string) {
		clone.Set(key, value)
	})
	return clone
}

// Keys ...
func (a Attributes) Keys() []string {
	var keys []string
	a.Each(func(key, _ string) {
		keys = append(keys, key)
	})
	return keys
}
