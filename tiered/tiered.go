// Package tiered provides a read-only, layered key-value view used to
// resolve multi-level property defaults: lookup consults an ordered list of
// tiers and the first tier containing a key wins.
package tiered

import "iter"

// View is an ordered composition of key-value tiers, highest priority first.
// Tiers must be fully built before the view is constructed and must not be
// mutated afterwards.
type View[K comparable, V any] struct {
	tiers []map[K]V
	size  int
}

// New builds a view over the given tiers. Nil or empty tiers are allowed.
func New[K comparable, V any](tiers ...map[K]V) View[K, V] {
	view := View[K, V]{tiers: tiers}
	seen := make(map[K]struct{})
	for _, tier := range tiers {
		for key := range tier {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				view.size++
			}
		}
	}
	return view
}

// Get returns the value of key from its highest-priority tier.
func (v View[K, V]) Get(key K) (V, bool) {
	for _, tier := range v.tiers {
		if value, ok := tier[key]; ok {
			return value, true
		}
	}
	var zero V
	return zero, false
}

func (v View[K, V]) Has(key K) bool {
	_, ok := v.Get(key)
	return ok
}

// Len returns the number of distinct keys across all tiers.
func (v View[K, V]) Len() int {
	return v.size
}

// All iterates every distinct key exactly once with the value from its
// highest-priority tier. Iteration order is unspecified.
func (v View[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		seen := make(map[K]struct{}, v.size)
		for _, tier := range v.tiers {
			for key, value := range tier {
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				if !yield(key, value) {
					return
				}
			}
		}
	}
}

// Keys iterates every distinct key exactly once.
func (v View[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for key := range v.All() {
			if !yield(key) {
				return
			}
		}
	}
}

// Collect flattens the view into a plain map.
func (v View[K, V]) Collect() map[K]V {
	result := make(map[K]V, v.size)
	for key, value := range v.All() {
		result[key] = value
	}
	return result
}
