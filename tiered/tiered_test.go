package tiered_test

import (
	"maps"
	"slices"
	"testing"

	"github.com/eak1mov/go-libtmx/tiered"
	"github.com/google/go-cmp/cmp"
)

func TestViewLookup(t *testing.T) {
	view := tiered.New(
		map[string]int{"a": 1, "b": 2},
		map[string]int{"b": 99, "c": 3},
	)

	for _, tc := range []struct {
		Key   string
		Want  int
		Found bool
	}{
		{Key: "a", Want: 1, Found: true},
		{Key: "b", Want: 2, Found: true},
		{Key: "c", Want: 3, Found: true},
		{Key: "d", Found: false},
	} {
		got, found := view.Get(tc.Key)
		if found != tc.Found || (found && got != tc.Want) {
			t.Errorf("Get(%q) = (%v, %v), want (%v, %v)", tc.Key, got, found, tc.Want, tc.Found)
		}
	}

	if got, want := view.Len(), 3; got != want {
		t.Errorf("Len() = %v, want %v", got, want)
	}
}

func TestViewEnumeration(t *testing.T) {
	view := tiered.New(
		map[string]int{"a": 1, "b": 2},
		map[string]int{"b": 99, "c": 3},
	)

	if diff := cmp.Diff(map[string]int{"a": 1, "b": 2, "c": 3}, maps.Collect(view.All())); diff != "" {
		t.Errorf("All() mismatch (-want+got):\n%v", diff)
	}

	keys := slices.Sorted(view.Keys())
	if diff := cmp.Diff([]string{"a", "b", "c"}, keys); diff != "" {
		t.Errorf("Keys() mismatch (-want+got):\n%v", diff)
	}
}

func TestViewEmpty(t *testing.T) {
	var view tiered.View[string, int]
	if view.Has("a") {
		t.Errorf("zero view reports a key")
	}
	if got, want := view.Len(), 0; got != want {
		t.Errorf("Len() = %v, want %v", got, want)
	}

	view = tiered.New[string, int](nil, map[string]int{})
	if got, want := len(view.Collect()), 0; got != want {
		t.Errorf("Collect() has %v entries, want %v", got, want)
	}
}
