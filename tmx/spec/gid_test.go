package spec_test

import (
	"testing"

	"github.com/eak1mov/go-libtmx/tmx/spec"
)

func TestGIDPacking(t *testing.T) {
	for _, tc := range []struct {
		Name string
		Raw  spec.GID
		Bare uint32
		Flip spec.Flip
	}{
		{Name: "Plain", Raw: 42, Bare: 42, Flip: 0},
		{Name: "Horizontal", Raw: 0x80000001, Bare: 1, Flip: spec.FlippedHorizontally},
		{Name: "Vertical", Raw: 0x40000001, Bare: 1, Flip: spec.FlippedVertically},
		{Name: "Diagonal", Raw: 0x20000001, Bare: 1, Flip: spec.FlippedDiagonally},
		{Name: "All", Raw: 0xE0000007, Bare: 7,
			Flip: spec.FlippedHorizontally | spec.FlippedVertically | spec.FlippedDiagonally},
		{Name: "Zero", Raw: 0, Bare: 0, Flip: 0},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			if got, want := tc.Raw.Bare(), tc.Bare; got != want {
				t.Errorf("Bare() = %v, want %v", got, want)
			}
			if got, want := tc.Raw.Flips(), tc.Flip; got != want {
				t.Errorf("Flips() = %v, want %v", got, want)
			}
			if got, want := spec.WithFlips(tc.Bare, tc.Flip), tc.Raw; got != want {
				t.Errorf("WithFlips(%v, %v) = %v, want %v", tc.Bare, tc.Flip, got, want)
			}
		})
	}
}
