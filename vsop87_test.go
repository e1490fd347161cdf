package orbitcast

import (
	"context"
	"testing"

	"github.com/gonum/floats"
)

func TestVSOP87Sun(t *testing.T) {
	src := NewVSOP87Source("")
	sv, err := src.StateVector(context.Background(), Sun, DefaultEpoch)
	if err != nil {
		t.Fatal(err)
	}
	if norm(sv.R) != 0 || norm(sv.V) != 0 {
		t.Fatalf("the Sun moved: %s", sv)
	}
}

func TestVSOP87Pluto(t *testing.T) {
	// Pluto goes through Meeus' dedicated theory, no VSOP87 data files needed.
	src := NewVSOP87Source("")
	sv, err := src.StateVector(context.Background(), Pluto, DefaultEpoch)
	if err != nil {
		t.Fatal(err)
	}
	r := norm(sv.R)
	if r < 29*AU || r > 50*AU {
		t.Fatalf("Pluto at %f AU", r/AU)
	}
	// The reconstructed velocity is vis-viva with Pluto's mean semi-major axis, so
	// deriving elements must give that axis back.
	o, err := NewElementsFromState(sv, Sun)
	if err != nil {
		t.Fatal(err)
	}
	a, e, _, _, _, _ := o.Elements()
	if !floats.EqualWithinRel(a, Pluto.SemiMajorAxis(), 1e-9) {
		t.Fatalf("a=%f, expected %f", a, Pluto.SemiMajorAxis())
	}
	if e >= 1 {
		t.Fatalf("unbound reconstruction e=%f", e)
	}
}

func TestVSOP87MissingData(t *testing.T) {
	src := NewVSOP87Source(t.TempDir())
	if _, err := src.StateVector(context.Background(), Earth, DefaultEpoch); err == nil {
		t.Fatal("expected an error without VSOP87 data files")
	}
}
