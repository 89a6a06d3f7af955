package curve

import (
	gomath "math"
	"testing"
)

func TestTrefoilKnownPoints(t *testing.T) {
	tr := Trefoil{}

	p := tr.Position(0)
	if p.X != 0 || p.Y != -1 || p.Z != 0 {
		t.Errorf("Position(0) = %v, want (0, -1, 0)", p)
	}
	d := tr.Tangent(0)
	if d.X != 5 || d.Y != 0 || d.Z != -3 {
		t.Errorf("Tangent(0) = %v, want (5, 0, -3)", d)
	}
}

func TestTrefoilPeriodic(t *testing.T) {
	tr := Trefoil{}
	for _, tt := range []float64{0.1, 1, 2.5, 4} {
		a := tr.Position(tt)
		b := tr.Position(tt + Tau)
		if a.Distance(b) > 1e-5 {
			t.Errorf("Position(%v) = %v, Position(%v+Tau) = %v", tt, a, tt, b)
		}
	}
}

func TestTrefoilTangentIsDerivative(t *testing.T) {
	tr := Trefoil{}
	const h = 1e-4
	for i := 0; i < 12; i++ {
		tt := Param(i, 12)
		a := tr.Position(tt - h)
		b := tr.Position(tt + h)
		numeric := b.Sub(a).Scale(1 / (2 * h))
		if d := numeric.Distance(tr.Tangent(tt)); d > 1e-2 {
			t.Errorf("t=%v: numeric derivative %v, Tangent %v", tt, numeric, tr.Tangent(tt))
		}
	}
}

func TestTrefoilTangentNeverVanishes(t *testing.T) {
	tr := Trefoil{}
	for i := 0; i < 1000; i++ {
		if l := tr.Tangent(Param(i, 1000)).Length(); l < 1 {
			t.Fatalf("slice %d: tangent length %v", i, l)
		}
	}
}

func TestCircle(t *testing.T) {
	c := Circle{Radius: 2}
	p := c.Position(Tau / 4)
	if gomath.Abs(float64(p.X)) > 1e-6 || p.Y != 2 || p.Z != 0 {
		t.Errorf("Position(Tau/4) = %v, want (0, 2, 0)", p)
	}
	d := c.Tangent(0)
	if d.X != 0 || d.Y != 1 || d.Z != 0 {
		t.Errorf("Tangent(0) = %v, want (0, 1, 0)", d)
	}
}

func TestParam(t *testing.T) {
	if got := Param(0, 100); got != 0 {
		t.Errorf("Param(0, 100) = %v", got)
	}
	if got := Param(25, 100); gomath.Abs(got-Tau/4) > 1e-12 {
		t.Errorf("Param(25, 100) = %v, want %v", got, Tau/4)
	}
}
