package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    Vec3
		want Vec3
	}{
		{"translate", Translate(10, 20, 30), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(2, 2, 2), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"translate then scale", Translate(1, 0, 0).Mul(Scale(2, 2, 2)), Vec3{1, 1, 1}, Vec3{3, 2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformPoint(tt.p); got != tt.want {
				t.Errorf("TransformPoint: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(10, 20, 30)
	d := Vec3{0, 1, 0}
	if got := m.TransformDirection(d); got != d {
		t.Errorf("TransformDirection: got %v, want %v", got, d)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	result := m.TransformPoint(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateZQuarterTurn(t *testing.T) {
	p := RotateZ(float32(0.5 * 3.14159265358979)).TransformDirection(Vec3{1, 0, 0})
	if abs(p.X) > 1e-6 || abs(p.Y-1) > 1e-6 || abs(p.Z) > 1e-6 {
		t.Errorf("RotateZ 90: got %v, want (0, 1, 0)", p)
	}
}

func TestOrtho(t *testing.T) {
	m := Ortho(-4, 4, -4, 4, 1, 10)

	// Corners of the view volume map onto the NDC cube.
	p := m.TransformPoint(Vec3{4, -4, -1})
	if abs(p.X-1) > 1e-6 || abs(p.Y+1) > 1e-6 || abs(p.Z+1) > 1e-6 {
		t.Errorf("near corner: got %v, want (1, -1, -1)", p)
	}
	p = m.TransformPoint(Vec3{0, 0, -10})
	if abs(p.Z-1) > 1e-6 {
		t.Errorf("far plane: got z=%v, want 1", p.Z)
	}
}

func TestFromColumns(t *testing.T) {
	m := FromColumns(
		Vec4{1, 0, 0, 0},
		Vec4{0, 0, 1, 0},
		Vec4{0, -1, 0, 0},
		Vec4{5, 6, 7, 1},
	)

	if got := m.Column(3); got != (Vec4{5, 6, 7, 1}) {
		t.Errorf("Column(3) = %v", got)
	}
	// Local Y maps to world Z.
	if got := m.TransformDirection(Vec3{0, 1, 0}); got != (Vec3{0, 0, 1}) {
		t.Errorf("TransformDirection = %v, want (0, 0, 1)", got)
	}
	if got := m.TransformPoint(Vec3{0, 0, 0}); got != (Vec3{5, 6, 7}) {
		t.Errorf("TransformPoint(origin) = %v, want (5, 6, 7)", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
