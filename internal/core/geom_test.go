package core

import (
	"math"
	"testing"
)

func TestVec2Arithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, 1)

	if got := a.Add(b); got != V(4, 5) {
		t.Errorf("Add() = %v, expected (4, 5)", got)
	}
	if got := a.Sub(b); got != V(2, 3) {
		t.Errorf("Sub() = %v, expected (2, 3)", got)
	}
	if got := a.Scale(2); got != V(6, 8) {
		t.Errorf("Scale() = %v, expected (6, 8)", got)
	}
	if got := a.Len(); got != 5 {
		t.Errorf("Len() = %v, expected 5", got)
	}
	if got := V(0, 0).Dist(a); got != 5 {
		t.Errorf("Dist() = %v, expected 5", got)
	}
}

func TestVec2Toward(t *testing.T) {
	tests := []struct {
		name     string
		from, to Vec2
		expected Vec2
	}{
		{"right", V(0, 0), V(10, 0), V(1, 0)},
		{"down", V(5, 5), V(5, 9), V(0, 1)},
		{"same point", V(2, 2), V(2, 2), V(0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.from.Toward(tc.to)
			if got != tc.expected {
				t.Errorf("Toward() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestFromAngle(t *testing.T) {
	v := FromAngle(math.Pi/2, 10)
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y-10) > 1e-9 {
		t.Errorf("FromAngle(pi/2, 10) = %v, expected (0, 10)", v)
	}
	if a := V(0, 0).Angle(V(0, 1)); math.Abs(a-math.Pi/2) > 1e-9 {
		t.Errorf("Angle() = %v, expected pi/2", a)
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        Vec2
		sizeA    float64
		b        Vec2
		sizeB    float64
		expected bool
	}{
		{"same centre", V(0, 0), 10, V(0, 0), 10, true},
		{"touching", V(0, 0), 10, V(10, 0), 10, false},
		{"just inside", V(0, 0), 10, V(9.9, 0), 10, true},
		{"far apart", V(0, 0), 10, V(100, 100), 10, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.a, tc.sizeA, tc.b, tc.sizeB); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := Overlaps(tc.b, tc.sizeB, tc.a, tc.sizeA); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestCenteredRect(t *testing.T) {
	r := CenteredRect(80, 24, 40, 10)
	if r != NewRect(20, 7, 40, 10) {
		t.Errorf("CenteredRect() = %+v, expected {20 7 40 10}", r)
	}

	small := CenteredRect(20, 5, 40, 10)
	if small.W != 20 || small.H != 5 || small.X != 0 || small.Y != 0 {
		t.Errorf("CenteredRect() should shrink to fit, got %+v", small)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
		{3, 5, 1, 5}, // inverted range resolves to min
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
}
