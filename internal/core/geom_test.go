package core

import (
	"math"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "fractional overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9.5, 9.5, 10, 10),
			expected: true,
		},
		{
			name:     "empty rect never intersects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 0, 3),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestRectContainsRect(t *testing.T) {
	outer := NewRect(0, 0, 100, 50)

	tests := []struct {
		name     string
		inner    Rect
		expected bool
	}{
		{"fully inside", NewRect(10, 10, 20, 20), true},
		{"same rect", outer, true},
		{"touching right edge", NewRect(80, 10, 20, 20), true},
		{"crossing right edge", NewRect(90, 10, 20, 20), false},
		{"crossing top edge", NewRect(10, -5, 20, 20), false},
		{"outside", NewRect(200, 200, 5, 5), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := outer.ContainsRect(tc.inner); got != tc.expected {
				t.Errorf("ContainsRect(%+v) = %v, expected %v", tc.inner, got, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.MaxX() != 25 {
		t.Errorf("MaxX() = %v, expected 25", r.MaxX())
	}
	if r.MaxY() != 25 {
		t.Errorf("MaxY() = %v, expected 25", r.MaxY())
	}

	c := r.Center()
	if c.X != 15 || c.Y != 17.5 {
		t.Errorf("Center() = %+v, expected (15, 17.5)", c)
	}

	moved := r.WithCenter(V(0, 0))
	if moved.X != -10 || moved.Y != -7.5 || moved.W != 20 || moved.H != 15 {
		t.Errorf("WithCenter() = %+v", moved)
	}

	inset := r.Inset(5, 0)
	if inset.X != 10 || inset.W != 10 || inset.Y != 10 || inset.H != 15 {
		t.Errorf("Inset() = %+v", inset)
	}
}

func TestVecArithmetic(t *testing.T) {
	a := V(3, 4)
	if a.Len() != 5 {
		t.Errorf("Len() = %v, expected 5", a.Len())
	}
	if got := a.Add(V(1, 1)); got != V(4, 5) {
		t.Errorf("Add() = %+v", got)
	}
	if got := a.Sub(V(1, 1)); got != V(2, 3) {
		t.Errorf("Sub() = %+v", got)
	}
	if got := a.Scale(2); got != V(6, 8) {
		t.Errorf("Scale() = %+v", got)
	}
	if got := a.Neg(); got != V(-3, -4) {
		t.Errorf("Neg() = %+v", got)
	}
	if got := a.Dot(V(2, -1)); got != 2 {
		t.Errorf("Dot() = %v, expected 2", got)
	}
	if got := a.R2(); got.X != 3 || got.Y != 4 {
		t.Errorf("R2() = %+v", got)
	}
}

func TestRectBox(t *testing.T) {
	r := NewRect(10, 20, 30, 40)
	b := r.Box()

	if b.Min.X != 10 || b.Min.Y != 20 || b.Max.X != 40 || b.Max.Y != 60 {
		t.Errorf("Box() = %+v", b)
	}
	if c := b.Center(); c.X != r.MidX() || c.Y != r.MidY() {
		t.Errorf("Box().Center() = %+v, expected %+v", c, r.Center())
	}
	if !b.Contains(r.Center().R2()) {
		t.Error("Box() should contain the rect centre")
	}
}

func TestVecAngles(t *testing.T) {
	tests := []struct {
		deg float64
	}{
		{0}, {45}, {90}, {210}, {270}, {330}, {359},
	}

	for _, tc := range tests {
		v := FromAngle(Radians(tc.deg), 10)
		if math.Abs(v.Len()-10) > 1e-9 {
			t.Errorf("FromAngle(%v) magnitude = %v, expected 10", tc.deg, v.Len())
		}
		if math.Abs(v.AngleDegrees()-tc.deg) > 1e-9 {
			t.Errorf("AngleDegrees() = %v, expected %v", v.AngleDegrees(), tc.deg)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
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
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
