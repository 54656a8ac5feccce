// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import "testing"

func TestVec2_Arithmetic(t *testing.T) {
	a, b := V2(3, 4), V2(1, -2)

	if got := a.Add(b); got != V2(4, 2) {
		t.Errorf("Add() = %v, want (4,2)", got)
	}
	if got := a.Sub(b); got != V2(2, 6) {
		t.Errorf("Sub() = %v, want (2,6)", got)
	}
	if got := a.Mul(2); got != V2(6, 8) {
		t.Errorf("Mul() = %v, want (6,8)", got)
	}
	if got := a.Neg(); got != V2(-3, -4) {
		t.Errorf("Neg() = %v, want (-3,-4)", got)
	}
	if got := a.Length(); got != 5 {
		t.Errorf("Length() = %v, want 5", got)
	}
}

func TestVec2_Normalize(t *testing.T) {
	tests := []struct {
		name string
		v    Vec2
		want Vec2
	}{
		{"axis", V2(0, 7), V2(0, 1)},
		{"diagonal", V2(3, 4), V2(0.6, 0.8)},
		{"zero", Vec2{}, Vec2{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Normalize()
			if absDiff(got.X, tt.want.X) > 1e-6 || absDiff(got.Y, tt.want.Y) > 1e-6 {
				t.Errorf("Normalize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec2_Perp(t *testing.T) {
	if got := V2(1, 0).Perp(); got != V2(0, 1) {
		t.Errorf("Perp((1,0)) = %v, want (0,1)", got)
	}
	if got := V2(2, 3).Perp(); got != V2(-3, 2) {
		t.Errorf("Perp((2,3)) = %v, want (-3,2)", got)
	}
}

func TestSnap(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{1.5, 2},
		{-0.5, 0},
		{-0.51, -1},
		{-1.5, -1},
	}
	for _, tt := range tests {
		if got := snap(tt.in); got != tt.want {
			t.Errorf("snap(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := V2(1.4, 2.6).Snap(); got != V2(1, 3) {
		t.Errorf("Snap() = %v, want (1,3)", got)
	}
}

func TestRect(t *testing.T) {
	r := R(10, 20, 30, 40)
	if r.Position() != V2(10, 20) {
		t.Errorf("Position() = %v", r.Position())
	}
	if r.Size() != V2(30, 40) {
		t.Errorf("Size() = %v", r.Size())
	}
	if r.Max() != V2(40, 60) {
		t.Errorf("Max() = %v", r.Max())
	}
	if r.IsZero() {
		t.Error("IsZero() = true for non-zero rect")
	}
	if !(Rect{}).IsZero() {
		t.Error("IsZero() = false for zero rect")
	}
}
