// Copyright © 2026 chrona-physics Contributors
// Use is governed by a BSD-style license found in the LICENSE file.

package vec2

import (
	"math"
	"testing"
)

// While the functions below are not complicated, they are foundational such
// that it is better to test each one of them than have the bugs discovered
// later from other code.

func TestV2Add(t *testing.T) {
	got := Pt(1, 2).Add(Pt(3, 4))
	if want := (V2{4, 6}); !got.Eq(want) {
		t.Errorf("Add() = %v, want %v", got, want)
	}
}

func TestV2Sub(t *testing.T) {
	got := Pt(3, 4).Sub(Pt(1, 2))
	if want := (V2{2, 2}); !got.Eq(want) {
		t.Errorf("Sub() = %v, want %v", got, want)
	}
}

func TestV2Scale(t *testing.T) {
	got := Pt(1, -2).Scale(3)
	if want := (V2{3, -6}); !got.Eq(want) {
		t.Errorf("Scale() = %v, want %v", got, want)
	}
}

func TestV2Dot(t *testing.T) {
	if got := Pt(1, 2).Dot(Pt(3, 4)); got != 11 {
		t.Errorf("Dot() = %v, want 11", got)
	}
}

func TestV2Cross(t *testing.T) {
	if got := Pt(1, 0).Cross(Pt(0, 1)); got != 1 {
		t.Errorf("Cross(x,y) = %v, want 1", got)
	}
	if got := Pt(0, 1).Cross(Pt(1, 0)); got != -1 {
		t.Errorf("Cross(y,x) = %v, want -1", got)
	}
}

func TestV2Len(t *testing.T) {
	if got := Pt(3, 4).Len(); got != 5 {
		t.Errorf("Len() = %v, want 5", got)
	}
	if got := Pt(3, 4).LenSqr(); got != 25 {
		t.Errorf("LenSqr() = %v, want 25", got)
	}
}

func TestV2Unit(t *testing.T) {
	got := Pt(3, 4).Unit()
	if want := (V2{0.6, 0.8}); !got.Aeq(want) {
		t.Errorf("Unit() = %v, want %v", got, want)
	}
	if got := (V2{}).Unit(); !got.Eq((V2{})) {
		t.Errorf("Unit() of zero vector = %v, want zero", got)
	}
}

func TestV2Perp(t *testing.T) {
	if got := Pt(1, 0).Perp(); !got.Eq(Pt(0, 1)) {
		t.Errorf("Perp() = %v, want (0,1)", got)
	}
	if got := Pt(1, 0).AntiPerp(); !got.Eq(Pt(0, -1)) {
		t.Errorf("AntiPerp() = %v, want (0,-1)", got)
	}
	// Perp and AntiPerp are inverses of one another.
	v := Pt(3, -2)
	if got := v.Perp().AntiPerp(); !got.Aeq(v) {
		t.Errorf("Perp().AntiPerp() = %v, want %v", got, v)
	}
}

func TestV2Project(t *testing.T) {
	got := Pt(3, 4).Project(Pt(1, 0))
	if got != 3 {
		t.Errorf("Project() = %v, want 3", got)
	}
}

func TestV2Lerp(t *testing.T) {
	got := Pt(0, 0).Lerp(Pt(10, 20), 0.5)
	if want := (V2{5, 10}); !got.Aeq(want) {
		t.Errorf("Lerp() = %v, want %v", got, want)
	}
}

func TestTransformIdentity(t *testing.T) {
	id := Identity()
	v := Pt(5, -3)
	if got := id.Apply(v); !got.Aeq(v) {
		t.Errorf("Identity().Apply(v) = %v, want %v", got, v)
	}
	if got := id.ApplyAffine(v); !got.Aeq(v) {
		t.Errorf("Identity().ApplyAffine(v) = %v, want %v", got, v)
	}
}

func TestTransformTranslate(t *testing.T) {
	tr := Translate(Pt(10, 20))
	v := Pt(1, 1)
	if got := tr.Apply(v); !got.Aeq(Pt(11, 21)) {
		t.Errorf("Translate.Apply(v) = %v, want (11,21)", got)
	}
	// Direction application ignores translation.
	if got := tr.ApplyAffine(v); !got.Aeq(v) {
		t.Errorf("Translate.ApplyAffine(v) = %v, want %v", got, v)
	}
}

func TestTransformRotate(t *testing.T) {
	tr := Rotate(math.Pi / 2)
	got := tr.Apply(Pt(1, 0))
	if want := (V2{0, 1}); !got.Aeq(want) {
		t.Errorf("Rotate(pi/2).Apply((1,0)) = %v, want %v", got, want)
	}
}

func TestTransformAppendOrder(t *testing.T) {
	// A is applied first, so Append composes such that T.Append(O) means
	// "apply T then O".
	moveThenRotate := Translate(Pt(1, 0)).Append(Rotate(math.Pi / 2))
	got := moveThenRotate.Apply(Pt(0, 0))
	if want := (V2{0, 1}); !got.Aeq(want) {
		t.Errorf("Translate.Append(Rotate).Apply(origin) = %v, want %v", got, want)
	}
}

func TestTransformInvert(t *testing.T) {
	tr := Translate(Pt(3, -2)).Append(Rotate(1.234))
	inv := tr.Invert()
	v := Pt(7, -9)
	got := inv.Apply(tr.Apply(v))
	if !got.Aeq(v) {
		t.Errorf("Invert round trip = %v, want %v", got, v)
	}
}

func TestTransformInvertSingular(t *testing.T) {
	// A transform with a zero linear part is singular; Invert must not panic
	// or divide by zero, returning identity instead.
	singular := Transform{}
	if got := singular.Invert(); !got.Aeq(Identity()) {
		t.Errorf("Invert() of singular transform = %v, want identity", got)
	}
}

func TestTransformAddScaled(t *testing.T) {
	base := Translate(Pt(0, 0))
	motion := Translate(Pt(2, 4))
	got := base.AddScaled(motion, 0.5)
	if want := (V2{1, 2}); !got.P.Aeq(want) {
		t.Errorf("AddScaled P = %v, want %v", got.P, want)
	}
}

func TestTransformLerp(t *testing.T) {
	a := Translate(Pt(0, 0))
	b := Translate(Pt(10, 0))
	got := a.Lerp(b, 0.25)
	if want := (V2{2.5, 0}); !got.P.Aeq(want) {
		t.Errorf("Lerp P = %v, want %v", got.P, want)
	}
}
