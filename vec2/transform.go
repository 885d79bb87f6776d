// Copyright © 2026 chrona-physics Contributors
// Use is governed by a BSD-style license found in the LICENSE file.

package vec2

import "math"

// Transform is a 2x3 affine transform: two linear columns A, B and a
// translation column P. Applying Transform to a point v computes
// A*v.X + B*v.Y + P; applying it to a direction omits P.
//
// Transform supports the same family of operations as V2 -- addition,
// scalar scale, composition, inversion, linear interpolation -- so that
// Trajectory (physics/trajectory.go) can treat "base + (t-anchor)*motion" as ordinary
// arithmetic over Transform values.
type Transform struct {
	A V2
	B V2
	P V2
}

// Identity returns the transform that leaves points and directions unchanged.
func Identity() Transform {
	return Transform{A: V2{X: 1}, B: V2{Y: 1}}
}

// Zero returns the all-zero transform, useful as a "no motion" value.
func Zero() Transform { return Transform{} }

// Rotate returns a pure-rotation transform for the given angle in radians.
func Rotate(radians float64) Transform {
	c, s := math.Cos(radians), math.Sin(radians)
	return Transform{A: V2{c, s}, B: V2{-s, c}}
}

// ScaleBy returns a pure-scale transform with the given X/Y factors.
func ScaleBy(sx, sy float64) Transform {
	return Transform{A: V2{X: sx}, B: V2{Y: sy}}
}

// Translate returns a pure-translation transform.
func Translate(p V2) Transform {
	return Transform{A: V2{X: 1}, B: V2{Y: 1}, P: p}
}

// Apply applies the transform to point v: A*v.X + B*v.Y + P.
func (t Transform) Apply(v V2) V2 {
	return V2{
		X: t.A.X*v.X + t.B.X*v.Y + t.P.X,
		Y: t.A.Y*v.X + t.B.Y*v.Y + t.P.Y,
	}
}

// ApplyAffine applies the linear part of the transform to direction v,
// omitting the translation column P.
func (t Transform) ApplyAffine(v V2) V2 {
	return V2{
		X: t.A.X*v.X + t.B.X*v.Y,
		Y: t.A.Y*v.X + t.B.Y*v.Y,
	}
}

// Add (+) returns the componentwise sum of t and o across all six fields.
func (t Transform) Add(o Transform) Transform {
	return Transform{A: t.A.Add(o.A), B: t.B.Add(o.B), P: t.P.Add(o.P)}
}

// Sub (-) returns the componentwise difference t-o across all six fields.
func (t Transform) Sub(o Transform) Transform {
	return Transform{A: t.A.Sub(o.A), B: t.B.Sub(o.B), P: t.P.Sub(o.P)}
}

// Scale returns t with every field scaled by s.
func (t Transform) Scale(s float64) Transform {
	return Transform{A: t.A.Scale(s), B: t.B.Scale(s), P: t.P.Scale(s)}
}

// AddScaled returns t + o*s, a fused multiply-add used by Trajectory to
// advance base by motion*dt without an intermediate allocation.
func (t Transform) AddScaled(o Transform, s float64) Transform {
	return Transform{
		A: t.A.Add(o.A.Scale(s)),
		B: t.B.Add(o.B.Scale(s)),
		P: t.P.Add(o.P.Scale(s)),
	}
}

// Append composes t and o such that t is applied first: result = o∘t.
// Equivalently, (t.Append(o)).Apply(v) == o.Apply(t.Apply(v)).
func (t Transform) Append(o Transform) Transform {
	return Transform{
		A: o.ApplyAffine(t.A),
		B: o.ApplyAffine(t.B),
		P: o.Apply(t.P),
	}
}

// Det returns the determinant of the linear part of the transform.
func (t Transform) Det() float64 { return t.A.X*t.B.Y - t.A.Y*t.B.X }

// Invert returns the inverse transform, or the identity transform if t's
// linear part is singular (determinant within Epsilon of zero).
func (t Transform) Invert() Transform {
	det := t.Det()
	if math.Abs(det) < Epsilon {
		return Identity()
	}
	inv := 1 / det
	ia := V2{t.B.Y * inv, -t.A.Y * inv}
	ib := V2{-t.B.X * inv, t.A.X * inv}
	inverted := Transform{A: ia, B: ib}
	inverted.P = inverted.ApplyAffine(t.P).Neg()
	return inverted
}

// Lerp returns the linear interpolation from t to o by ratio r.
func (t Transform) Lerp(o Transform, r float64) Transform {
	return Transform{A: t.A.Lerp(o.A, r), B: t.B.Lerp(o.B, r), P: t.P.Lerp(o.P, r)}
}

// Aeq (~=) almost-equals returns true if every field of t is within Epsilon
// of the corresponding field of o.
func (t Transform) Aeq(o Transform) bool {
	return t.A.Aeq(o.A) && t.B.Aeq(o.B) && t.P.Aeq(o.P)
}
