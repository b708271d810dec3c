package math3d

import "math"

// collinearEpsilon is the relative residual below which two vectors are
// treated as parallel.
const collinearEpsilon = 1e-12

// Radians converts an angle in degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// ProjectOnto returns the component of v parallel to onto:
//
//	(v·onto / onto·onto) onto
//
// onto must be non-zero.
func ProjectOnto(v, onto Vec3) (Vec3, error) {
	d := onto.LenSq()
	if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return Vec3{}, degenerate("project", "target vector has no direction")
	}
	return onto.Scale(v.Dot(onto) / d), nil
}

// RotateToward rotates v by degrees inside the plane spanned by v and
// toward, turning it in the direction of toward. The result keeps |v|.
//
// The plane basis is built with Gram-Schmidt: e1 is v normalized and e2 is
// the part of toward orthogonal to e1, normalized. v and toward must be
// linearly independent.
func RotateToward(v, toward Vec3, degrees float64) (Vec3, error) {
	e1, err := v.Unit()
	if err != nil {
		return Vec3{}, degenerate("rotate toward", "rotated vector is zero")
	}

	u2 := toward.Sub(e1.Scale(toward.Dot(e1)))
	if u2.Len() <= collinearEpsilon*toward.Len() {
		return Vec3{}, degenerate("rotate toward", "vectors are collinear")
	}
	e2, err := u2.Unit()
	if err != nil {
		return Vec3{}, degenerate("rotate toward", "vectors are collinear")
	}

	rad := Radians(degrees)
	m := v.Len()
	return e1.Scale(m * math.Cos(rad)).Add(e2.Scale(m * math.Sin(rad))), nil
}

// RotateAround rotates v by degrees about axis (right-hand rule).
//
// v is split into the part parallel to axis, which is kept, and the
// perpendicular part, which turns in the plane spanned by itself and
// axis × perpendicular. v must not be parallel to axis.
func RotateAround(v, axis Vec3, degrees float64) (Vec3, error) {
	parallel, err := ProjectOnto(v, axis)
	if err != nil {
		return Vec3{}, degenerate("rotate around", "axis is zero")
	}

	perp := v.Sub(parallel)
	perpLen := perp.Len()
	if perpLen <= collinearEpsilon*v.Len() {
		return Vec3{}, degenerate("rotate around", "vector is parallel to axis")
	}

	w, err := axis.Cross(perp).Unit()
	if err != nil {
		return Vec3{}, degenerate("rotate around", "vector is parallel to axis")
	}

	rad := Radians(degrees)
	return parallel.
		Add(perp.Scale(math.Cos(rad))).
		Add(w.Scale(perpLen * math.Sin(rad))), nil
}
