package shapemodel

import "github.com/astroshaper/shapemodels-go/vector"

// epsDet is the determinant tolerance below which a ray is treated as
// parallel to a triangle's plane in the Moller-Trumbore test.
const epsDet = 1e-12

// epsHit is the hit-acceptance tolerance on the ray parameter t. It is
// chosen slightly positive so that a ray origin lying exactly on a
// triangle's plane is reported as a miss rather than a t=0 hit.
const epsHit = 1e-12

// Ray is a half-line: the set of points Origin + t*Direction for t >= 0.
// Direction need not be unit length; intersection routines report t in
// units of len(Direction) unless documented otherwise.
type Ray struct {
	Origin    vector.Vector
	Direction vector.Vector
}

// At returns the point Origin + t*Direction.
func (r Ray) At(t float64) vector.Vector {
	return r.Origin.Add(r.Direction.Scale(t))
}
