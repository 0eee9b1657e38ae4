package shapemodel

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/astroshaper/shapemodels-go/vector"
)

// EclipseStatus classifies the outcome of ApplyEclipseShadowing.
type EclipseStatus int

const (
	NoEclipse EclipseStatus = iota
	PartialEclipse
	TotalEclipse
)

func (s EclipseStatus) String() string {
	switch s {
	case NoEclipse:
		return "no eclipse"
	case PartialEclipse:
		return "partial eclipse"
	case TotalEclipse:
		return "total eclipse"
	default:
		return "unknown eclipse status"
	}
}

func toMgl(v vector.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) vector.Vector {
	return vector.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// ApplyEclipseShadowing mutates illuminated, the target mesh's per-face
// illumination bitset, turning off any face whose line of sight to the
// sun is blocked by occluder. rSun is the sun's position in target's
// frame; rTargetToOccluder is occluder's position in target's frame;
// rotTargetToOccluder maps direction vectors from target's frame into
// occluder's frame.
//
// len(illuminated) must equal target's face count, and occluder must have
// a BVH; both are checked before any per-face work begins.
func ApplyEclipseShadowing(
	illuminated []bool,
	target, occluder *Mesh,
	rSun, rTargetToOccluder vector.Vector,
	rotTargetToOccluder mgl64.Mat3,
) (EclipseStatus, error) {
	if len(illuminated) != target.FaceCount() {
		return NoEclipse, invalidArgumentf("illuminated has length %d, want %d", len(illuminated), target.FaceCount())
	}
	if occluder.bvh == nil {
		return NoEclipse, invalidArgumentf("eclipse shadowing requires the occluder to have a BVH; call BuildBVH on it first")
	}

	rSunHat := rSun.Unit()
	cOcc := rTargetToOccluder
	rhoOcc := MaximumRadius(occluder.Nodes)
	rhoIn := MinimumRadius(occluder.Nodes)

	bodyRay := Ray{Origin: vector.Vector{}, Direction: rSunHat}
	bodyHit := IntersectRaySphere(bodyRay, cOcc, rhoOcc)
	if !bodyHit.Hit {
		closestT := bodyRay.Direction.Dot(cOcc.Sub(bodyRay.Origin)) / bodyRay.Direction.Dot(bodyRay.Direction)
		if closestT < 0 {
			return NoEclipse, nil
		}
	}

	litBefore := 0
	changed := 0
	for i, lit := range illuminated {
		if !lit {
			continue
		}
		litBefore++

		ci := target.faceCenters[i]
		r := Ray{Origin: ci, Direction: rSunHat}

		outer := IntersectRaySphere(r, cOcc, rhoOcc)
		if !outer.Hit {
			continue
		}
		if outer.T2 < 0 {
			continue
		}
		closestT := r.Direction.Dot(cOcc.Sub(ci))
		if closestT < 0 {
			continue
		}

		inner := IntersectRaySphere(r, cOcc, rhoIn)
		if inner.Hit && inner.T2 > 0 {
			illuminated[i] = false
			changed++
			continue
		}

		occOrigin := fromMgl(rotTargetToOccluder.Mul3x1(toMgl(ci.Sub(rTargetToOccluder))))
		occDir := fromMgl(rotTargetToOccluder.Mul3x1(toMgl(rSunHat)))
		occRay := Ray{Origin: occOrigin, Direction: occDir}
		if occluder.bvh.anyHit(occRay, occluder, 1e308, -1) {
			illuminated[i] = false
			changed++
		}
	}

	switch {
	case changed == 0:
		return NoEclipse, nil
	case changed == litBefore:
		return TotalEclipse, nil
	default:
		return PartialEclipse, nil
	}
}
