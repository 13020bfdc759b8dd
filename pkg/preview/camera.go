package preview

import (
	"math"

	"github.com/mastercraft/stlmass/pkg/geometry"
)

// camera is a fixed perspective camera aimed at a model's bounding box.
type camera struct {
	position geometry.Vector3
	target   geometry.Vector3
	up       geometry.Vector3
	fov      float64
	distance float64
}

// newCamera places the camera on an oblique three-quarter view of the
// bounding box, far enough back to frame the whole model.
func newCamera(bbox geometry.BoundingBox) *camera {
	center := bbox.Center()
	size := bbox.Size()
	distance := math.Max(size.X, math.Max(size.Y, size.Z)) * 2.5
	// An empty model has an inverted bounding box; fall back to a sane
	// distance so the camera math stays finite.
	if distance <= 0 || math.IsInf(distance, 1) {
		distance = 1
	}

	// Spherical offset: slightly above and to the side.
	elevation := 0.5
	azimuth := 0.7
	offset := geometry.NewVector3(
		distance*math.Cos(elevation)*math.Sin(azimuth),
		distance*math.Sin(elevation),
		distance*math.Cos(elevation)*math.Cos(azimuth),
	)

	return &camera{
		position: center.Add(offset),
		target:   center,
		up:       geometry.NewVector3(0, 1, 0),
		fov:      math.Pi / 4,
		distance: distance,
	}
}

// project maps a world-space point to screen coordinates plus a view
// depth used for the z-buffer.
func (c *camera) project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	forward := c.target.Sub(c.position).Normalize()
	right := forward.Cross(c.up).Normalize()
	up := right.Cross(forward).Normalize()

	relative := point.Sub(c.position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)

	if z <= 0.01 {
		z = 0.01 // behind or at the eye; avoid dividing by zero
	}

	aspect := width / height
	fovScale := math.Tan(c.fov / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-y/(z*fovScale))*(height/2) + (height / 2)

	return screenX, screenY, z
}
