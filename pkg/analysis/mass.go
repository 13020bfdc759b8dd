package analysis

import (
	"fmt"
	"math"

	"github.com/mastercraft/stlmass/pkg/stl"
)

// STL geometry is conventionally in millimeters; densities are g/cm³.
const mm3PerCm3 = 1000.0

// DensityError reports a negative material density.
type DensityError struct {
	Density float64
}

func (e *DensityError) Error() string {
	return fmt.Sprintf("invalid material density %g: must be non-negative", e.Density)
}

// MassEstimate is the result of estimating a model's physical mass.
// Volume and mass keep the sign produced by the facet winding: a mesh
// wound inside-out yields negative values, which callers can use to
// detect bad winding. Use the Abs accessors for unsigned reporting.
type MassEstimate struct {
	VolumeCm3 float64
	MassGrams float64
	Density   float64
	Triangles int
}

// AbsVolumeCm3 returns the volume magnitude in cm³
func (e *MassEstimate) AbsVolumeCm3() float64 {
	return math.Abs(e.VolumeCm3)
}

// AbsMassGrams returns the mass magnitude in grams
func (e *MassEstimate) AbsMassGrams() float64 {
	return math.Abs(e.MassGrams)
}

// MeshVolume returns the signed enclosed volume of the model in the
// mesh's native cubic units (mm³). It is the sum of per-facet signed
// tetrahedron volumes; for a closed, consistently outward-wound mesh
// this equals the true enclosed volume. The result is meaningless, but
// not an error, for open or inconsistently wound meshes.
func MeshVolume(model *stl.Model) float64 {
	total := 0.0
	for _, triangle := range model.Triangles {
		total += triangle.SignedVolume()
	}
	return total
}

// EstimateMass computes the model's enclosed volume in cm³ and its mass
// given a material density in g/cm³. A negative density fails with a
// *DensityError. An empty model is valid and yields exactly zero volume
// and mass.
func EstimateMass(model *stl.Model, density float64) (*MassEstimate, error) {
	if density < 0 {
		return nil, &DensityError{Density: density}
	}

	volume := MeshVolume(model) / mm3PerCm3
	return &MassEstimate{
		VolumeCm3: volume,
		MassGrams: volume * density,
		Density:   density,
		Triangles: model.TriangleCount(),
	}, nil
}
