package analysis

import (
	"fmt"
	"math"

	"github.com/mastercraft/stlmass/pkg/geometry"
	"github.com/mastercraft/stlmass/pkg/stl"
)

// MeasurementResult contains various measurements of an STL model
type MeasurementResult struct {
	BoundingBox       geometry.BoundingBox
	Dimensions        geometry.Vector3
	EnclosedVolume    float64
	BoundingBoxVolume float64
	SurfaceArea       float64
	TriangleCount     int
	EdgeCount         int
	MinEdgeLength     float64
	MaxEdgeLength     float64
	AvgEdgeLength     float64
}

// AnalyzeModel computes the geometric summary of an STL model
func AnalyzeModel(model *stl.Model) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox:    model.BoundingBox(),
		SurfaceArea:    model.SurfaceArea(),
		TriangleCount:  model.TriangleCount(),
		EnclosedVolume: MeshVolume(model),
	}

	result.Dimensions = result.BoundingBox.Size()
	result.BoundingBoxVolume = result.BoundingBox.Volume()

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, triangle := range model.Triangles {
		for _, length := range triangle.EdgeLengths() {
			totalLength += length
			if length < minLength {
				minLength = length
			}
			if length > maxLength {
				maxLength = length
			}
		}
	}

	result.EdgeCount = 3 * result.TriangleCount
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
