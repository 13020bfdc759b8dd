package geometry

// Triangle is a triangular facet given by its three vertices in winding
// order. The order is significant: it encodes which side of the face is
// "outside" and therefore the sign of the facet's volume contribution.
// A Triangle is a plain value; it carries no stored normal.
type Triangle struct {
	P1, P2, P3 Vector3
}

// NewTriangle creates a triangle from three vertices in winding order
func NewTriangle(p1, p2, p3 Vector3) Triangle {
	return Triangle{P1: p1, P2: p2, P3: p3}
}

// Normal derives the unit face normal from the winding order
// (right-hand rule around P1→P2→P3).
func (t Triangle) Normal() Vector3 {
	edge1 := t.P2.Sub(t.P1)
	edge2 := t.P3.Sub(t.P1)
	return edge1.Cross(edge2).Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	edge1 := t.P2.Sub(t.P1)
	edge2 := t.P3.Sub(t.P1)
	return edge1.Cross(edge2).Length() / 2.0
}

// Centroid returns the center point of the triangle
func (t Triangle) Centroid() Vector3 {
	return Vector3{
		X: (t.P1.X + t.P2.X + t.P3.X) / 3.0,
		Y: (t.P1.Y + t.P2.Y + t.P3.Y) / 3.0,
		Z: (t.P1.Z + t.P2.Z + t.P3.Z) / 3.0,
	}
}

// EdgeLengths returns the lengths of the three edges
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.P1.Distance(t.P2),
		t.P2.Distance(t.P3),
		t.P3.Distance(t.P1),
	}
}

// SignedVolume returns the signed volume of the tetrahedron spanned by
// the origin and the triangle. This is the scalar triple product
// P1·(P2×P3) divided by 6; the sign follows the winding order. Summed
// over every facet of a closed, consistently wound surface the origin
// terms cancel and the total equals the enclosed volume, regardless of
// where the origin sits relative to the solid.
func (t Triangle) SignedVolume() float64 {
	v321 := t.P3.X * t.P2.Y * t.P1.Z
	v231 := t.P2.X * t.P3.Y * t.P1.Z
	v312 := t.P3.X * t.P1.Y * t.P2.Z
	v132 := t.P1.X * t.P3.Y * t.P2.Z
	v213 := t.P2.X * t.P1.Y * t.P3.Z
	v123 := t.P1.X * t.P2.Y * t.P3.Z
	return (1.0 / 6.0) * (-v321 + v231 + v312 - v132 - v213 + v123)
}
