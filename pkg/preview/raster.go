package preview

import (
	"image"
	"image/color"
	"math"
)

// vertex is a projected triangle corner: screen position plus view depth.
type vertex struct {
	x, y, z float64
}

// fillTriangle rasterizes a projected triangle with scanline fill and a
// z-buffer depth test.
func fillTriangle(img *image.RGBA, zbuffer []float64, v1, v2, v3 vertex, col color.RGBA) {
	// Sort by Y, top to bottom.
	if v1.y > v2.y {
		v1, v2 = v2, v1
	}
	if v2.y > v3.y {
		v2, v3 = v3, v2
	}
	if v1.y > v2.y {
		v1, v2 = v2, v1
	}

	bounds := img.Bounds()
	width := bounds.Max.X

	for y := int(math.Max(0, v1.y)); y <= int(math.Min(float64(bounds.Max.Y-1), v3.y)); y++ {
		fy := float64(y)

		var xStart, xEnd, zStart, zEnd float64
		foundStart := false
		foundEnd := false

		record := func(x, z float64) {
			if !foundStart {
				xStart, zStart = x, z
				foundStart = true
			} else {
				xEnd, zEnd = x, z
				foundEnd = true
			}
		}

		// Intersect the scanline with each edge.
		if v1.y != v2.y && fy >= v1.y && fy <= v2.y {
			t := (fy - v1.y) / (v2.y - v1.y)
			record(v1.x+t*(v2.x-v1.x), v1.z+t*(v2.z-v1.z))
		}
		if v2.y != v3.y && fy >= v2.y && fy <= v3.y {
			t := (fy - v2.y) / (v3.y - v2.y)
			record(v2.x+t*(v3.x-v2.x), v2.z+t*(v3.z-v2.z))
		}
		if v1.y != v3.y && fy >= v1.y && fy <= v3.y {
			t := (fy - v1.y) / (v3.y - v1.y)
			record(v1.x+t*(v3.x-v1.x), v1.z+t*(v3.z-v1.z))
		}

		if !foundStart || !foundEnd {
			continue
		}

		if xStart > xEnd {
			xStart, xEnd = xEnd, xStart
			zStart, zEnd = zEnd, zStart
		}

		xStartInt := int(math.Max(0, xStart))
		xEndInt := int(math.Min(float64(bounds.Max.X-1), xEnd))

		for x := xStartInt; x <= xEndInt; x++ {
			t := 0.0
			if xEnd != xStart {
				t = (float64(x) - xStart) / (xEnd - xStart)
			}
			z := zStart + t*(zEnd-zStart)

			idx := y*width + x
			if idx >= 0 && idx < len(zbuffer) && z < zbuffer[idx] {
				zbuffer[idx] = z
				img.SetRGBA(x, y, col)
			}
		}
	}
}
