// Package preview renders a decoded mesh to a PNG image: flat-shaded
// facets over a z-buffer, with a caption line. It replaces an
// interactive viewer for the upload workflow, where the client only
// needs a static picture of what was decoded.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mastercraft/stlmass/pkg/geometry"
	"github.com/mastercraft/stlmass/pkg/stl"
)

// Options controls the rendered image. Zero values take defaults.
type Options struct {
	Width   int
	Height  int
	Caption string
}

const (
	defaultWidth  = 640
	defaultHeight = 480
)

// Render draws the model into a new RGBA image.
func Render(model *stl.Model, opts Options) *image.RGBA {
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	height := opts.Height
	if height <= 0 {
		height = defaultHeight
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	zbuffer := make([]float64, width*height)
	for i := range zbuffer {
		zbuffer[i] = math.Inf(1)
	}

	cam := newCamera(model.BoundingBox())
	light := geometry.NewVector3(0.3, 0.6, 1).Normalize()

	for _, triangle := range model.Triangles {
		x1, y1, z1 := cam.project(triangle.P1, float64(width), float64(height))
		x2, y2, z2 := cam.project(triangle.P2, float64(width), float64(height))
		x3, y3, z3 := cam.project(triangle.P3, float64(width), float64(height))

		fillTriangle(img, zbuffer,
			vertex{x1, y1, z1},
			vertex{x2, y2, z2},
			vertex{x3, y3, z3},
			shade(triangle, light),
		)
	}

	caption := opts.Caption
	if caption == "" {
		caption = "STL Preview"
	}
	drawCaption(img, caption)

	return img
}

// WritePNG renders the model and writes it to path.
func WritePNG(model *stl.Model, path string, opts Options) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, Render(model, opts)); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return nil
}

// shade computes a flat-shaded facet color from the angle between the
// derived facet normal and the light direction. Facets facing away are
// not culled, just dimmed, so inverted meshes still show up.
func shade(triangle geometry.Triangle, light geometry.Vector3) color.RGBA {
	intensity := math.Abs(triangle.Normal().Dot(light))
	level := uint8(70 + intensity*160)
	return color.RGBA{R: level / 2, G: level / 2, B: level, A: 255}
}

// drawCaption writes the caption centered near the top of the image.
func drawCaption(img *image.RGBA, caption string) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, caption).Ceil()

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot: fixed.P(
			(img.Bounds().Dx()-width)/2,
			face.Metrics().Ascent.Ceil()+4,
		),
	}
	drawer.DrawString(caption)
}
