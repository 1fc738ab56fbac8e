// Package annotate draws query results onto an image of the screen region
// they were found in.
package annotate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mj1618/axquery/internal/model"
)

var (
	BoxColor     = color.RGBA{R: 255, G: 40, B: 40, A: 255}
	LabelColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	LabelBgColor = color.RGBA{R: 200, G: 0, B: 0, A: 255}
)

const (
	glyphW = 7
	glyphH = 13
)

// Draw outlines each element and labels it with its result number. origin
// is the screen rectangle [x, y, w, h] in points that img shows; element
// bounds are converted from screen points to image pixels, which accounts
// for Retina captures.
func Draw(img image.Image, origin [4]int, elements []model.Element) *image.RGBA {
	rgba := toRGBA(img)
	sx, sy := pointScale(img.Bounds(), origin)

	for _, el := range elements {
		b := el.Bounds
		r := image.Rect(
			int(float64(b[0]-origin[0])*sx),
			int(float64(b[1]-origin[1])*sy),
			int(float64(b[0]-origin[0]+b[2])*sx),
			int(float64(b[1]-origin[1]+b[3])*sy),
		).Add(rgba.Bounds().Min)
		outline(rgba, r, BoxColor, 2)
		label(rgba, fmt.Sprintf("%d", el.ID), r.Min)
	}
	return rgba
}

// Scale resamples img by factor with Catmull-Rom interpolation.
func Scale(img image.Image, factor float64) image.Image {
	if factor <= 0 || factor == 1 {
		return img
	}
	src := img.Bounds()
	w := max(1, int(float64(src.Dx())*factor))
	h := max(1, int(float64(src.Dy())*factor))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, src, xdraw.Over, nil)
	return dst
}

func pointScale(bounds image.Rectangle, origin [4]int) (float64, float64) {
	sx, sy := 1.0, 1.0
	if origin[2] > 0 {
		sx = float64(bounds.Dx()) / float64(origin[2])
	}
	if origin[3] > 0 {
		sy = float64(bounds.Dy()) / float64(origin[3])
	}
	return sx, sy
}

func toRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// outline draws a rectangle border of the given thickness, clipped to img.
func outline(img *image.RGBA, r image.Rectangle, c color.Color, thickness int) {
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness),
		image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y),
		image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(img, e.Intersect(img.Bounds()), src, image.Point{}, draw.Src)
	}
}

// label draws text on a filled tag whose top-left corner sits at at.
func label(img *image.RGBA, text string, at image.Point) {
	tag := image.Rect(at.X, at.Y, at.X+len(text)*glyphW+4, at.Y+glyphH+2)
	draw.Draw(img, tag.Intersect(img.Bounds()), image.NewUniform(LabelBgColor), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(LabelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(at.X+2, at.Y+basicfont.Face7x13.Ascent+1),
	}
	d.DrawString(text)
}
