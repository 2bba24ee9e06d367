package icons

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const (
	// kappa places cubic control points for a quarter ellipse.
	kappa = 0.5522847498
	// capitals of basicfont.Face7x13 are 9 pixels tall
	capHeight = 9
)

type canvas struct {
	img *image.RGBA
}

func newCanvas(w, h int, bg color.Color) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	return &canvas{img: img}
}

func (c *canvas) fill(z *vector.Rasterizer, col color.Color) {
	z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

func (c *canvas) rasterizer() *vector.Rasterizer {
	b := c.img.Bounds()
	return vector.NewRasterizer(b.Dx(), b.Dy())
}

type point struct{ x, y float64 }

func rotate(p point, sin, cos float64) point {
	return point{p.x*cos - p.y*sin, p.x*sin + p.y*cos}
}

// ellipse fills an ellipse centred on (cx, cy), rotated by deg degrees.
func (c *canvas) ellipse(cx, cy, rx, ry, deg float64, col color.Color) {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	at := func(x, y float64) (float32, float32) {
		p := rotate(point{x, y}, sin, cos)
		return float32(cx + p.x), float32(cy + p.y)
	}

	kx, ky := rx*kappa, ry*kappa

	z := c.rasterizer()
	z.MoveTo(at(rx, 0))
	cubeTo(z, at, rx, ky, kx, ry, 0, ry)
	cubeTo(z, at, -kx, ry, -rx, ky, -rx, 0)
	cubeTo(z, at, -rx, -ky, -kx, -ry, 0, -ry)
	cubeTo(z, at, kx, -ry, rx, -ky, rx, 0)
	z.ClosePath()

	c.fill(z, col)
}

func cubeTo(z *vector.Rasterizer, at func(x, y float64) (float32, float32), x1, y1, x2, y2, x3, y3 float64) {
	ax, ay := at(x1, y1)
	bx, by := at(x2, y2)
	cx, cy := at(x3, y3)
	z.CubeTo(ax, ay, bx, by, cx, cy)
}

func (c *canvas) circle(cx, cy, r float64, col color.Color) {
	c.ellipse(cx, cy, r, r, 0, col)
}

// line strokes a straight segment with butt ends.
func (c *canvas) line(x0, y0, x1, y1, width float64, col color.Color) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 || width <= 0 {
		return
	}

	nx, ny := -dy/l*width/2, dx/l*width/2

	z := c.rasterizer()
	z.MoveTo(float32(x0+nx), float32(y0+ny))
	z.LineTo(float32(x1+nx), float32(y1+ny))
	z.LineTo(float32(x1-nx), float32(y1-ny))
	z.LineTo(float32(x0-nx), float32(y0-ny))
	z.ClosePath()

	c.fill(z, col)
}

// rect fills an axis aligned rectangle with corner radius r.
func (c *canvas) rect(x, y, w, h, r float64, col color.Color) {
	r = math.Min(r, math.Min(w, h)/2)
	k := r * (1 - kappa)

	z := c.rasterizer()
	z.MoveTo(float32(x+r), float32(y))
	z.LineTo(float32(x+w-r), float32(y))
	if r > 0 {
		z.CubeTo(float32(x+w-k), float32(y), float32(x+w), float32(y+k), float32(x+w), float32(y+r))
	}
	z.LineTo(float32(x+w), float32(y+h-r))
	if r > 0 {
		z.CubeTo(float32(x+w), float32(y+h-k), float32(x+w-k), float32(y+h), float32(x+w-r), float32(y+h))
	}
	z.LineTo(float32(x+r), float32(y+h))
	if r > 0 {
		z.CubeTo(float32(x+k), float32(y+h), float32(x), float32(y+h-k), float32(x), float32(y+h-r))
	}
	z.LineTo(float32(x), float32(y+r))
	if r > 0 {
		z.CubeTo(float32(x), float32(y+k), float32(x+k), float32(y), float32(x+r), float32(y))
	}
	z.ClosePath()

	c.fill(z, col)
}

// text draws s centred on (cx, cy) with a cap height of roughly height
// pixels. The bitmap face is rendered once at its native size and scaled.
func (c *canvas) text(s string, cx, cy, height float64, bold bool, col color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{Face: face}

	w := d.MeasureString(s).Ceil() + 1
	ascent := face.Metrics().Ascent.Ceil()
	h := ascent + face.Metrics().Descent.Ceil()

	glyphs := image.NewRGBA(image.Rect(0, 0, w, h))
	d.Dst = glyphs
	d.Src = image.NewUniform(col)
	d.Dot = fixed.Point26_6{X: 0, Y: fixed.I(ascent)}
	d.DrawString(s)
	if bold {
		d.Dot = fixed.Point26_6{X: fixed.I(1), Y: fixed.I(ascent)}
		d.DrawString(s)
	}

	scale := height / capHeight
	dw, dh := float64(w)*scale, float64(h)*scale

	// centre the cap height, not the full line box
	top := cy - height/2 - float64(ascent-capHeight)*scale
	dst := image.Rect(
		int(math.Round(cx-dw/2)), int(math.Round(top)),
		int(math.Round(cx+dw/2)), int(math.Round(top+dh)),
	)

	draw.ApproxBiLinear.Scale(c.img, dst, glyphs, glyphs.Bounds(), draw.Over, nil)
}
