package icons

import (
	"image"
	"image/color"
)

var (
	ThemeColor  = color.RGBA{R: 0x19, G: 0x76, B: 0xd2, A: 0xff}
	AccentColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Background  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	LightGrey   = color.RGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
	InactiveDot = color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff}
)

const AppTitle = "NAK Chorleiter"

// RenderIcon draws the app icon: a theme circle inset by 15% carrying two
// beamed notes. Maskable icons keep a transparent background.
func RenderIcon(size int, maskable bool) *image.RGBA {
	bg := color.Color(Background)
	if maskable {
		bg = color.Transparent
	}

	c := newCanvas(size, size, bg)

	s := float64(size)
	margin := float64(int(s * 0.15))
	r := (s - 2*margin) / 2
	cx, cy := s/2, s/2

	c.circle(cx, cy, r, ThemeColor)
	drawNotes(c, cx, cy, r)

	return c.img
}

type noteLayout struct {
	head1, head2   point
	headRX, headRY float64
	stem, beam     float64
	x1, x2         float64
	top1, top2     float64
}

// layoutNotes places a pair of eighth notes joined by a beam inside the
// circle of radius r around (cx, cy).
func layoutNotes(cx, cy, r float64) noteLayout {
	l := noteLayout{
		head1:  point{cx - 0.38*r, cy + 0.35*r},
		head2:  point{cx + 0.32*r, cy + 0.2*r},
		headRX: 0.2 * r,
		headRY: 0.14 * r,
		stem:   0.08 * r,
		beam:   0.14 * r,
		top1:   cy - 0.45*r,
		top2:   cy - 0.6*r,
	}
	l.x1 = l.head1.x + l.headRX - l.stem/2
	l.x2 = l.head2.x + l.headRX - l.stem/2

	return l
}

func drawNotes(c *canvas, cx, cy, r float64) {
	l := layoutNotes(cx, cy, r)

	c.ellipse(l.head1.x, l.head1.y, l.headRX, l.headRY, -20, AccentColor)
	c.ellipse(l.head2.x, l.head2.y, l.headRX, l.headRY, -20, AccentColor)

	c.line(l.x1, l.head1.y, l.x1, l.top1, l.stem, AccentColor)
	c.line(l.x2, l.head2.y, l.x2, l.top2, l.stem, AccentColor)

	c.line(l.x1-l.stem/2, l.top1+l.beam/2, l.x2+l.stem/2, l.top2+l.beam/2, l.beam, AccentColor)
}

// RenderShortcut draws a shortcut icon: a theme circle inset by 10% on a
// tinted background with a single bold letter.
func RenderShortcut(size int, bg color.Color, letter string) *image.RGBA {
	c := newCanvas(size, size, bg)

	s := float64(size)
	margin := float64(int(s * 0.1))
	r := (s - 2*margin) / 2

	c.circle(s/2, s/2, r, ThemeColor)
	c.text(letter, s/2, s/2, s*0.35*0.7, true, AccentColor)

	return c.img
}

// RenderScreenshot draws a placeholder app screen: a header bar with the
// app title, three content rows and a footer navigation with three dots.
func RenderScreenshot(width, height int) *image.RGBA {
	c := newCanvas(width, height, Background)

	w, h := float64(width), float64(height)

	c.rect(0, 0, w, h*0.1, 0, ThemeColor)
	c.text(AppTitle, w/2, h*0.05, h*0.06*0.7, true, AccentColor)

	for _, y := range []float64{0.15, 0.28, 0.41} {
		c.rect(w*0.05, h*y, w*0.9, h*0.08, 4, LightGrey)
	}

	c.rect(0, h*0.9, w, h*0.1, 0, LightGrey)
	for i, x := range []float64{0.2, 0.5, 0.8} {
		dot := color.Color(InactiveDot)
		if i == 0 {
			dot = ThemeColor
		}
		c.circle(w*x, h*0.95, h*0.03, dot)
	}

	return c.img
}
