package icons

import (
	"fmt"
	"image/color"
	"text/template"

	"github.com/brogergvhs/choirscrape/internal/util"
)

var svgFuncs = template.FuncMap{
	"mul": func(a float64, b float64) float64 { return a * b },
	"hex": func(c color.RGBA) string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) },
}

var svgTemplates = template.Must(template.New("svg").Funcs(svgFuncs).Parse(`
{{- define "icon" -}}
<?xml version="1.0" encoding="UTF-8"?>
<svg width="{{.W}}" height="{{.H}}" viewBox="0 0 {{.W}} {{.H}}" xmlns="http://www.w3.org/2000/svg">
  {{- if not .Maskable}}
  <rect width="{{.W}}" height="{{.H}}" fill="white"/>
  {{- end}}
  <circle cx="{{mul .W 0.5}}" cy="{{mul .H 0.5}}" r="{{.R}}" fill="{{hex .Theme}}"/>
  <g fill="white" stroke="white">
    <ellipse cx="{{.H1X}}" cy="{{.H1Y}}" rx="{{mul .R 0.2}}" ry="{{mul .R 0.14}}" transform="rotate(-20 {{.H1X}} {{.H1Y}})" stroke="none"/>
    <ellipse cx="{{.H2X}}" cy="{{.H2Y}}" rx="{{mul .R 0.2}}" ry="{{mul .R 0.14}}" transform="rotate(-20 {{.H2X}} {{.H2Y}})" stroke="none"/>
    <line x1="{{.S1X}}" y1="{{.H1Y}}" x2="{{.S1X}}" y2="{{.T1}}" stroke-width="{{mul .R 0.08}}"/>
    <line x1="{{.S2X}}" y1="{{.H2Y}}" x2="{{.S2X}}" y2="{{.T2}}" stroke-width="{{mul .R 0.08}}"/>
    <line x1="{{.B1X}}" y1="{{.B1Y}}" x2="{{.B2X}}" y2="{{.B2Y}}" stroke-width="{{mul .R 0.14}}"/>
  </g>
</svg>
{{end -}}

{{- define "shortcut" -}}
<?xml version="1.0" encoding="UTF-8"?>
<svg width="{{.W}}" height="{{.H}}" viewBox="0 0 {{.W}} {{.H}}" xmlns="http://www.w3.org/2000/svg">
  <rect width="{{.W}}" height="{{.H}}" fill="{{hex .Background}}"/>
  <circle cx="{{mul .W 0.5}}" cy="{{mul .H 0.5}}" r="{{.R}}" fill="{{hex .Theme}}"/>
  <text x="{{mul .W 0.5}}" y="{{mul .H 0.5}}" font-size="{{mul .W 0.35}}" fill="white" text-anchor="middle" dominant-baseline="middle" font-weight="bold">{{.Letter}}</text>
</svg>
{{end -}}

{{- define "screenshot" -}}
<?xml version="1.0" encoding="UTF-8"?>
<svg width="{{.W}}" height="{{.H}}" viewBox="0 0 {{.W}} {{.H}}" xmlns="http://www.w3.org/2000/svg">
  <rect width="{{.W}}" height="{{.H}}" fill="white"/>
  <rect width="{{.W}}" height="{{mul .H 0.1}}" fill="{{hex .Theme}}"/>
  <text x="{{mul .W 0.5}}" y="{{mul .H 0.08}}" font-size="{{mul .H 0.06}}" fill="white" text-anchor="middle" font-weight="bold">{{.Title}}</text>
  {{- range .Rows}}
  <rect x="{{mul $.W 0.05}}" y="{{mul $.H .}}" width="{{mul $.W 0.9}}" height="{{mul $.H 0.08}}" fill="#f5f5f5" rx="4"/>
  {{- end}}
  <rect y="{{mul .H 0.9}}" width="{{.W}}" height="{{mul .H 0.1}}" fill="#f5f5f5"/>
  <circle cx="{{mul .W 0.2}}" cy="{{mul .H 0.95}}" r="{{mul .H 0.03}}" fill="{{hex .Theme}}"/>
  <circle cx="{{mul .W 0.5}}" cy="{{mul .H 0.95}}" r="{{mul .H 0.03}}" fill="#d0d0d0"/>
  <circle cx="{{mul .W 0.8}}" cy="{{mul .H 0.95}}" r="{{mul .H 0.03}}" fill="#d0d0d0"/>
</svg>
{{end -}}
`))

type svgData struct {
	W, H       float64
	R          float64
	Theme      color.RGBA
	Background color.RGBA
	Maskable   bool
	Letter     string
	Title      string
	Rows       []float64

	H1X, H1Y, H2X, H2Y float64
	S1X, S2X, T1, T2   float64
	B1X, B1Y, B2X, B2Y float64
}

func svgFor(a Asset) (string, svgData) {
	w, h := float64(a.Width), float64(a.Height)
	d := svgData{W: w, H: h, Theme: ThemeColor}

	switch a.Kind {
	case KindShortcut:
		d.R = (w - 2*float64(int(w*0.1))) / 2
		d.Background = a.Background
		d.Letter = a.Letter
		return "shortcut", d
	case KindScreenshot:
		d.Title = AppTitle
		d.Rows = []float64{0.15, 0.28, 0.41}
		return "screenshot", d
	}

	d.Maskable = a.Kind == KindMaskable
	d.R = (w - 2*float64(int(w*0.15))) / 2

	l := layoutNotes(w/2, h/2, d.R)
	d.H1X, d.H1Y = l.head1.x, l.head1.y
	d.H2X, d.H2Y = l.head2.x, l.head2.y
	d.S1X, d.S2X = l.x1, l.x2
	d.T1, d.T2 = l.top1, l.top2
	d.B1X, d.B1Y = l.x1-l.stem/2, l.top1+l.beam/2
	d.B2X, d.B2Y = l.x2+l.stem/2, l.top2+l.beam/2

	return "icon", d
}

func writeSVG(path string, a Asset) error {
	name, data := svgFor(a)

	f, err := util.CreateFile(path)
	if err != nil {
		return err
	}

	if err := svgTemplates.ExecuteTemplate(f, name, data); err != nil {
		_ = f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}

	return f.Close()
}
