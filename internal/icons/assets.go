// Package icons generates the PWA icons, shortcut icons and store
// screenshots of the choir front-end.
package icons

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/brogergvhs/choirscrape/internal/ui"
	"github.com/brogergvhs/choirscrape/internal/util"
)

type Kind int

const (
	KindDefault Kind = iota
	KindMaskable
	KindShortcut
	KindScreenshot
)

func (k Kind) String() string {
	switch k {
	case KindMaskable:
		return "maskable"
	case KindShortcut:
		return "shortcut"
	case KindScreenshot:
		return "screenshot"
	default:
		return "default"
	}
}

type Asset struct {
	Name   string
	Width  int
	Height int
	Kind   Kind

	// shortcut only
	Background color.RGBA
	Letter     string
}

func icon(size int, maskable bool) Asset {
	a := Asset{Name: fmt.Sprintf("icon-%dx%d.png", size, size), Width: size, Height: size}
	if maskable {
		a.Name = fmt.Sprintf("icon-%dx%d-maskable.png", size, size)
		a.Kind = KindMaskable
	}

	return a
}

func shortcut(name string, bg color.RGBA, letter string) Asset {
	return Asset{
		Name:       fmt.Sprintf("shortcut-%s-192x192.png", name),
		Width:      192,
		Height:     192,
		Kind:       KindShortcut,
		Background: bg,
		Letter:     letter,
	}
}

// Assets lists every file the front-end manifest references.
func Assets() []Asset {
	return []Asset{
		icon(192, false),
		icon(512, false),
		icon(144, false),
		icon(96, false),
		icon(192, true),
		icon(512, true),
		shortcut("absence", color.RGBA{R: 0xe8, G: 0xf5, B: 0xe9, A: 0xff}, "A"),
		shortcut("library", color.RGBA{R: 0xe3, G: 0xf2, B: 0xfd, A: 0xff}, "L"),
		shortcut("performance", color.RGBA{R: 0xff, G: 0xf3, B: 0xe0, A: 0xff}, "E"),
		{Name: "screenshot-1.png", Width: 540, Height: 720, Kind: KindScreenshot},
		{Name: "screenshot-2.png", Width: 1280, Height: 720, Kind: KindScreenshot},
	}
}

func (a Asset) Render() image.Image {
	switch a.Kind {
	case KindMaskable:
		return RenderIcon(a.Width, true)
	case KindShortcut:
		return RenderShortcut(a.Width, a.Background, a.Letter)
	case KindScreenshot:
		return RenderScreenshot(a.Width, a.Height)
	default:
		return RenderIcon(a.Width, false)
	}
}

type Options struct {
	// SVG also writes a vector version of every asset next to the PNG.
	SVG bool
}

// Generate writes all assets into dir, creating it if needed, and returns
// the written file paths.
func Generate(dir string, opts Options, log *ui.Logger) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	var written []string
	for _, a := range Assets() {
		path := filepath.Join(dir, a.Name)
		if err := writePNG(path, a.Render()); err != nil {
			return written, err
		}
		written = append(written, path)
		log.Infof("created %s (%dx%d, %s)", a.Name, a.Width, a.Height, a.Kind)

		if !opts.SVG {
			continue
		}

		svgPath := strings.TrimSuffix(path, ".png") + ".svg"
		if err := writeSVG(svgPath, a); err != nil {
			return written, err
		}
		written = append(written, svgPath)
		log.Debugf("created %s", filepath.Base(svgPath))
	}

	return written, nil
}

func writePNG(path string, img image.Image) error {
	f, err := util.CreateFile(path)
	if err != nil {
		return err
	}

	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	return f.Close()
}
