package cad

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/treasures-to/qr3d/mesh"
)

// textPxPerMM is the rasterization density of the label. Higher
// values give smoother glyph edges and more boxes.
const textPxPerMM = 8.0

func (k *sdfKernel) TextMesh(text string, size, height, y, z float64) ([]mesh.Tri, error) {
	if text == "" {
		return nil, nil
	}

	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %v", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size * textPxPerMM,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face: %v", err)
	}
	defer face.Close()

	// Measure first, then render white-on-black onto a canvas that
	// just fits the string.
	mc := gg.NewContext(1, 1)
	mc.SetFontFace(face)
	tw, th := mc.MeasureString(text)

	const pad = 4
	w := int(tw) + 2*pad
	h := int(th) + 2*pad
	dc := gg.NewContext(w, h)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(1, 1, 1)
	dc.SetFontFace(face)
	dc.DrawStringAnchored(text, float64(w)/2, float64(h)/2, 0.5, 0.5)

	// Extrude each horizontal run of lit pixels as one box. The label
	// is centered at x=0 and at the requested y, in plate millimeters.
	mmPerPx := 1.0 / textPxPerMM
	var tris []mesh.Tri
	for _, r := range litRuns(dc.Image()) {
		cx := (float64(r.x0+r.x1)/2 - float64(w)/2) * mmPerPx
		cy := (float64(h)/2-float64(r.row)-0.5)*mmPerPx + y
		width := float64(r.x1-r.x0) * mmPerPx
		tris = append(tris, mesh.Box(cx, cy, z, width, mmPerPx, height)...)
	}
	if len(tris) == 0 {
		return nil, fmt.Errorf("no glyph coverage for %q", text)
	}
	return tris, nil
}

// run is a maximal horizontal span of lit pixels: [x0,x1) on row.
type run struct {
	row, x0, x1 int
}

// litRuns scans an image row by row and merges adjacent lit pixels
// into runs. A pixel is lit when its red channel is above half scale.
func litRuns(img image.Image) []run {
	b := img.Bounds()
	var runs []run
	for py := b.Min.Y; py < b.Max.Y; py++ {
		start := -1
		for px := b.Min.X; px <= b.Max.X; px++ {
			lit := false
			if px < b.Max.X {
				r, _, _, _ := img.At(px, py).RGBA()
				lit = r >= 0x8000
			}
			switch {
			case lit && start < 0:
				start = px
			case !lit && start >= 0:
				runs = append(runs, run{row: py - b.Min.Y, x0: start - b.Min.X, x1: px - b.Min.X})
				start = -1
			}
		}
	}
	return runs
}
