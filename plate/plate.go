// Package plate assembles the printable QR plate meshes: a base slab,
// the extruded QR pattern, and a best-effort text label.
package plate

import (
	"fmt"
	"log"

	"github.com/treasures-to/qr3d/cad"
	"github.com/treasures-to/qr3d/layout"
	"github.com/treasures-to/qr3d/mesh"
	"github.com/treasures-to/qr3d/qrbitmap"
)

// Material indices of the plate parts, matching the exported
// materials block (0 = base color, 1 = pattern color).
const (
	MaterialBase    = 0
	MaterialPattern = 1
)

// Style selects the plate's top-surface construction.
type Style string

const (
	// StyleRaised leaves the pattern protruding above the base slab.
	StyleRaised Style = "raised"
	// StyleInlay embeds the pattern in a full-coverage background
	// fill of equal height, leaving a flush top surface.
	StyleInlay Style = "inlay"
)

// ParseStyle validates a style argument.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleRaised, StyleInlay:
		return Style(s), nil
	}
	return "", fmt.Errorf("unknown style %q (want raised or inlay)", s)
}

// Heights holds the Z extents of the plate parts, in mm.
type Heights struct {
	Base    float64 // slab thickness
	Pattern float64 // QR extrusion above the slab; also the inlay fill height
	Text    float64 // label extrusion in raised style
}

// DefaultHeights are the stock print heights.
var DefaultHeights = Heights{Base: 3, Pattern: 1.5, Text: 2}

// gutterRatio shrinks each QR square so neighboring printed squares
// stay physically separated.
const gutterRatio = 0.95

// Assembler builds plate meshes from a QR bitmap.
type Assembler struct {
	Kernel  cad.Kernel
	Layout  layout.Config
	Heights Heights
	Label   string
}

// Result groups the assembled plate parts. Base and Fill print in the
// base material; Pattern and Text in the pattern material. Fill is
// nil for the raised style; Text is empty when the label could not be
// built.
type Result struct {
	Base    *mesh.Mesh
	Fill    *mesh.Mesh
	Pattern *mesh.Mesh
	Text    *mesh.Mesh
}

// Assemble builds the plate parts for one QR bitmap.
//
// Every set bitmap cell becomes one box on a centered lattice of
// pitch QRSize/N, shifted down by half the text band so the QR block
// is vertically centered under the label. Rounded corners and the
// label are requested from the CAD kernel and degrade gracefully.
func (a *Assembler) Assemble(bm qrbitmap.Bitmap, style Style) (*Result, error) {
	n := bm.Size()
	if n == 0 {
		return nil, fmt.Errorf("empty QR bitmap")
	}
	cfg := a.Layout
	w, d := cfg.TotalWidth(), cfg.TotalHeight()

	res := &Result{
		Base:    mesh.New("base_green", MaterialBase),
		Pattern: mesh.New("qr_white", MaterialPattern),
		Text:    mesh.New("label_white", MaterialPattern),
	}

	res.Base.AddAll(a.slab(w, d, a.Heights.Base, 0))

	if style == StyleInlay {
		// The fill must exactly match the pattern height so the
		// combined top surface is flush.
		res.Fill = mesh.New("fill_green", MaterialBase)
		res.Fill.AddAll(a.slab(w, d, a.Heights.Pattern, a.Heights.Base))
	}

	pixel := cfg.QRSize / float64(n)
	square := pixel * gutterRatio
	yOfs := -cfg.TextBand / 2
	for i, row := range bm {
		for j, cell := range row {
			if !cell {
				continue
			}
			x := (float64(j) - float64(n)/2) * pixel
			y := (float64(n)/2-float64(i))*pixel + yOfs
			res.Pattern.AddAll(mesh.Box(x, y, a.Heights.Base, square, square, a.Heights.Pattern))
		}
	}

	textH := a.Heights.Text
	if style == StyleInlay {
		textH = a.Heights.Pattern
	}
	textY := d/2 - cfg.TextBand/2 - cfg.TextYOffset
	tris, err := a.Kernel.TextMesh(a.Label, cfg.TextSize, textH, textY, a.Heights.Base)
	if err != nil {
		log.Printf("Warning: could not add text %q: %v", a.Label, err)
	} else {
		res.Text.AddAll(tris)
	}

	return res, nil
}

// slab builds one base-footprint slab with rounded corners, falling
// back to sharp corners if the kernel fails.
func (a *Assembler) slab(w, d, height, zBottom float64) []mesh.Tri {
	tris, err := a.Kernel.RoundedBox(w, d, height, a.Layout.CornerRadius)
	if err != nil {
		log.Printf("Warning: rounded corners unavailable (%v), using sharp corners", err)
		tris = mesh.Box(0, 0, 0, w, d, height)
	}
	if zBottom != 0 {
		tris = mesh.TranslateZ(tris, zBottom)
	}
	return tris
}

// Objects returns the parts as exporter objects: the green base parts
// first, then the white pattern with its label folded in.
func (r *Result) Objects() []*mesh.Mesh {
	white := r.Pattern
	if r.Text != nil && r.Text.NumTriangles() > 0 {
		white = mesh.New(r.Pattern.Name, r.Pattern.Material)
		white.AddAll(r.Pattern.Tris())
		white.AddAll(r.Text.Tris())
	}
	objs := []*mesh.Mesh{r.Base}
	if r.Fill != nil {
		objs = append(objs, r.Fill)
	}
	return append(objs, white)
}
