// Package layout derives all physical plate dimensions from a single
// requested QR size by uniform proportional scaling.
package layout

import "strconv"

// ReferenceSize is the QR size (in mm) at which the reference
// constants below were tuned. Every other size is a uniform scale
// of this configuration.
const ReferenceSize = 42.0

// Reference constants, in mm at ReferenceSize.
const (
	refMargin       = 2.0
	refTextBand     = 5.0
	refCornerRadius = 2.5
	refTextSize     = 4.2
	refTextYOffset  = 1.8
)

// DefaultSize is the fallback QR size (in mm) used when a size
// argument cannot be understood.
const DefaultSize = 50.0

// Config holds the derived plate dimensions, all in mm.
type Config struct {
	QRSize       float64 // side length of the QR block
	Margin       float64 // padding around the QR block
	TextBand     float64 // height of the label band above the QR block
	CornerRadius float64 // fillet radius of the base plate
	TextSize     float64 // label font size
	TextYOffset  float64 // label shift down from the band top
}

// Compute derives a Config for the requested QR size. The caller
// guarantees qrSizeMM > 0.
func Compute(qrSizeMM float64) Config {
	scale := qrSizeMM / ReferenceSize
	return Config{
		QRSize:       qrSizeMM,
		Margin:       refMargin * scale,
		TextBand:     refTextBand * scale,
		CornerRadius: refCornerRadius * scale,
		TextSize:     refTextSize * scale,
		TextYOffset:  refTextYOffset * scale,
	}
}

// TotalWidth returns the plate extent along X.
func (c Config) TotalWidth() float64 {
	return c.QRSize + 2*c.Margin
}

// TotalHeight returns the plate extent along Y, including the label band.
func (c Config) TotalHeight() float64 {
	return c.TextBand + c.QRSize + 2*c.Margin
}

var presets = map[string]float64{
	"small":  40,
	"medium": 50,
	"large":  55,
	"xlarge": 60,
}

// ResolveSize maps a size argument to a QR size in mm. It accepts a
// named preset or a literal millimeter value. Anything else resolves
// to DefaultSize, with ok=false so the caller can warn.
func ResolveSize(s string) (mm float64, ok bool) {
	if mm, ok := presets[s]; ok {
		return mm, true
	}
	if mm, err := strconv.ParseFloat(s, 64); err == nil && mm > 0 {
		return mm, true
	}
	return DefaultSize, false
}
