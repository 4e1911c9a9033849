// Package qrbitmap encodes a payload into a square binary QR bitmap.
package qrbitmap

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultResolution is the side length (in cells) the encoder output
// is resampled to, independent of the QR symbol version.
const DefaultResolution = 200

// Bitmap is a square binary matrix: true cells are QR marks.
type Bitmap [][]bool

// Encode encodes payload at error-correction level M, including the
// quiet-zone border, and resamples the result to px by px cells.
// px <= 0 keeps the encoder's native module resolution.
func Encode(payload string, px int) (Bitmap, error) {
	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qrcode.New: %v", err)
	}
	bm := Bitmap(code.Bitmap())
	if px > 0 {
		bm = bm.Resample(px)
	}
	return bm, nil
}

// Size returns the side length of the bitmap.
func (b Bitmap) Size() int { return len(b) }

// Count returns the number of set cells.
func (b Bitmap) Count() int {
	var n int
	for _, row := range b {
		for _, cell := range row {
			if cell {
				n++
			}
		}
	}
	return n
}

// Resample rescales the bitmap to px by px cells using
// nearest-neighbor sampling.
func (b Bitmap) Resample(px int) Bitmap {
	n := len(b)
	if n == 0 || n == px {
		return b
	}
	out := make(Bitmap, px)
	for i := range out {
		si := i * n / px
		row := make([]bool, px)
		for j := range row {
			row[j] = b[si][j*n/px]
		}
		out[i] = row
	}
	return out
}
