// Package cad provides the solid-geometry capabilities the plate
// assembler depends on: a filleted base plate and an extruded text
// label. The full kernel uses an SDF CAD library; the basic kernel
// only produces sharp-cornered boxes and omits text.
package cad

import (
	"errors"

	"github.com/treasures-to/qr3d/mesh"
)

// Kernel is the solid-geometry capability interface. Both operations
// are best-effort: callers degrade gracefully when they fail.
type Kernel interface {
	// RoundedBox returns a slab centered at the XY origin with its
	// bottom face at z=0 and fillets of the given radius on the
	// vertical edges.
	RoundedBox(width, depth, height, radius float64) ([]mesh.Tri, error)

	// TextMesh returns an extruded text label centered at (0, y),
	// rising by height from z.
	TextMesh(text string, size, height, y, z float64) ([]mesh.Tri, error)
}

// ErrNoText is returned by the basic kernel, which cannot build text.
var ErrNoText = errors.New("cad: text unavailable in basic kernel")

// New selects a kernel. basic forces the degraded implementation.
func New(basic bool) Kernel {
	if basic {
		return basicKernel{}
	}
	return &sdfKernel{}
}

// basicKernel is the degraded implementation: sharp corners, no text.
type basicKernel struct{}

func (basicKernel) RoundedBox(width, depth, height, radius float64) ([]mesh.Tri, error) {
	return mesh.Box(0, 0, 0, width, depth, height), nil
}

func (basicKernel) TextMesh(text string, size, height, y, z float64) ([]mesh.Tri, error) {
	return nil, ErrNoText
}
