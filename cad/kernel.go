package cad

import (
	"fmt"
	"os"

	"github.com/soypat/sdf"
	"github.com/soypat/sdf/form2/obj2"
	"github.com/soypat/sdf/render"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/treasures-to/qr3d/mesh"
	"github.com/treasures-to/qr3d/stl"
)

// meshCells controls the octree render resolution of the base plate.
const meshCells = 200

// sdfKernel is the full implementation, backed by an SDF CAD library.
// Solids are rendered to a scoped temporary STL file and read back as
// triangles.
type sdfKernel struct{}

func (k *sdfKernel) RoundedBox(width, depth, height, radius float64) ([]mesh.Tri, error) {
	panel, err := obj2.Panel(obj2.PanelParams{
		Size:         r2.Vec{X: width, Y: depth},
		CornerRadius: radius,
	})
	if err != nil {
		return nil, err
	}
	s := sdf.Extrude3D(panel, height)
	// Extrude3D centers the slab in Z; shift the bottom face to z=0.
	s = sdf.Transform3D(s, sdf.Translate3D(r3.Vec{Z: height / 2}))
	return renderTris(s)
}

// renderTris renders a solid through a temporary STL file, removing
// the file on every exit path.
func renderTris(s sdf.SDF3) ([]mesh.Tri, error) {
	tmp, err := os.CreateTemp("", "qr3d-*.stl")
	if err != nil {
		return nil, fmt.Errorf("CreateTemp: %v", err)
	}
	name := tmp.Name()
	tmp.Close()
	defer os.Remove(name)

	if err := render.CreateSTL(name, render.NewOctreeRenderer(s, meshCells)); err != nil {
		return nil, fmt.Errorf("render: %v", err)
	}
	return stl.ReadFile(name)
}
