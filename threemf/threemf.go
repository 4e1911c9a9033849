// Package threemf writes the packaged multi-object exchange archive:
// a 3MF zip container carrying named, colored mesh objects, build
// items, and an optional per-part extruder table.
package threemf

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/treasures-to/qr3d/mesh"
)

// Material is a named display color.
type Material struct {
	Name  string
	Color string // #RRGGBB
}

// DefaultMaterials is the stock two-color palette: the base plate
// prints in the first material, the QR pattern and label in the
// second.
var DefaultMaterials = []Material{
	{Name: "Green", Color: "#00AA00"},
	{Name: "White", Color: "#FFFFFF"},
}

// Model is one packaged build: its materials, its mesh objects (each
// referencing a material by index), and whether the per-part extruder
// table is written.
type Model struct {
	Materials    []Material
	Objects      []*mesh.Mesh
	PartSettings bool // write Metadata/model_settings.config
}

// In-archive part ids. The materials resource is id 1, mesh objects
// follow, and the composite object (if any) comes last.
const materialsID = 1

func (m *Model) objectID(i int) int { return i + materialsID + 1 }

func (m *Model) compositeID() int { return m.objectID(len(m.Objects)) }

// buildID returns the object id placed in the build volume.
func (m *Model) buildID() int {
	if len(m.Objects) > 1 {
		return m.compositeID()
	}
	return m.objectID(0)
}

// Write writes the packaged archive to filename. Any I/O failure
// propagates to the caller unmodified.
func Write(filename string, m *Model) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WriteTo(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteTo writes the packaged archive to w.
func WriteTo(w io.Writer, m *Model) error {
	zw := zip.NewWriter(w)

	type entry struct {
		name  string
		write func(io.Writer) error
	}
	entries := []entry{
		{"[Content_Types].xml", m.writeContentTypes},
		{"_rels/.rels", m.writeRels},
		{"3D/3dmodel.model", m.writeModel},
	}
	if m.PartSettings {
		entries = append(entries, entry{"Metadata/model_settings.config", m.writeSettings})
	}

	for _, e := range entries {
		fh := &zip.FileHeader{
			Name:     e.name,
			Method:   zip.Deflate,
			Modified: time.Now(),
		}
		f, err := zw.CreateHeader(fh)
		if err != nil {
			return fmt.Errorf("unable to create ZIP file %q: %v", e.name, err)
		}
		if err := e.write(f); err != nil {
			return fmt.Errorf("write %q: %v", e.name, err)
		}
	}

	return zw.Close()
}

func (m *Model) writeContentTypes(w io.Writer) error {
	configType := ""
	if m.PartSettings {
		configType = "\n  <Default Extension=\"config\" ContentType=\"application/xml\" />"
	}
	_, err := fmt.Fprintf(w, contentTypesFmt, configType)
	return err
}

var contentTypesFmt = `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml" />
  <Default Extension="model" ContentType="application/vnd.ms-package.3dmanufacturing-3dmodel+xml" />%v
</Types>
`

func (m *Model) writeRels(w io.Writer) error {
	_, err := io.WriteString(w, relsXML)
	return err
}

var relsXML = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Target="/3D/3dmodel.model" Id="rel0" Type="http://schemas.microsoft.com/3dmanufacturing/2013/01/3dmodel" />
</Relationships>
`

func (m *Model) writeModel(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, modelHeader)
	fmt.Fprintf(bw, "    <m:basematerials id=\"%v\">\n", materialsID)
	for _, mat := range m.Materials {
		fmt.Fprintf(bw, "      <m:base name=%q displaycolor=%q />\n", mat.Name, mat.Color)
	}
	fmt.Fprint(bw, "    </m:basematerials>\n")

	for i, obj := range m.Objects {
		fmt.Fprintf(bw, "    <object id=\"%v\" name=%q type=\"model\">\n", m.objectID(i), obj.Name)
		fmt.Fprint(bw, "      <mesh>\n        <vertices>\n")
		for _, v := range obj.Vertices() {
			fmt.Fprintf(bw, "          <vertex x=\"%.6f\" y=\"%.6f\" z=\"%.6f\" />\n", v[0], v[1], v[2])
		}
		fmt.Fprint(bw, "        </vertices>\n        <triangles>\n")
		for _, t := range obj.Triangles() {
			fmt.Fprintf(bw, "          <triangle v1=\"%v\" v2=\"%v\" v3=\"%v\" pid=\"%v\" p1=\"%v\" />\n",
				t[0], t[1], t[2], materialsID, obj.Material)
		}
		fmt.Fprint(bw, "        </triangles>\n      </mesh>\n    </object>\n")
	}

	// Several parts printed as one build item are grouped under a
	// single composite object.
	if len(m.Objects) > 1 {
		fmt.Fprintf(bw, "    <object id=\"%v\" name=\"plate\" type=\"model\">\n      <components>\n", m.compositeID())
		for i := range m.Objects {
			fmt.Fprintf(bw, "        <component objectid=\"%v\" />\n", m.objectID(i))
		}
		fmt.Fprint(bw, "      </components>\n    </object>\n")
	}

	fmt.Fprintf(bw, "  </resources>\n  <build>\n    <item objectid=\"%v\" />\n  </build>\n</model>\n", m.buildID())
	return bw.Flush()
}

var modelHeader = `<?xml version="1.0" encoding="UTF-8"?>
<model unit="millimeter" xmlns="http://schemas.microsoft.com/3dmanufacturing/core/2015/02" xmlns:m="http://schemas.microsoft.com/3dmanufacturing/material/2015/02">
  <metadata name="Application">qr3d</metadata>
  <resources>
`

// writeSettings maps every object (and each part of the composite) to
// its extruder so slicers pick filament slots without manual
// assignment. Extruders are 1-based material indices.
func (m *Model) writeSettings(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<config>\n")
	fmt.Fprintf(bw, "  <object id=\"%v\">\n", m.buildID())
	fmt.Fprint(bw, "    <metadata key=\"name\" value=\"plate\"/>\n")
	if len(m.Objects) > 1 {
		for i, obj := range m.Objects {
			fmt.Fprintf(bw, "    <part id=\"%v\" subtype=\"normal_part\">\n", m.objectID(i))
			fmt.Fprintf(bw, "      <metadata key=\"name\" value=%q/>\n", obj.Name)
			fmt.Fprintf(bw, "      <metadata key=\"extruder\" value=\"%v\"/>\n", obj.Material+1)
			fmt.Fprint(bw, "    </part>\n")
		}
	} else {
		fmt.Fprintf(bw, "    <metadata key=\"extruder\" value=\"%v\"/>\n", m.Objects[0].Material+1)
	}
	fmt.Fprint(bw, "  </object>\n</config>\n")
	return bw.Flush()
}
