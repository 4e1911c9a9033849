// qr3d converts a URL into a 3D-printable multi-color QR plate: a
// green base slab carrying the white embossed QR pattern and a text
// label.
//
// Output is either a multi-object 3MF package with per-part material
// and extruder assignment (default), or a single binary STL for
// printers without multi-material support, which reproduce the two
// colors with a filament change at the base height.
//
// Multiple URLs run as a batch: each failure is reported and the
// batch continues with the next URL.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/treasures-to/qr3d/cad"
	"github.com/treasures-to/qr3d/layout"
	"github.com/treasures-to/qr3d/plate"
	"github.com/treasures-to/qr3d/qrbitmap"
	"github.com/treasures-to/qr3d/stl"
	"github.com/treasures-to/qr3d/threemf"
)

var (
	output   = flag.String("o", "", `Output path; a ".stl" suffix selects single-mesh output (default is derived from the URL under -dir)`)
	outDir   = flag.String("dir", "output", "Output directory used when -o is not given")
	size     = flag.String("size", "medium", "Plate size: small, medium, large, xlarge, or a value in mm")
	styleArg = flag.String("style", "raised", "Surface style: raised or inlay (3MF output only)")
	labelArg = flag.String("label", "", "Label text (default is the URL host)")

	baseHeight = flag.Float64("base-height", plate.DefaultHeights.Base, "Base slab thickness in mm")
	qrHeight   = flag.Float64("qr-height", plate.DefaultHeights.Pattern, "QR pattern extrusion in mm")
	textHeight = flag.Float64("text-height", plate.DefaultHeights.Text, "Label extrusion in mm (raised style)")

	resolution = flag.Int("px", qrbitmap.DefaultResolution, "QR bitmap resolution in cells")
	basic      = flag.Bool("basic", false, "Skip the CAD kernel: sharp corners, no label")
	noParts    = flag.Bool("no-part-settings", false, "Omit the per-part extruder table from 3MF output")
)

func main() {
	flag.Parse()

	urls := flag.Args()
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: qr3d [flags] url [url ...]")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *output != "" && len(urls) > 1 {
		log.Fatal("-o cannot be combined with multiple URLs")
	}

	qrSize, ok := layout.ResolveSize(*size)
	if !ok {
		log.Printf("Warning: unrecognized size %q, using %vmm", *size, qrSize)
	}
	style, err := plate.ParseStyle(*styleArg)
	check("style: %v", err)

	cfg := layout.Compute(qrSize)
	heights := plate.Heights{Base: *baseHeight, Pattern: *qrHeight, Text: *textHeight}
	kernel := cad.New(*basic)

	var generated int
	for i, u := range urls {
		out := *output
		if out == "" {
			out, err = defaultPath(*outDir, u)
			check("output path: %v", err)
		}
		log.Printf("[%v/%v] Generating QR plate for %q...", i+1, len(urls), truncate(u, 60))
		if err := generate(u, out, kernel, cfg, heights, style); err != nil {
			if len(urls) == 1 {
				log.Fatalf("Error: %v", err)
			}
			log.Printf("Error: %v", err)
			continue
		}
		generated++
	}
	if len(urls) > 1 {
		log.Printf("Generated %v of %v plates in %q", generated, len(urls), *outDir)
	}
}

func generate(payload, out string, kernel cad.Kernel, cfg layout.Config, heights plate.Heights, style plate.Style) error {
	log.Printf("Generating QR code...")
	bm, err := qrbitmap.Encode(payload, *resolution)
	if err != nil {
		return err
	}

	asm := &plate.Assembler{
		Kernel:  kernel,
		Layout:  cfg,
		Heights: heights,
		Label:   labelFor(payload),
	}

	if strings.HasSuffix(out, ".stl") {
		// Single-mesh output is always the raised construction.
		log.Printf("Building mesh (%v QR squares)...", bm.Count())
		res, err := asm.Assemble(bm, plate.StyleRaised)
		if err != nil {
			return err
		}
		n, err := stl.WriteFile(out, res.Objects()...)
		if err != nil {
			return err
		}
		log.Printf("Created %q (%v triangles)", out, n)
		log.Printf("Use a filament change at Z=%vmm for two colors", heights.Base)
		return nil
	}

	if !strings.HasSuffix(out, ".3mf") {
		out += ".3mf"
	}
	log.Printf("Building meshes (%v QR squares, %v style)...", bm.Count(), style)
	res, err := asm.Assemble(bm, style)
	if err != nil {
		return err
	}
	model := &threemf.Model{
		Materials:    threemf.DefaultMaterials,
		Objects:      res.Objects(),
		PartSettings: !*noParts,
	}
	if err := threemf.Write(out, model); err != nil {
		return err
	}
	log.Printf("Created multi-color %q - colors pre-assigned", out)
	return nil
}

// defaultPath derives an output filename from the last URL path
// segment, truncated and sanitized, under dir (created if absent).
func defaultPath(dir, payload string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	suffix := payload
	if i := strings.LastIndex(suffix, "/"); i >= 0 {
		suffix = suffix[i+1:]
	}
	suffix = truncate(suffix, 20)
	suffix = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, suffix)
	if suffix == "" {
		suffix = "code"
	}
	return filepath.Join(dir, "qr_"+suffix+".3mf"), nil
}

// labelFor returns the embossed label text: the -label flag if given,
// otherwise the URL host, otherwise the payload itself.
func labelFor(payload string) string {
	if *labelArg != "" {
		return *labelArg
	}
	if u, err := url.Parse(payload); err == nil && u.Host != "" {
		return u.Host
	}
	return truncate(payload, 20)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func check(fmtStr string, args ...interface{}) {
	err := args[len(args)-1]
	if err != nil {
		log.Fatalf(fmtStr, args...)
	}
}
