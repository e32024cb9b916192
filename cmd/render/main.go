// Command render evaluates a design-graph source file, tessellates it
// with the sdfx geometry kernel, and writes the resulting assembly as
// an orthographic SVG drawing. It mirrors the evaluate-then-tessellate
// pipeline of the project's interactive editor, minus the GUI: a
// single batch pass from Lisp source to a finished SVG file.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/chazu/cadvec/pkg/color"
	"github.com/chazu/cadvec/pkg/engine"
	"github.com/chazu/cadvec/pkg/kernel/sdfx"
	"github.com/chazu/cadvec/pkg/render"
	"github.com/chazu/cadvec/pkg/scene"
	"github.com/chazu/cadvec/pkg/tessellate"
)

func main() {
	source := flag.String("in", "", "path to a design-graph source file")
	out := flag.String("out", "out.svg", "path to write the rendered SVG")
	viewX := flag.Float64("view-x", 1, "camera view direction X")
	viewY := flag.Float64("view-y", 1, "camera view direction Y")
	viewZ := flag.Float64("view-z", 1, "camera view direction Z")
	flag.Parse()

	if *source == "" {
		log.Fatal("render: -in is required")
	}

	if err := run(*source, *out, [3]float64{*viewX, *viewY, *viewZ}); err != nil {
		log.Fatalf("render: %v", err)
	}
}

func run(sourcePath, outPath string, view [3]float64) error {
	src, err := os.ReadFile(sourcePath)
	if err != nil {
		return err
	}

	e := engine.NewEngine()
	g, evalErrs, err := e.Evaluate(string(src))
	if err != nil {
		return err
	}
	for _, ee := range evalErrs {
		log.Printf("render: eval error: %v", ee)
	}
	if len(evalErrs) > 0 {
		return nil
	}

	k := sdfx.New()
	meshes, err := tessellate.Tessellate(g, k)
	if err != nil {
		return err
	}

	solids := make([]scene.Solid, len(meshes))
	for i, m := range meshes {
		solid := scene.NewSolid(m.Mesh)
		solid.Color = color.New(
			colorPalette[i%len(colorPalette)][0],
			colorPalette[i%len(colorPalette)][1],
			colorPalette[i%len(colorPalette)][2],
		)
		solids[i] = solid
	}
	part := scene.NewPart("", solids)

	cameraPos := [3]float64{view[0] * 1000, view[1] * 1000, view[2] * 1000}
	camera, err := scene.NewCamera(cameraPos, view)
	if err != nil {
		return err
	}
	lights := []scene.Light{scene.NewLight(cameraPos)}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	s := render.Scene{Part: part, Camera: camera, Lights: lights}
	return render.WriteSVG(f, s, render.DefaultConfig())
}

// colorPalette assigns a distinct base color to each part in turn.
var colorPalette = [][3]uint8{
	{74, 144, 217},
	{230, 126, 34},
	{46, 204, 113},
	{155, 89, 182},
	{231, 76, 60},
	{26, 188, 156},
	{243, 156, 18},
	{52, 152, 219},
}
