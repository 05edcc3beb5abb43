package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/objmesh/internal/importer"
	"github.com/Faultbox/objmesh/pkg/math"
	"github.com/Faultbox/objmesh/pkg/obj"
)

func triangleCount(meshes []obj.MeshRecord) int {
	n := 0
	for _, m := range meshes {
		n += m.TriangleCount()
	}
	return n
}

func printSummary(w io.Writer, res importer.Result) {
	fmt.Fprintf(w, "Source:    %s\n", res.Source)
	fmt.Fprintf(w, "Meshes:    %d\n", len(res.Meshes))
	fmt.Fprintf(w, "Triangles: %d\n", triangleCount(res.Meshes))
	fmt.Fprintf(w, "Took:      %v\n", res.Duration)

	for i := range res.Meshes {
		m := &res.Meshes[i]
		name := m.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(w, "  %-24s %6d tris  area %.3f", name, m.TriangleCount(), m.SurfaceArea())
		if box, ok := m.Bounds(); ok {
			size := box.Size()
			fmt.Fprintf(w, "  size %.3f x %.3f x %.3f", size.X, size.Y, size.Z)
		}
		fmt.Fprintln(w)
	}
	if total, ok := obj.BoundsOfMeshes(res.Meshes); ok {
		fmt.Fprintf(w, "Bounds:    min %s max %s center %s\n",
			fmtVec(total.Min), fmtVec(total.Max), fmtVec(total.Center()))
	}
}

// fitMeshes centres the meshes on the origin and scales them together so the
// largest extent of their combined bounds is 1.
func fitMeshes(meshes []obj.MeshRecord) {
	box, ok := obj.BoundsOfMeshes(meshes)
	if !ok {
		return
	}
	t := math.FitUnit(box)
	for i := range meshes {
		meshes[i].Transform(t)
	}
}

func fmtVec(v math.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

// meshDoc is the YAML shape of one mesh written by dump.
type meshDoc struct {
	Name      string       `yaml:"name"`
	Object    string       `yaml:"object,omitempty"`
	Triangles int          `yaml:"triangles"`
	Positions [][3]float32 `yaml:"positions,flow"`
	UVs       [][2]float32 `yaml:"uvs,flow"`
	Normals   [][3]float32 `yaml:"normals,flow"`
	Indices   []uint32     `yaml:"indices,flow"`
}

func toDocs(meshes []obj.MeshRecord) []meshDoc {
	docs := make([]meshDoc, 0, len(meshes))
	for _, m := range meshes {
		d := meshDoc{
			Name:      m.Name,
			Object:    m.Object,
			Triangles: m.TriangleCount(),
			Positions: make([][3]float32, len(m.Positions)),
			UVs:       make([][2]float32, len(m.UVs)),
			Normals:   make([][3]float32, len(m.Normals)),
			Indices:   m.Indices,
		}
		for i, p := range m.Positions {
			d.Positions[i] = p.MGL()
		}
		for i, uv := range m.UVs {
			d.UVs[i] = uv.MGL()
		}
		for i, n := range m.Normals {
			d.Normals[i] = n.MGL()
		}
		docs = append(docs, d)
	}
	return docs
}

func writeYAML(w io.Writer, meshes []obj.MeshRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDocs(meshes)); err != nil {
		return err
	}
	return enc.Close()
}
