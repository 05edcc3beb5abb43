package obj

import (
	"fmt"

	"github.com/Faultbox/objmesh/pkg/math"
)

// tables holds the file-global, append-only vertex data.
type tables struct {
	positions []math.Vec3
	uvs       []math.Vec2
	normals   []math.Vec3
}

// check validates a corner against the tables as they are now, so a face can
// only reference data declared above it.
func (tb *tables) check(t IndexTriple) error {
	if t.Vertex == 0 || int(t.Vertex) > len(tb.positions) {
		return fmt.Errorf("%w: vertex %d of %d", ErrDanglingReference, t.Vertex, len(tb.positions))
	}
	if int(t.UV) > len(tb.uvs) {
		return fmt.Errorf("%w: uv %d of %d", ErrDanglingReference, t.UV, len(tb.uvs))
	}
	if int(t.Normal) > len(tb.normals) {
		return fmt.Errorf("%w: normal %d of %d", ErrDanglingReference, t.Normal, len(tb.normals))
	}
	return nil
}

// assemble builds one MeshRecord per group that produced triangles, in the
// order the groups were opened. Absent uv and normal slots become zero
// vectors. Any out-of-range index aborts the whole assembly.
func assemble(groups []Group, tb *tables) ([]MeshRecord, error) {
	meshes := make([]MeshRecord, 0, len(groups))
	for i := range groups {
		g := &groups[i]
		if len(g.Triangles) == 0 {
			continue
		}

		m := MeshRecord{
			Name:      g.Name,
			Object:    g.Object,
			Positions: make([]math.Vec3, len(g.Corners)),
			UVs:       make([]math.Vec2, len(g.Corners)),
			Normals:   make([]math.Vec3, len(g.Corners)),
			Indices:   g.Triangles,
		}
		if m.Name == "" {
			m.Name = g.Object
		}

		for j, t := range g.Corners {
			if err := tb.check(t); err != nil {
				return nil, fmt.Errorf("obj: group %q corner %d: %w", g.Name, j, err)
			}
			m.Positions[j] = tb.positions[t.Vertex-1]
			if t.UV > 0 {
				m.UVs[j] = tb.uvs[t.UV-1]
			}
			if t.Normal > 0 {
				m.Normals[j] = tb.normals[t.Normal-1]
			}
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}
