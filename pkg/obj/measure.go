package obj

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objmesh/pkg/math"
)

// Bounds returns the box enclosing the mesh positions. ok is false for a mesh
// without positions.
func (m *MeshRecord) Bounds() (box math.Box, ok bool) {
	return math.BoundsOf(m.Positions)
}

// SurfaceArea sums the areas of the mesh triangles.
func (m *MeshRecord) SurfaceArea() float32 {
	var area float32
	for i := 0; i+2 < len(m.Indices); i += 3 {
		area += math.TriangleArea(
			m.Positions[m.Indices[i]],
			m.Positions[m.Indices[i+1]],
			m.Positions[m.Indices[i+2]],
		)
	}
	return area
}

// Transform applies t to the positions and normals in place. UVs and indices
// are unchanged.
func (m *MeshRecord) Transform(t mgl32.Mat4) {
	math.TransformPoints(t, m.Positions)
	math.TransformNormals(t, m.Normals)
}

// BoundsOfMeshes returns the box enclosing every mesh.
func BoundsOfMeshes(meshes []MeshRecord) (box math.Box, ok bool) {
	for i := range meshes {
		b, has := meshes[i].Bounds()
		if !has {
			continue
		}
		if ok {
			box = box.Union(b)
		} else {
			box, ok = b, true
		}
	}
	return box, ok
}
