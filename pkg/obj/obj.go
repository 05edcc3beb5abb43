// Package obj parses Wavefront OBJ text into flat, triangulated mesh records.
//
// Only vertex, texture coordinate, normal, face, group, object and comment
// records are understood; every other record is skipped. Each group with at
// least one triangle becomes one MeshRecord. Per-corner arrays are not
// deduplicated: a corner always gets its own position, uv and normal entry.
//
// Faces are fan-triangulated from their first corner, which is only correct
// for convex polygons.
package obj

import (
	"errors"
	"fmt"

	"github.com/Faultbox/objmesh/pkg/math"
)

// Parse errors.
var (
	ErrMalformedNumber   = errors.New("malformed number")
	ErrFaceWithoutGroup  = errors.New("face outside of any group")
	ErrDanglingReference = errors.New("dangling index reference")
)

// ParseError reports the line on which parsing stopped.
type ParseError struct {
	Line int        // 1-based line number
	Kind RecordKind // Record kind of the offending line
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("obj: line %d (%s): %v", e.Line, e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IndexTriple is one face corner's 1-based reference into the vertex, uv and
// normal tables. UV and Normal are 0 when the corner has none.
type IndexTriple struct {
	Vertex uint32
	UV     uint32
	Normal uint32
}

// Group is a named sub-mesh accumulated between group records.
type Group struct {
	Name   string
	Object string // Object name current when the group was opened

	Corners   []IndexTriple // One entry per face corner, indexed by corner id
	Triangles []uint32      // Corner ids, three per triangle
}

// MeshRecord is one assembled, render-ready sub-mesh.
type MeshRecord struct {
	Name   string
	Object string

	Positions []math.Vec3
	UVs       []math.Vec2
	Normals   []math.Vec3
	Indices   []uint32 // Triangle list into the per-corner arrays
}

// TriangleCount returns the number of triangles in the mesh.
func (m *MeshRecord) TriangleCount() int {
	return len(m.Indices) / 3
}
