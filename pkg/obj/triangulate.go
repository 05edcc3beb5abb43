package obj

// fanTriangulate appends the fan triangles of one face to dst: for an n-gon
// with corner ids c0..cn-1 it emits (c0, cj, cj+1) for j = 1..n-2. Faces with
// fewer than three corners add nothing. Non-convex faces get the same fan and
// may produce overlapping triangles.
func fanTriangulate(dst []uint32, corners []uint32) []uint32 {
	for j := 1; j+1 < len(corners); j++ {
		dst = append(dst, corners[0], corners[j], corners[j+1])
	}
	return dst
}
