// Package math provides the small vector types shared by the OBJ core and its tools.
package math

import "github.com/go-gl/mathgl/mgl32"

// Vec3 is a position or normal in single precision.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3FromMGL(v.MGL().Add(other.MGL()))
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3FromMGL(v.MGL().Sub(other.MGL()))
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3FromMGL(v.MGL().Mul(s))
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return v.MGL().Len()
}

// Cross returns v × other.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3FromMGL(v.MGL().Cross(other.MGL()))
}

// Min returns the component-wise minimum.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{min(v.X, other.X), min(v.Y, other.Y), min(v.Z, other.Z)}
}

// Max returns the component-wise maximum.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{max(v.X, other.X), max(v.Y, other.Y), max(v.Z, other.Z)}
}

// MGL converts to an mgl32 vector for engine adapters.
func (v Vec3) MGL() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// Vec3FromMGL converts an mgl32 vector.
func Vec3FromMGL(v mgl32.Vec3) Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vec3
}

// BoundsOf returns the box enclosing points. ok is false for an empty slice.
func BoundsOf(points []Vec3) (box Box, ok bool) {
	if len(points) == 0 {
		return Box{}, false
	}
	box = Box{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = box.Min.Min(p)
		box.Max = box.Max.Max(p)
	}
	return box, true
}

// Union returns the box enclosing both boxes.
func (b Box) Union(other Box) Box {
	return Box{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Size returns the extent along each axis.
func (b Box) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Box) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// TriangleArea returns the area of the triangle abc.
func TriangleArea(a, b, c Vec3) float32 {
	return 0.5 * b.Sub(a).Cross(c.Sub(a)).Length()
}

// FitUnit returns the transform that centres b on the origin and scales it
// uniformly so its largest extent is 1. A box with no extent is only
// translated.
func FitUnit(b Box) mgl32.Mat4 {
	size := b.Size()
	extent := max(size.X, size.Y, size.Z)
	c := b.Center()
	m := mgl32.Translate3D(-c.X, -c.Y, -c.Z)
	if extent > 0 {
		m = mgl32.Scale3D(1/extent, 1/extent, 1/extent).Mul4(m)
	}
	return m
}

// TransformPoints applies m to every point in place.
func TransformPoints(m mgl32.Mat4, points []Vec3) {
	for i, p := range points {
		points[i] = Vec3FromMGL(mgl32.TransformCoordinate(p.MGL(), m))
	}
}

// TransformNormals applies the inverse transpose of m's upper 3x3 to every
// normal in place and renormalises it. Zero vectors (absent normals) stay zero.
func TransformNormals(m mgl32.Mat4, normals []Vec3) {
	nm := m.Mat3().Inv().Transpose()
	for i, n := range normals {
		if n == (Vec3{}) {
			continue
		}
		normals[i] = Vec3FromMGL(nm.Mul3x1(n.MGL()).Normalize())
	}
}
