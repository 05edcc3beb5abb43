package math

import "github.com/go-gl/mathgl/mgl32"

// Vec2 is a texture coordinate in single precision.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// MGL converts to an mgl32 vector.
func (v Vec2) MGL() mgl32.Vec2 {
	return mgl32.Vec2{v.X, v.Y}
}
