// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Vec3 is a 3-component float vector (x, y, z).
type Vec3 [3]float32

// Mat4 is a 4x4 float matrix stored in column-major order (OpenGL/WebGPU convention).
// For an affine transform the translation lives in the fourth column (elements 12, 13, 14).
type Mat4 [16]float32

// X returns the first component of the vector.
func (v Vec3) X() float32 { return v[0] }

// Y returns the second component of the vector.
func (v Vec3) Y() float32 { return v[1] }

// Z returns the third component of the vector.
func (v Vec3) Z() float32 { return v[2] }

// Translation returns the translation component of an affine transform matrix.
// The matrix is a 3D affine transform, so the translation component is the fourth column.
//
// Returns:
//   - Vec3: the translation as (x, y, z)
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// IdentityMat4 returns a new 4x4 identity matrix.
//
// Returns:
//   - Mat4: the identity matrix
func IdentityMat4() Mat4 {
	var m Mat4
	Identity(m[:])
	return m
}
