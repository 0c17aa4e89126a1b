package common

import (
	"math"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// BuildTranslation constructs a 4x4 translation matrix.
// All matrices are column-major; the translation occupies the fourth column.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - x, y, z: translation along each axis
func BuildTranslation(out []float32, x, y, z float32) {
	Identity(out)
	out[12], out[13], out[14] = x, y, z
}

// BuildScale constructs a 4x4 scale matrix.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - x, y, z: scale factors along each axis
func BuildScale(out []float32, x, y, z float32) {
	Identity(out)
	out[0], out[5], out[10] = x, y, z
}

// BuildRotationX constructs a 4x4 rotation matrix about the X axis.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - angle: rotation angle in radians
func BuildRotationX(out []float32, angle float32) {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	Identity(out)
	out[5], out[9] = c, -s
	out[6], out[10] = s, c
}

// BuildRotationY constructs a 4x4 rotation matrix about the Y axis.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - angle: rotation angle in radians
func BuildRotationY(out []float32, angle float32) {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	Identity(out)
	out[0], out[8] = c, s
	out[2], out[10] = -s, c
}

// BuildRotationZ constructs a 4x4 rotation matrix about the Z axis.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - angle: rotation angle in radians
func BuildRotationZ(out []float32, angle float32) {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	Identity(out)
	out[0], out[4] = c, -s
	out[1], out[5] = s, c
}

// WrapAngle normalizes an angle to the half-open interval (-pi, pi].
//
// Parameters:
//   - angle: angle in radians
//
// Returns:
//   - float32: the equivalent angle in (-pi, pi]
func WrapAngle(angle float32) float32 {
	const twoPi = 2 * math.Pi
	a := math.Mod(float64(angle), twoPi)
	if a > math.Pi {
		a -= twoPi
	} else if a <= -math.Pi {
		a += twoPi
	}
	return float32(a)
}

// AngleDifference returns the shortest signed angular distance from current to
// target, in radians. The result is always in (-pi, pi], so driving an angle
// from -170 degrees to +170 degrees yields -20 degrees, not +340.
//
// Parameters:
//   - target: target angle in radians
//   - current: current angle in radians
//
// Returns:
//   - float32: the shortest signed distance target - current
func AngleDifference(target, current float32) float32 {
	return WrapAngle(target - current)
}

// Clamp limits a value to the inclusive range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: v limited to [lo, hi]
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates between a and b by t.
//
// Parameters:
//   - a: start value (returned when t = 0)
//   - b: end value (returned when t = 1)
//   - t: interpolation parameter
//
// Returns:
//   - float32: the interpolated value
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
