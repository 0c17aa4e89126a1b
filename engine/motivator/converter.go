package motivator

import (
	"github.com/Carmen-Shannon/motive-go/common"
)

// VectorConverter translates between the engine's internal vector/matrix
// representation and a caller-chosen external one, so MatrixMotivator can be
// reused with any math library. Implementations are zero-size strategy
// structs with value receivers: the compiler instantiates the conversions
// per converter type, with no runtime dispatch and no allocation.
type VectorConverter[M, V any] interface {
	// ToMatrix converts the internal column-major 4x4 matrix to the
	// external matrix representation.
	//
	// Parameters:
	//   - m: the internal matrix
	//
	// Returns:
	//   - M: the external matrix
	ToMatrix(m common.Mat4) M

	// ToVector converts the internal 3-component vector to the external
	// vector representation.
	//
	// Parameters:
	//   - v: the internal vector
	//
	// Returns:
	//   - V: the external vector
	ToVector(v common.Vec3) V

	// FromVector converts an external vector back to the internal
	// representation.
	//
	// Parameters:
	//   - v: the external vector
	//
	// Returns:
	//   - common.Vec3: the internal vector
	FromVector(v V) common.Vec3
}

// PassThroughConverter is the default converter: the external types are the
// engine's own common.Mat4 and common.Vec3, and every conversion is the
// identity. Supply your own converter to expose another math library's
// types through MatrixMotivator's external API.
type PassThroughConverter struct{}

func (PassThroughConverter) ToMatrix(m common.Mat4) common.Mat4 { return m }

func (PassThroughConverter) ToVector(v common.Vec3) common.Vec3 { return v }

func (PassThroughConverter) FromVector(v common.Vec3) common.Vec3 { return v }
