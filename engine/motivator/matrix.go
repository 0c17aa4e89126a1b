package motivator

import (
	"github.com/Carmen-Shannon/motive-go/common"
)

// MatrixMotivator drives a 4x4 float matrix composed from a series of basic
// transform operations (translation, rotation, scale components). Each
// operation is either driven by a nested scalar motivator or fixed to a
// constant, as declared in the processor's init descriptor. The underlying
// operations are animated with SetChildTarget1f and pinned with
// SetChildValue1f / SetChildValue3f.
//
// Internally the engine uses common.Mat4 and common.Vec3; the C type
// parameter converts to any external matrix/vector representation at zero
// runtime cost. Matrix4fMotivator is the pass-through instantiation.
type MatrixMotivator[C VectorConverter[M, V], M, V any] struct {
	Motivator
}

// Matrix4fMotivator is a MatrixMotivator whose external types are the
// engine's own common.Mat4 and common.Vec3.
type Matrix4fMotivator = MatrixMotivator[PassThroughConverter, common.Mat4, common.Vec3]

// NewMatrixMotivator creates a matrix motivator bound immediately via init
// and engine.
//
// Parameters:
//   - init: defines the type and the operation list of the motivator (must
//     resolve to a 16-channel processor)
//   - engine: the engine whose AdvanceFrame will drive this motivator
//
// Returns:
//   - *MatrixMotivator[C, M, V]: the bound handle
//   - error: error if the type is unregistered, rejects the descriptor, or
//     does not drive 4x4 matrices
func NewMatrixMotivator[C VectorConverter[M, V], M, V any](init Init, engine Engine) (*MatrixMotivator[C, M, V], error) {
	m := &MatrixMotivator[C, M, V]{Motivator{index: IndexInvalid}}
	if err := m.Initialize(init, engine); err != nil {
		return nil, err
	}
	return m, nil
}

// NewMatrix4fMotivator creates a pass-through matrix motivator bound
// immediately via init and engine.
//
// Parameters:
//   - init: defines the type and the operation list of the motivator
//   - engine: the engine whose AdvanceFrame will drive this motivator
//
// Returns:
//   - *Matrix4fMotivator: the bound handle
//   - error: error if the type is unregistered, rejects the descriptor, or
//     does not drive 4x4 matrices
func NewMatrix4fMotivator(init Init, engine Engine) (*Matrix4fMotivator, error) {
	return NewMatrixMotivator[PassThroughConverter, common.Mat4, common.Vec3](init, engine)
}

// Initialize binds this motivator to the type declared by init, checking
// that the resolved processor drives 16 channels.
//
// Parameters:
//   - init: defines the type and the operation list of the motivator
//   - engine: the engine whose AdvanceFrame will drive this motivator
//
// Returns:
//   - error: error if the type is unregistered, rejects the descriptor, or
//     does not drive 4x4 matrices
func (m *MatrixMotivator[C, M, V]) Initialize(init Init, engine Engine) error {
	return m.initialize(init, engine, 16)
}

// Value returns the current composed transform in the external matrix
// representation, as of the engine's last AdvanceFrame.
func (m *MatrixMotivator[C, M, V]) Value() M {
	var c C
	return c.ToMatrix(m.matrix().Value(m.index))
}

// Position returns the translation component of the composed transform.
// The matrix is a 3D affine transform, so this is the fourth column.
func (m *MatrixMotivator[C, M, V]) Position() V {
	var c C
	return c.ToVector(m.matrix().Value(m.index).Translation())
}

// ChildValue1f returns the current scalar value of the child operation at
// childIndex in the composition sequence.
//
// Parameters:
//   - childIndex: the index into the init descriptor's operation list
//
// Returns:
//   - float32: the operation's current value
func (m *MatrixMotivator[C, M, V]) ChildValue1f(childIndex ChildIndex) float32 {
	return m.matrix().ChildValue1f(m.index, childIndex)
}

// ChildValue3f packs the current values of the child operations at
// (childIndex, childIndex+1, childIndex+2) into an external vector, x
// through z. Useful when three consecutive operations drive the x, y, z
// components of a translation, rotation, or scale.
//
// Parameters:
//   - childIndex: the first index into the operation list
//
// Returns:
//   - V: the three consecutive child values as a vector
func (m *MatrixMotivator[C, M, V]) ChildValue3f(childIndex ChildIndex) V {
	var c C
	return c.ToVector(m.matrix().ChildValue3f(m.index, childIndex))
}

// SetChildTarget1f forwards a target to the nested motivator driving the
// child operation at childIndex. The operation must have been declared
// motivator-driven at initialization, not constant.
//
// Parameters:
//   - childIndex: the index into the operation list
//   - t: the target for the child's update algorithm, optionally including
//     a current value to jump to
//
// Returns:
//   - error: ErrChildConstant if the operation was declared constant
func (m *MatrixMotivator[C, M, V]) SetChildTarget1f(childIndex ChildIndex, t Target1f) error {
	return m.matrix().SetChildTarget1f(m.index, childIndex, t)
}

// SetChildValue1f overwrites the constant value of the child operation at
// childIndex. The operation must have been declared constant at
// initialization, not motivator-driven.
//
// Parameters:
//   - childIndex: the index into the operation list
//   - value: the new constant value
//
// Returns:
//   - error: ErrChildDriven if the operation is motivator-driven
func (m *MatrixMotivator[C, M, V]) SetChildValue1f(childIndex ChildIndex, value float32) error {
	return m.matrix().SetChildValue1f(m.index, childIndex, value)
}

// SetChildValue3f overwrites the constants of the child operations at
// (childIndex, childIndex+1, childIndex+2) with the vector's x, y, z
// components.
//
// Parameters:
//   - childIndex: the first index into the operation list
//   - value: the new constant values
//
// Returns:
//   - error: ErrChildDriven if any of the three operations is motivator-driven
func (m *MatrixMotivator[C, M, V]) SetChildValue3f(childIndex ChildIndex, value V) error {
	var c C
	return m.matrix().SetChildValue3f(m.index, childIndex, c.FromVector(value))
}

// matrix downcasts the owning processor to its matrix capability set.
func (m *MatrixMotivator[C, M, V]) matrix() MatrixProcessor {
	p, ok := m.mustProcessor().(MatrixProcessor)
	if !ok {
		panic("motivator: processor does not drive 4x4 matrices")
	}
	return p
}
