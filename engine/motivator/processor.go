package motivator

import (
	"errors"

	"github.com/Carmen-Shannon/motive-go/common"
)

var (
	// ErrDimensionMismatch is returned when an init descriptor resolves to a
	// processor whose dimensionality does not match the handle's static shape.
	ErrDimensionMismatch = errors.New("motivator: processor dimensions do not match handle shape")

	// ErrChildConstant is returned when a target-setter is invoked on a child
	// operation that was declared constant at initialization.
	ErrChildConstant = errors.New("motivator: child operation is a constant, not motivator-driven")

	// ErrChildDriven is returned when a constant-setter is invoked on a child
	// operation that was declared motivator-driven at initialization.
	ErrChildDriven = errors.New("motivator: child operation is motivator-driven, not a constant")

	// ErrSplineUnsupported is returned by processors whose algorithm cannot
	// play back a supplied curve.
	ErrSplineUnsupported = errors.New("motivator: processor does not support spline playback")
)

// Engine resolves processors by type. The engine package implements this;
// it is declared here so motivators can be initialized without importing it.
type Engine interface {
	// Processor returns the registered processor responsible for the given
	// type, or an error if none is registered.
	//
	// Parameters:
	//   - t: the motivator type to resolve
	//
	// Returns:
	//   - Processor: the responsible processor
	//   - error: error if the type is unregistered
	Processor(t Type) (Processor, error)
}

// Processor is the minimal capability set every processor exposes to the
// generic handle: slot lifecycle, ownership bookkeeping, identity, and the
// per-frame batch update. Typed handle views downcast to the richer
// ScalarProcessor or MatrixProcessor capability sets.
type Processor interface {
	// InitializeMotivator allocates a slot described by init and binds m to
	// it. The engine is passed through so processors can initialize nested
	// motivators of their own.
	//
	// Parameters:
	//   - init: the initialization descriptor (must match the processor's concrete init type)
	//   - engine: the engine that routed this request
	//   - m: the handle to bind
	//
	// Returns:
	//   - error: error if the descriptor is of the wrong kind or malformed
	InitializeMotivator(init Init, engine Engine, m *Motivator) error

	// RemoveMotivator releases the slot at index and resets the handle that
	// owns it. Out-of-range or already-free indices are no-ops.
	//
	// Parameters:
	//   - index: the slot to release
	RemoveMotivator(index Index)

	// TransferMotivator re-points the slot's ownership record to newOwner.
	// The previous owner is reset; the slot's data is untouched.
	//
	// Parameters:
	//   - index: the slot whose ownership is transferred
	//   - newOwner: the handle taking ownership
	TransferMotivator(index Index, newOwner *Motivator)

	// ValidMotivator reports whether m is the current rightful owner of the
	// slot at index.
	//
	// Parameters:
	//   - index: the slot to check
	//   - m: the candidate owner
	//
	// Returns:
	//   - bool: true if m owns the slot
	ValidMotivator(index Index, m *Motivator) bool

	// ReleaseAll forcibly invalidates every handle referencing this
	// processor and frees all slots. Called on engine teardown so no handle
	// is left referencing a dead processor.
	ReleaseAll()

	// Type returns the motivator type this processor drives.
	//
	// Returns:
	//   - Type: the processor's type identifier
	Type() Type

	// Dimensions returns the number of scalar channels driven per slot:
	// 1 for a float, 16 for a 4x4 matrix.
	//
	// Returns:
	//   - int: the per-slot channel count
	Dimensions() int

	// AdvanceFrame advances every active slot by the elapsed time. Called
	// once per frame tick by the engine.
	//
	// Parameters:
	//   - delta: elapsed time since the last frame, in caller-defined units
	AdvanceFrame(delta float32)
}

// ScalarProcessor is the capability set of processors driving single float
// values, keyed by slot index.
type ScalarProcessor interface {
	Processor

	// Value returns the current value of the slot.
	Value(index Index) float32

	// Velocity returns the current rate of change of the slot.
	Velocity(index Index) float32

	// TargetValue returns the value the slot is driving towards. When a
	// spline is playing, this is the value at the end of the spline.
	TargetValue(index Index) float32

	// TargetVelocity returns the rate of change the slot will have once it
	// reaches its target.
	TargetVelocity(index Index) float32

	// Difference returns TargetValue minus Value using the processor's
	// notion of distance. Modular (angle-like) slots report the shortest
	// signed path, not the naive subtraction.
	Difference(index Index) float32

	// TargetTime returns the time remaining until the target is reached,
	// in caller-defined units.
	TargetTime(index Index) float32

	// SetTarget supplies new waypoints for the slot to hit, optionally
	// overriding the current value. Fields irrelevant to the processor's
	// algorithm may be ignored.
	//
	// Parameters:
	//   - index: the slot to retarget
	//   - t: the target descriptor
	//
	// Returns:
	//   - error: error if the descriptor cannot be applied
	SetTarget(index Index, t Target1f) error

	// SetSpline replaces the slot's current motion with playback of the
	// supplied curve, overriding the current value.
	//
	// Parameters:
	//   - index: the slot to drive
	//   - s: the curve, start time, and repeat flag
	//
	// Returns:
	//   - error: error if the playback descriptor is malformed or the
	//     processor does not support splines
	SetSpline(index Index, s SplinePlayback) error
}

// MatrixProcessor is the capability set of processors composing 4x4 affine
// transforms from an ordered sequence of child operations, keyed by
// (slot index, child index).
type MatrixProcessor interface {
	Processor

	// Value returns the slot's current composed transform, recomputed each
	// AdvanceFrame and whenever a constant child is overwritten.
	Value(index Index) common.Mat4

	// ChildValue1f returns the current scalar value of one child operation.
	ChildValue1f(index Index, child ChildIndex) float32

	// ChildValue3f packs the values of children (child, child+1, child+2)
	// into a vector, x through z respectively.
	ChildValue3f(index Index, child ChildIndex) common.Vec3

	// SetChildTarget1f forwards a target to the nested motivator driving
	// the child operation. The child must have been declared
	// motivator-driven at initialization.
	//
	// Parameters:
	//   - index: the slot to address
	//   - child: the child operation to retarget
	//   - t: the target descriptor for the nested motivator
	//
	// Returns:
	//   - error: ErrChildConstant if the child was declared constant
	SetChildTarget1f(index Index, child ChildIndex, t Target1f) error

	// SetChildValue1f overwrites the constant value of a child operation.
	// The child must have been declared constant at initialization.
	//
	// Parameters:
	//   - index: the slot to address
	//   - child: the child operation to overwrite
	//   - value: the new constant value
	//
	// Returns:
	//   - error: ErrChildDriven if the child is motivator-driven
	SetChildValue1f(index Index, child ChildIndex, value float32) error

	// SetChildValue3f overwrites the constants of children (child, child+1,
	// child+2) with the vector's x, y, z components.
	//
	// Parameters:
	//   - index: the slot to address
	//   - child: the first child operation to overwrite
	//   - value: the new constant values
	//
	// Returns:
	//   - error: ErrChildDriven if any of the three children is motivator-driven
	SetChildValue3f(index Index, child ChildIndex, value common.Vec3) error
}

// ProcessorBase is the ownership ledger embedded by every concrete
// processor: a back-pointer table mapping slot indices to their owning
// handles, plus a free list so released indices are reused. It implements
// the ownership half of the Processor interface; embedders supply the data
// storage, identity, and update algorithm.
//
// Invariant: at most one handle owns a given index, and motivators[index]
// is that handle (nil for free slots).
type ProcessorBase struct {
	motivators []*Motivator
	free       []Index
}

// BindMotivator allocates a slot (reusing a freed index when available) and
// binds m to it on behalf of processor p. Embedders call this from their
// InitializeMotivator; when the returned index equals the previous Len the
// backing data arrays must grow by one.
//
// Parameters:
//   - p: the concrete processor the handle should reference
//   - m: the handle to bind
//
// Returns:
//   - Index: the allocated slot index
func (b *ProcessorBase) BindMotivator(p Processor, m *Motivator) Index {
	var index Index
	if n := len(b.free); n > 0 {
		index = b.free[n-1]
		b.free = b.free[:n-1]
		b.motivators[index] = m
	} else {
		index = Index(len(b.motivators))
		b.motivators = append(b.motivators, m)
	}
	m.bind(p, index)
	return index
}

// RemoveMotivator resets the owning handle, clears the ownership record,
// and returns the index to the free list. No-op for out-of-range or
// already-free indices.
func (b *ProcessorBase) RemoveMotivator(index Index) {
	if index < 0 || int(index) >= len(b.motivators) {
		return
	}
	m := b.motivators[index]
	if m == nil {
		return
	}
	m.reset()
	b.motivators[index] = nil
	b.free = append(b.free, index)
}

// TransferMotivator re-points the ownership record at index to newOwner and
// resets the previous owner. The slot's data is untouched, so the new
// handle reads exactly what the old one did.
func (b *ProcessorBase) TransferMotivator(index Index, newOwner *Motivator) {
	if index < 0 || int(index) >= len(b.motivators) {
		return
	}
	old := b.motivators[index]
	if old == nil || old == newOwner {
		return
	}
	p := old.processor
	old.reset()
	b.motivators[index] = newOwner
	newOwner.bind(p, index)
}

// ValidMotivator reports whether m is the slot's current rightful owner.
func (b *ProcessorBase) ValidMotivator(index Index, m *Motivator) bool {
	if index < 0 || int(index) >= len(b.motivators) {
		return false
	}
	return b.motivators[index] == m
}

// ReleaseAll resets every bound handle and frees all slots.
func (b *ProcessorBase) ReleaseAll() {
	for i, m := range b.motivators {
		if m != nil {
			m.reset()
			b.motivators[i] = nil
		}
	}
	b.motivators = b.motivators[:0]
	b.free = b.free[:0]
}

// Occupied reports whether the slot at index currently has an owner.
// Batch update loops use this to skip freed slots.
func (b *ProcessorBase) Occupied(index Index) bool {
	return index >= 0 && int(index) < len(b.motivators) && b.motivators[index] != nil
}

// Len returns the total number of slots, occupied and free. Backing data
// arrays in embedders are kept exactly this long.
func (b *ProcessorBase) Len() int {
	return len(b.motivators)
}
