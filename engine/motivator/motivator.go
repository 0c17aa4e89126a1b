package motivator

import (
	"fmt"
)

// Motivator drives a value towards a target value, or along a curve. It is
// a handle: it stores no numeric state of its own, only a reference to the
// Processor that owns its data and the slot index of that data. Centralizing
// state in the processor lets every motivator of one type be updated in a
// single cache-friendly batch pass, and lets the processor reorganize its
// storage without the handle noticing.
//
// Only one Motivator may reference a given (processor, index) pair. A
// Motivator is therefore move-only: TransferTo hands the slot to another
// handle and resets the source. Copying the struct by value aliases the
// slot and breaks the ownership record; keep motivators behind pointers and
// move them explicitly.
//
// Generally you will use a typed view like ScalarMotivator or
// MatrixMotivator, which add value accessors; the base type only manages
// binding and ownership.
type Motivator struct {
	processor Processor
	index     Index
}

// NewMotivator creates a motivator bound immediately via init and engine.
//
// Parameters:
//   - init: defines the type and initial state of the motivator
//   - engine: the engine whose AdvanceFrame will drive this motivator
//
// Returns:
//   - *Motivator: the bound handle
//   - error: error if the type is unregistered or the descriptor is rejected
func NewMotivator(init Init, engine Engine) (*Motivator, error) {
	m := &Motivator{index: IndexInvalid}
	if err := m.Initialize(init, engine); err != nil {
		return nil, err
	}
	return m, nil
}

// Initialize binds this motivator to the type declared by init. If the
// motivator is already bound, the prior slot is released first.
//
// Parameters:
//   - init: defines the type and initial state of the motivator
//   - engine: the engine whose AdvanceFrame will drive this motivator
//
// Returns:
//   - error: error if the type is unregistered or the descriptor is rejected
func (m *Motivator) Initialize(init Init, engine Engine) error {
	return m.initialize(init, engine, 0)
}

// initialize is the shared binding path. Typed views pass their static
// channel count in wantDims; 0 skips the check.
func (m *Motivator) initialize(init Init, engine Engine, wantDims int) error {
	m.Invalidate()
	p, err := engine.Processor(init.MotivatorType())
	if err != nil {
		return err
	}
	if wantDims > 0 && p.Dimensions() != wantDims {
		return fmt.Errorf("initialize %q: processor drives %d channels, handle expects %d: %w",
			init.MotivatorType(), p.Dimensions(), wantDims, ErrDimensionMismatch)
	}
	return p.InitializeMotivator(init, engine, m)
}

// Invalidate detaches this motivator from its processor and releases the
// slot. Functions other than Initialize, Valid, and TransferTo must not be
// called afterwards. Idempotent: invalidating an unbound motivator is a
// no-op. A stale handle (one whose slot was transferred away without its
// knowledge) is reset without touching the slot.
func (m *Motivator) Invalidate() {
	if m.processor == nil {
		return
	}
	if m.processor.ValidMotivator(m.index, m) {
		m.processor.RemoveMotivator(m.index)
	} else {
		m.reset()
	}
}

// Valid reports whether this motivator is currently being driven by a
// processor: it is bound and the processor confirms this handle is the
// slot's rightful owner.
//
// Returns:
//   - bool: true if bound and consistent
func (m *Motivator) Valid() bool {
	return m.processor != nil && m.processor.ValidMotivator(m.index, m)
}

// TransferTo moves ownership of this motivator's slot to dst. Afterwards
// dst reads exactly the values this handle read, this handle is unbound,
// and any slot dst previously owned has been released. Transferring an
// unbound motivator just invalidates dst. This is the supported way to
// relocate motivators, e.g. when growing a container of them.
//
// Parameters:
//   - dst: the handle taking ownership
func (m *Motivator) TransferTo(dst *Motivator) {
	if dst == m {
		return
	}
	dst.Invalidate()
	if m.processor == nil {
		return
	}
	m.processor.TransferMotivator(m.index, dst)
}

// Type returns the motivator type this handle was initialized to.
// Panics if the motivator is unbound.
//
// Returns:
//   - Type: the owning processor's type identifier
func (m *Motivator) Type() Type {
	return m.mustProcessor().Type()
}

// Dimensions returns the number of scalar channels this motivator drives:
// 1 for a float, 16 for a 4x4 matrix. Panics if the motivator is unbound.
//
// Returns:
//   - int: the per-slot channel count
func (m *Motivator) Dimensions() int {
	return m.mustProcessor().Dimensions()
}

// Index returns the slot index within the owning processor. Only meaningful
// while bound; exposed for diagnostics, since slot data is only reachable
// through the processor.
func (m *Motivator) Index() Index {
	return m.index
}

// mustProcessor returns the owning processor, failing fast on unbound use.
func (m *Motivator) mustProcessor() Processor {
	if m.processor == nil {
		panic("motivator: use of unbound motivator (initialize it, or gate on Valid)")
	}
	return m.processor
}

// bind and reset are called only by ProcessorBase; handles never mutate
// their own binding outside the ownership protocol.
func (m *Motivator) bind(p Processor, index Index) {
	m.processor = p
	m.index = index
}

func (m *Motivator) reset() {
	m.processor = nil
	m.index = IndexInvalid
}
