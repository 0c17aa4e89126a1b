package motivator

// ScalarMotivator drives a single float value towards a target, or along a
// spline. It adds no stored state over the base Motivator; every accessor
// delegates to the owning ScalarProcessor keyed by slot index.
//
// All accessors and mutators are undefined on an unbound motivator; gate on
// Valid or rely on a prior successful Initialize.
type ScalarMotivator struct {
	Motivator
}

// NewScalarMotivator creates a scalar motivator bound immediately via init
// and engine. The current and target values are whatever the processor's
// init defaults are; use SetTarget or InitializeWithTarget to place them.
//
// Parameters:
//   - init: defines the type and initial state of the motivator (must
//     resolve to a 1-channel processor)
//   - engine: the engine whose AdvanceFrame will drive this motivator
//
// Returns:
//   - *ScalarMotivator: the bound handle
//   - error: error if the type is unregistered, rejects the descriptor, or
//     does not drive single floats
func NewScalarMotivator(init Init, engine Engine) (*ScalarMotivator, error) {
	m := &ScalarMotivator{Motivator{index: IndexInvalid}}
	if err := m.Initialize(init, engine); err != nil {
		return nil, err
	}
	return m, nil
}

// Initialize binds this motivator to the type declared by init, checking
// that the resolved processor drives exactly one channel.
//
// Parameters:
//   - init: defines the type and initial state of the motivator
//   - engine: the engine whose AdvanceFrame will drive this motivator
//
// Returns:
//   - error: error if the type is unregistered, rejects the descriptor, or
//     does not drive single floats
func (m *ScalarMotivator) Initialize(init Init, engine Engine) error {
	return m.initialize(init, engine, 1)
}

// InitializeWithTarget binds this motivator as Initialize does, then
// applies the given target in the same call.
//
// Parameters:
//   - init: defines the type and initial state of the motivator
//   - engine: the engine whose AdvanceFrame will drive this motivator
//   - t: the target to apply once bound
//
// Returns:
//   - error: error from Initialize or from applying the target
func (m *ScalarMotivator) InitializeWithTarget(init Init, engine Engine, t Target1f) error {
	if err := m.Initialize(init, engine); err != nil {
		return err
	}
	return m.SetTarget(t)
}

// Value returns the current motivator value, as of the engine's last
// AdvanceFrame.
func (m *ScalarMotivator) Value() float32 {
	return m.scalar().Value(m.index)
}

// Velocity returns the current rate of change. When driven by a spline,
// this is the curve's derivative at the current playback time.
func (m *ScalarMotivator) Velocity() float32 {
	return m.scalar().Velocity(m.index)
}

// TargetValue returns the value this motivator is driving towards. When
// driven by a spline, this is the value at the end of the spline.
func (m *ScalarMotivator) TargetValue() float32 {
	return m.scalar().TargetValue(m.index)
}

// TargetVelocity returns the rate of change this motivator will have once
// it reaches TargetValue.
func (m *ScalarMotivator) TargetVelocity() float32 {
	return m.scalar().TargetVelocity(m.index)
}

// Difference returns TargetValue minus Value, using the processor's notion
// of distance. For modular types (e.g. angles) this is the shortest signed
// path: with a target of 170 degrees and a value of -170 degrees,
// Difference is -20 degrees.
func (m *ScalarMotivator) Difference() float32 {
	return m.scalar().Difference(m.index)
}

// TargetTime returns the time remaining until the target is reached, in
// caller-defined units.
func (m *ScalarMotivator) TargetTime() float32 {
	return m.scalar().TargetTime(m.index)
}

// SetTarget supplies the target (and optionally the current) values. The
// motivator transitions smoothly to the new target with the movement
// qualities of the underlying processor; retargeting every frame is fine.
// The processor may ignore parts of t irrelevant to its algorithm.
//
// Parameters:
//   - t: a set of waypoints to hit, optionally including the current value;
//     when the current value is absent, the existing one is kept
//
// Returns:
//   - error: error if the descriptor cannot be applied
func (m *ScalarMotivator) SetTarget(t Target1f) error {
	return m.scalar().SetTarget(m.index, t)
}

// SetSpline replaces the current motion with playback of the curve in s,
// overriding the current value.
//
// Parameters:
//   - s: the curve to follow, the time within it to start playback, and
//     whether to repeat from the beginning after the end is reached
//
// Returns:
//   - error: error if the playback descriptor is malformed or the processor
//     does not support splines
func (m *ScalarMotivator) SetSpline(s SplinePlayback) error {
	return m.scalar().SetSpline(m.index, s)
}

// scalar downcasts the owning processor to its scalar capability set.
func (m *ScalarMotivator) scalar() ScalarProcessor {
	p, ok := m.mustProcessor().(ScalarProcessor)
	if !ok {
		panic("motivator: processor does not drive scalar values")
	}
	return p
}
