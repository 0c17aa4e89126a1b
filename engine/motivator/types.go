// package motivator contains the handle layer of the motive engine. A
// Motivator is a lightweight, transferable reference into a Processor, which
// owns all numeric state for every motivator of its type and advances the
// whole population in one batch pass per frame.
package motivator

// Type identifies the update algorithm a Processor implements. Every
// registered Processor drives exactly one Type.
type Type string

// Index identifies one motivator's data slot within its Processor.
type Index int

// ChildIndex addresses one basic transform operation inside a matrix
// motivator's composition sequence.
type ChildIndex int

// IndexInvalid is the slot index of an unbound motivator.
const IndexInvalid Index = -1

// Init describes the type and initial state of a motivator. Concrete
// processors define their own init structs (see the processor package);
// the engine only needs the declared type to route the request.
type Init interface {
	// MotivatorType returns the processor type this descriptor targets.
	//
	// Returns:
	//   - Type: the declared motivator type
	MotivatorType() Type
}

// Waypoint is one stop on the way to a target: the value to reach, the
// velocity to have when reaching it, and the time budget to get there.
// Time is in caller-defined units (the same units passed to AdvanceFrame).
type Waypoint struct {
	Value    float32
	Velocity float32
	Time     float32
}

// Target1f describes where a driven value should move to: an optional
// override of the current state plus an ordered list of waypoints.
// Processors are free to ignore fields irrelevant to their algorithm.
type Target1f struct {
	// HasCurrent indicates CurrentValue/CurrentVelocity should replace the
	// motivator's present state before the waypoints are applied.
	HasCurrent      bool
	CurrentValue    float32
	CurrentVelocity float32

	// Waypoints are visited in order. An empty list with HasCurrent set
	// snaps the value and clears any motion in progress.
	Waypoints []Waypoint
}

// TargetValue builds a target that eases to `value`, arriving at rest after
// `time` has elapsed.
//
// Parameters:
//   - value: the value to reach
//   - time: the time budget, in caller-defined units
//
// Returns:
//   - Target1f: the assembled target descriptor
func TargetValue(value, time float32) Target1f {
	return Target1f{Waypoints: []Waypoint{{Value: value, Time: time}}}
}

// TargetValueVelocity builds a target that eases to `value`, arriving with
// `velocity` after `time` has elapsed.
//
// Parameters:
//   - value: the value to reach
//   - velocity: the rate of change on arrival
//   - time: the time budget, in caller-defined units
//
// Returns:
//   - Target1f: the assembled target descriptor
func TargetValueVelocity(value, velocity, time float32) Target1f {
	return Target1f{Waypoints: []Waypoint{{Value: value, Velocity: velocity, Time: time}}}
}

// CurrentToTarget builds a target that first snaps the motivator to
// (currentValue, currentVelocity) and then eases to (targetValue,
// targetVelocity) over `time`.
//
// Parameters:
//   - currentValue: the value to jump to immediately
//   - currentVelocity: the velocity to jump to immediately
//   - targetValue: the value to reach
//   - targetVelocity: the rate of change on arrival
//   - time: the time budget, in caller-defined units
//
// Returns:
//   - Target1f: the assembled target descriptor
func CurrentToTarget(currentValue, currentVelocity, targetValue, targetVelocity, time float32) Target1f {
	return Target1f{
		HasCurrent:      true,
		CurrentValue:    currentValue,
		CurrentVelocity: currentVelocity,
		Waypoints:       []Waypoint{{Value: targetValue, Velocity: targetVelocity, Time: time}},
	}
}
