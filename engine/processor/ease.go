// package processor contains the concrete processors shipped with the
// engine. Each processor owns the densely packed per-slot state for every
// motivator of its type and advances the whole population in one batch pass
// per frame; handles reach it through the capability interfaces in the
// motivator package.
package processor

import (
	"fmt"

	"github.com/Carmen-Shannon/motive-go/common"
	"github.com/Carmen-Shannon/motive-go/engine/motivator"
)

// EaseType is the motivator type driven by the ease processor.
const EaseType motivator.Type = "ease-1f"

// EaseInit initializes a motivator on the ease processor, which moves a
// float along cubic Hermite legs between waypoints, or along a supplied
// spline. Arrival values and velocities are hit exactly at each waypoint's
// time budget.
type EaseInit struct {
	// Modular marks the value as angle-like: motion takes the shortest
	// signed arc and reported values wrap to (-pi, pi].
	Modular bool

	// StartValue is the value the motivator holds until the first target or
	// spline is set.
	StartValue float32
}

// MotivatorType returns the processor type this descriptor targets.
func (EaseInit) MotivatorType() motivator.Type { return EaseType }

// easeSlot is the per-motivator state. The leg currently in flight runs
// from (startValue, startVelocity) to (targetValue, targetVelocity) over
// duration; queue holds the waypoints after the current leg. targetValue is
// kept unwrapped relative to startValue while a modular leg is in flight so
// the Hermite basis interpolates along the shortest arc.
type easeSlot struct {
	modular bool

	value, velocity             float32
	startValue, startVelocity   float32
	targetValue, targetVelocity float32
	elapsed, duration           float32
	queue                       []motivator.Waypoint

	playback     motivator.SplinePlayback
	cursor       float32
	splineActive bool
}

// easeProcessor implements motivator.ScalarProcessor.
type easeProcessor struct {
	motivator.ProcessorBase
	slots []easeSlot
}

var _ motivator.ScalarProcessor = &easeProcessor{}

// NewEaseProcessor creates the ease processor. Register it with the engine
// to make EaseType initializable.
//
// Returns:
//   - motivator.ScalarProcessor: the new processor
func NewEaseProcessor() motivator.ScalarProcessor {
	return &easeProcessor{}
}

func (p *easeProcessor) Type() motivator.Type { return EaseType }

func (p *easeProcessor) Dimensions() int { return 1 }

func (p *easeProcessor) InitializeMotivator(init motivator.Init, _ motivator.Engine, m *motivator.Motivator) error {
	ei, ok := init.(EaseInit)
	if !ok {
		return fmt.Errorf("ease: unsupported init descriptor %T", init)
	}
	index := p.BindMotivator(p, m)
	slot := easeSlot{
		modular:     ei.Modular,
		value:       ei.StartValue,
		startValue:  ei.StartValue,
		targetValue: ei.StartValue,
	}
	if int(index) == len(p.slots) {
		p.slots = append(p.slots, slot)
	} else {
		p.slots[index] = slot
	}
	return nil
}

func (p *easeProcessor) RemoveMotivator(index motivator.Index) {
	if !p.Occupied(index) {
		return
	}
	p.ProcessorBase.RemoveMotivator(index)
	p.slots[index] = easeSlot{}
}

func (p *easeProcessor) ReleaseAll() {
	p.ProcessorBase.ReleaseAll()
	p.slots = p.slots[:0]
}

// AdvanceFrame advances every occupied slot by delta. Freed slots are
// skipped; their data is dead until the index is reused.
func (p *easeProcessor) AdvanceFrame(delta float32) {
	for i := range p.slots {
		if !p.Occupied(motivator.Index(i)) {
			continue
		}
		p.advanceSlot(&p.slots[i], delta)
	}
}

func (p *easeProcessor) advanceSlot(s *easeSlot, delta float32) {
	if s.splineActive {
		sp := s.playback.Spline
		s.cursor += delta
		if s.cursor >= sp.EndTime() {
			if s.playback.Repeat {
				s.cursor = sp.LoopTime(s.cursor)
			} else {
				s.cursor = sp.EndTime()
				s.splineActive = false
			}
		}
		s.value, s.velocity = sp.Evaluate(s.cursor)
		return
	}

	if s.elapsed >= s.duration {
		// Settled: hold value and arrival velocity.
		return
	}

	s.elapsed += delta
	for s.elapsed >= s.duration {
		// Carry the remainder past the boundary into the next leg, so a
		// queue's total duration holds exactly no matter how frame ticks
		// line up with waypoint budgets. One large delta may cross several
		// boundaries.
		leftover := s.elapsed - s.duration
		p.arrive(s)
		if s.elapsed >= s.duration {
			// No further leg to absorb the remainder.
			return
		}
		s.elapsed = leftover
	}

	u := s.elapsed / s.duration
	u2 := u * u
	u3 := u2 * u
	m0 := s.startVelocity * s.duration
	m1 := s.targetVelocity * s.duration

	h00 := 2*u3 - 3*u2 + 1
	h10 := u3 - 2*u2 + u
	h01 := -2*u3 + 3*u2
	h11 := u3 - u2
	s.value = h00*s.startValue + h10*m0 + h01*s.targetValue + h11*m1

	d00 := 6*u2 - 6*u
	d10 := 3*u2 - 4*u + 1
	d01 := -6*u2 + 6*u
	d11 := 3*u2 - 2*u
	s.velocity = (d00*s.startValue + d10*m0 + d01*s.targetValue + d11*m1) / s.duration
}

// arrive lands the current leg exactly and starts the next queued waypoint,
// if any.
func (p *easeProcessor) arrive(s *easeSlot) {
	s.value = s.targetValue
	s.velocity = s.targetVelocity
	s.elapsed = s.duration
	if s.modular {
		s.value = common.WrapAngle(s.value)
		s.targetValue = s.value
	}
	if len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		p.startLeg(s, next)
	}
}

// startLeg begins motion from the slot's current state to a waypoint. For
// modular slots the target is unwrapped relative to the current value so
// the leg travels the shortest signed arc. A non-positive time budget lands
// immediately.
func (p *easeProcessor) startLeg(s *easeSlot, wp motivator.Waypoint) {
	s.startValue = s.value
	s.startVelocity = s.velocity
	s.targetValue = wp.Value
	if s.modular {
		s.targetValue = s.value + common.AngleDifference(wp.Value, s.value)
	}
	s.targetVelocity = wp.Velocity
	s.duration = wp.Time
	s.elapsed = 0
	if s.duration <= 0 {
		s.duration = 0
		p.arrive(s)
	}
}

func (p *easeProcessor) Value(index motivator.Index) float32 {
	s := &p.slots[index]
	if s.modular {
		return common.WrapAngle(s.value)
	}
	return s.value
}

func (p *easeProcessor) Velocity(index motivator.Index) float32 {
	return p.slots[index].velocity
}

func (p *easeProcessor) TargetValue(index motivator.Index) float32 {
	s := &p.slots[index]
	if s.splineActive {
		return s.playback.Spline.EndValue()
	}
	if s.modular {
		return common.WrapAngle(s.targetValue)
	}
	return s.targetValue
}

func (p *easeProcessor) TargetVelocity(index motivator.Index) float32 {
	s := &p.slots[index]
	if s.splineActive {
		return s.playback.Spline.EndDerivative()
	}
	return s.targetVelocity
}

func (p *easeProcessor) Difference(index motivator.Index) float32 {
	s := &p.slots[index]
	target := s.targetValue
	if s.splineActive {
		target = s.playback.Spline.EndValue()
	}
	if s.modular {
		return common.AngleDifference(target, s.value)
	}
	return target - s.value
}

func (p *easeProcessor) TargetTime(index motivator.Index) float32 {
	s := &p.slots[index]
	if s.splineActive {
		return s.playback.Spline.EndTime() - s.cursor
	}
	if remaining := s.duration - s.elapsed; remaining > 0 {
		return remaining
	}
	return 0
}

func (p *easeProcessor) SetTarget(index motivator.Index, t motivator.Target1f) error {
	s := &p.slots[index]
	s.splineActive = false
	if t.HasCurrent {
		s.value = t.CurrentValue
		s.velocity = t.CurrentVelocity
	}
	if len(t.Waypoints) == 0 {
		// Snap: clear any motion in progress and hold the current state.
		s.startValue, s.startVelocity = s.value, s.velocity
		s.targetValue, s.targetVelocity = s.value, s.velocity
		s.duration, s.elapsed = 0, 0
		s.queue = nil
		return nil
	}
	s.queue = append(s.queue[:0], t.Waypoints[1:]...)
	p.startLeg(s, t.Waypoints[0])
	return nil
}

func (p *easeProcessor) SetSpline(index motivator.Index, playback motivator.SplinePlayback) error {
	if playback.Spline == nil {
		return fmt.Errorf("ease: spline playback requires a curve")
	}
	s := &p.slots[index]
	s.playback = playback
	s.cursor = playback.StartTime
	s.splineActive = true
	s.queue = nil
	s.duration, s.elapsed = 0, 0
	s.value, s.velocity = playback.Spline.Evaluate(s.cursor)
	s.targetValue = playback.Spline.EndValue()
	s.targetVelocity = playback.Spline.EndDerivative()
	return nil
}
