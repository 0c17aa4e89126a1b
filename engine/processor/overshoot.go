package processor

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/motive-go/common"
	"github.com/Carmen-Shannon/motive-go/engine/motivator"
)

// OvershootType is the motivator type driven by the overshoot processor.
const OvershootType motivator.Type = "overshoot-1f"

// Default overshoot settings, applied when the corresponding init field is
// zero.
const (
	DefaultMaxVelocity              float32 = 100.0
	DefaultAccelPerDifference       float32 = 60.0
	DefaultWrongDirectionMultiplier float32 = 4.0
	DefaultAtTargetDistance         float32 = 0.001
	DefaultAtTargetVelocity         float32 = 0.001
)

// OvershootInit initializes a motivator on the overshoot processor, which
// accelerates a float towards its target proportionally to the remaining
// difference. The value overshoots and oscillates before settling, giving a
// springy feel; retarget every frame and the motion stays calm but
// responsive.
type OvershootInit struct {
	// Modular marks the value as angle-like: the difference is the shortest
	// signed arc and values wrap to (-pi, pi].
	Modular bool

	// StartValue is the value (and target) the motivator holds until the
	// first target is set.
	StartValue float32

	// MaxVelocity caps the speed of approach. Zero selects the default.
	MaxVelocity float32

	// AccelPerDifference scales acceleration by the remaining difference.
	// Zero selects the default.
	AccelPerDifference float32

	// WrongDirectionMultiplier boosts acceleration while the value is
	// moving away from the target, so direction changes feel snappy.
	// Zero selects the default.
	WrongDirectionMultiplier float32

	// AtTargetDistance and AtTargetVelocity bound the settle window: once
	// both the difference and the velocity are within them, the value locks
	// onto the target. Zero selects the defaults.
	AtTargetDistance float32
	AtTargetVelocity float32
}

// MotivatorType returns the processor type this descriptor targets.
func (OvershootInit) MotivatorType() motivator.Type { return OvershootType }

// overshootSlot is the per-motivator state, settings included so slots with
// different spring characteristics can share one processor.
type overshootSlot struct {
	modular bool

	value, velocity float32
	targetValue     float32

	maxVelocity        float32
	accelPerDifference float32
	wrongDirectionMult float32
	atTargetDistance   float32
	atTargetVelocity   float32
}

// overshootProcessor implements motivator.ScalarProcessor.
type overshootProcessor struct {
	motivator.ProcessorBase
	slots []overshootSlot
}

var _ motivator.ScalarProcessor = &overshootProcessor{}

// NewOvershootProcessor creates the overshoot processor. Register it with
// the engine to make OvershootType initializable.
//
// Returns:
//   - motivator.ScalarProcessor: the new processor
func NewOvershootProcessor() motivator.ScalarProcessor {
	return &overshootProcessor{}
}

func (p *overshootProcessor) Type() motivator.Type { return OvershootType }

func (p *overshootProcessor) Dimensions() int { return 1 }

func (p *overshootProcessor) InitializeMotivator(init motivator.Init, _ motivator.Engine, m *motivator.Motivator) error {
	oi, ok := init.(OvershootInit)
	if !ok {
		return fmt.Errorf("overshoot: unsupported init descriptor %T", init)
	}
	index := p.BindMotivator(p, m)
	slot := overshootSlot{
		modular:            oi.Modular,
		value:              oi.StartValue,
		targetValue:        oi.StartValue,
		maxVelocity:        common.Coalesce(oi.MaxVelocity, DefaultMaxVelocity),
		accelPerDifference: common.Coalesce(oi.AccelPerDifference, DefaultAccelPerDifference),
		wrongDirectionMult: common.Coalesce(oi.WrongDirectionMultiplier, DefaultWrongDirectionMultiplier),
		atTargetDistance:   common.Coalesce(oi.AtTargetDistance, DefaultAtTargetDistance),
		atTargetVelocity:   common.Coalesce(oi.AtTargetVelocity, DefaultAtTargetVelocity),
	}
	if int(index) == len(p.slots) {
		p.slots = append(p.slots, slot)
	} else {
		p.slots[index] = slot
	}
	return nil
}

func (p *overshootProcessor) RemoveMotivator(index motivator.Index) {
	if !p.Occupied(index) {
		return
	}
	p.ProcessorBase.RemoveMotivator(index)
	p.slots[index] = overshootSlot{}
}

func (p *overshootProcessor) ReleaseAll() {
	p.ProcessorBase.ReleaseAll()
	p.slots = p.slots[:0]
}

// AdvanceFrame integrates every occupied slot by delta: accelerate towards
// the target proportionally to the remaining difference, clamp the
// velocity, step the value, and settle once inside the at-target window.
func (p *overshootProcessor) AdvanceFrame(delta float32) {
	for i := range p.slots {
		if !p.Occupied(motivator.Index(i)) {
			continue
		}
		s := &p.slots[i]
		diff := p.difference(s)

		if abs32(diff) <= s.atTargetDistance && abs32(s.velocity) <= s.atTargetVelocity {
			s.value = s.targetValue
			s.velocity = 0
			continue
		}

		accel := diff * s.accelPerDifference
		if s.velocity != 0 && (s.velocity < 0) != (diff < 0) {
			accel *= s.wrongDirectionMult
		}
		s.velocity = common.Clamp(s.velocity+accel*delta, -s.maxVelocity, s.maxVelocity)
		s.value += s.velocity * delta
		if s.modular {
			s.value = common.WrapAngle(s.value)
		}
	}
}

func (p *overshootProcessor) difference(s *overshootSlot) float32 {
	if s.modular {
		return common.AngleDifference(s.targetValue, s.value)
	}
	return s.targetValue - s.value
}

func (p *overshootProcessor) Value(index motivator.Index) float32 {
	return p.slots[index].value
}

func (p *overshootProcessor) Velocity(index motivator.Index) float32 {
	return p.slots[index].velocity
}

func (p *overshootProcessor) TargetValue(index motivator.Index) float32 {
	return p.slots[index].targetValue
}

// TargetVelocity is always zero: the spring settles at rest.
func (p *overshootProcessor) TargetVelocity(index motivator.Index) float32 {
	return 0
}

func (p *overshootProcessor) Difference(index motivator.Index) float32 {
	return p.difference(&p.slots[index])
}

// TargetTime estimates the remaining travel time as distance over maximum
// velocity. The spring has no fixed arrival time, so this is a lower bound.
func (p *overshootProcessor) TargetTime(index motivator.Index) float32 {
	s := &p.slots[index]
	return abs32(p.difference(s)) / s.maxVelocity
}

// SetTarget retargets the spring. Waypoint times and velocities are
// irrelevant to this algorithm and are ignored; the last waypoint's value
// becomes the target.
func (p *overshootProcessor) SetTarget(index motivator.Index, t motivator.Target1f) error {
	s := &p.slots[index]
	if t.HasCurrent {
		s.value = t.CurrentValue
		s.velocity = t.CurrentVelocity
		if s.modular {
			s.value = common.WrapAngle(s.value)
		}
		s.targetValue = s.value
	}
	if len(t.Waypoints) > 0 {
		s.targetValue = t.Waypoints[len(t.Waypoints)-1].Value
		if s.modular {
			s.targetValue = common.WrapAngle(s.targetValue)
		}
	}
	return nil
}

// SetSpline is not supported: the spring drives towards targets only.
func (p *overshootProcessor) SetSpline(index motivator.Index, _ motivator.SplinePlayback) error {
	return fmt.Errorf("overshoot: %w", motivator.ErrSplineUnsupported)
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
