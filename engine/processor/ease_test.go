package processor_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/motive-go/engine"
	"github.com/Carmen-Shannon/motive-go/engine/motivator"
	"github.com/Carmen-Shannon/motive-go/engine/processor"
)

// newTestEngine builds an engine with every shipped processor registered.
func newTestEngine() engine.MotiveEngine {
	return engine.NewMotiveEngine(
		engine.WithProcessor(processor.NewEaseProcessor()),
		engine.WithProcessor(processor.NewOvershootProcessor()),
		engine.WithProcessor(processor.NewMatrixProcessor()),
	)
}

// advance ticks the engine n times with a fixed delta.
func advance(e engine.MotiveEngine, n int, delta float32) {
	for i := 0; i < n; i++ {
		e.AdvanceFrame(delta)
	}
}

// deg converts degrees to radians as a float32.
func deg(d float64) float32 {
	return float32(d * math.Pi / 180)
}

func TestEase_HoldsStartValue(t *testing.T) {
	e := newTestEngine()
	m, err := motivator.NewScalarMotivator(processor.EaseInit{StartValue: 3}, e)
	require.NoError(t, err)

	advance(e, 10, 0.1)

	assert.Equal(t, float32(3), m.Value())
	assert.Equal(t, float32(0), m.Velocity())
	assert.Equal(t, float32(3), m.TargetValue())
	assert.Equal(t, float32(0), m.TargetTime())
}

func TestEase_ReachesTargetExactly(t *testing.T) {
	e := newTestEngine()
	m, err := motivator.NewScalarMotivator(processor.EaseInit{}, e)
	require.NoError(t, err)
	require.NoError(t, m.SetTarget(motivator.TargetValue(10, 1)))

	advance(e, 4, 0.25)

	assert.Equal(t, float32(10), m.Value(), "the waypoint value is hit exactly at its time budget")
	assert.Equal(t, float32(0), m.Velocity(), "arrival is at rest")
	assert.Equal(t, float32(0), m.TargetTime())
	assert.Equal(t, float32(0), m.Difference())
}

func TestEase_MidwayIsBetween(t *testing.T) {
	e := newTestEngine()
	m, err := motivator.NewScalarMotivator(processor.EaseInit{}, e)
	require.NoError(t, err)
	require.NoError(t, m.SetTarget(motivator.TargetValue(10, 1)))

	advance(e, 1, 0.5)

	assert.InDelta(t, 5, m.Value(), 1e-4, "ease-in-ease-out passes the midpoint at half time")
	assert.Greater(t, m.Velocity(), float32(0))
	assert.InDelta(t, 0.5, m.TargetTime(), 1e-5)
}

func TestEase_ArrivalVelocity(t *testing.T) {
	e := newTestEngine()
	m, err := motivator.NewScalarMotivator(processor.EaseInit{}, e)
	require.NoError(t, err)
	require.NoError(t, m.SetTarget(motivator.TargetValueVelocity(10, 2, 1)))

	assert.Equal(t, float32(2), m.TargetVelocity())

	advance(e, 4, 0.25)

	assert.Equal(t, float32(10), m.Value())
	assert.Equal(t, float32(2), m.Velocity(), "the waypoint velocity is hit exactly on arrival")
}

func TestEase_WaypointQueue(t *testing.T) {
	e := newTestEngine()
	m, err := motivator.NewScalarMotivator(processor.EaseInit{}, e)
	require.NoError(t, err)
	require.NoError(t, m.SetTarget(motivator.Target1f{
		Waypoints: []motivator.Waypoint{
			{Value: 5, Time: 0.5},
			{Value: -1, Time: 0.5},
		},
	}))

	advance(e, 2, 0.25)
	assert.Equal(t, float32(5), m.Value(), "first waypoint hit at its time budget")
	assert.Equal(t, float32(-1), m.TargetValue(), "second leg already queued up")

	advance(e, 2, 0.25)
	assert.Equal(t, float32(-1), m.Value())
}

func TestEase_WaypointBoundaryCarriesRemainder(t *testing.T) {
	e := newTestEngine()
	m, err := motivator.NewScalarMotivator(processor.EaseInit{}, e)
	require.NoError(t, err)
	require.NoError(t, m.SetTarget(motivator.Target1f{
		Waypoints: []motivator.Waypoint{
			{Value: 1, Time: 0.5},
			{Value: -1, Time: 0.5},
		},
	}))

	// 0.4s ticks never line up with the 0.5s budgets: the second tick
	// crosses the first waypoint with 0.3s left over, which must land the
	// second leg 0.3s in rather than restarting it from zero.
	advance(e, 2, 0.4)
	assert.InDelta(t, 0.2, m.TargetTime(), 1e-5, "0.8s elapsed of a 1.0s queue leaves 0.2s")
	// Hermite from (1, at rest) to (-1, at rest), 0.3s into a 0.5s leg.
	assert.InDelta(t, -0.296, m.Value(), 1e-4)

	advance(e, 1, 0.4)
	assert.Equal(t, float32(-1), m.Value(), "the queue's total duration is exact")
	assert.Equal(t, float32(0), m.TargetTime())
}

func TestEase_LargeDeltaCrossesMultipleWaypoints(t *testing.T) {
	e := newTestEngine()
	m, err := motivator.NewScalarMotivator(processor.EaseInit{}, e)
	require.NoError(t, err)
	require.NoError(t, m.SetTarget(motivator.Target1f{
		Waypoints: []motivator.Waypoint{
			{Value: 1, Time: 0.1},
			{Value: 2, Time: 0.1},
			{Value: 3, Time: 0.1},
		},
	}))

	// One frame swallows the first two legs whole; the remainder puts the
	// third leg exactly at its midpoint.
	advance(e, 1, 0.25)
	assert.InDelta(t, 2.5, m.Value(), 1e-4)
	assert.InDelta(t, 0.05, m.TargetTime(), 1e-5)

	advance(e, 1, 0.05)
	assert.Equal(t, float32(3), m.Value())
}

func TestEase_SnapWithCurrentOverride(t *testing.T) {
	e := newTestEngine()
	m, err := motivator.NewScalarMotivator(processor.EaseInit{}, e)
	require.NoError(t, err)
	require.NoError(t, m.SetTarget(motivator.TargetValue(10, 1)))
	advance(e, 1, 0.3)

	// An empty waypoint list with a current override snaps and holds.
	require.NoError(t, m.SetTarget(motivator.Target1f{HasCurrent: true, CurrentValue: 8}))

	assert.Equal(t, float32(8), m.Value())
	assert.Equal(t, float32(8), m.TargetValue())
	assert.Equal(t, float32(0), m.TargetTime())

	advance(e, 5, 0.1)
	assert.Equal(t, float32(8), m.Value(), "snap clears the motion in progress")
}

func TestEase_CurrentToTarget(t *testing.T) {
	e := newTestEngine()
	m, err := motivator.NewScalarMotivator(processor.EaseInit{StartValue: 99}, e)
	require.NoError(t, err)
	require.NoError(t, m.SetTarget(motivator.CurrentToTarget(0, 0, 4, 0, 1)))

	assert.Equal(t, float32(0), m.Value(), "current override applies before the leg starts")

	advance(e, 4, 0.25)
	assert.Equal(t, float32(4), m.Value())
}

func TestEase_ZeroDurationLandsImmediately(t *testing.T) {
	e := newTestEngine()
	m, err := motivator.NewScalarMotivator(processor.EaseInit{}, e)
	require.NoError(t, err)
	require.NoError(t, m.SetTarget(motivator.TargetValue(5, 0)))

	assert.Equal(t, float32(5), m.Value())
	assert.Equal(t, float32(0), m.TargetTime())
}

func TestEase_ModularShortestArc(t *testing.T) {
	e := newTestEngine()
	m, err := motivator.NewScalarMotivator(processor.EaseInit{Modular: true, StartValue: deg(-170)}, e)
	require.NoError(t, err)
	require.NoError(t, m.SetTarget(motivator.TargetValue(deg(170), 1)))

	// The short way from -170 to +170 degrees is -20 degrees, through the
	// wrap at +-180.
	assert.InDelta(t, deg(-20), m.Difference(), 1e-5)

	advance(e, 1, 0.5)
	assert.InDelta(t, math.Pi, math.Abs(float64(m.Value())), 1e-3,
		"halfway through the arc the value is at the +-180 seam")

	advance(e, 2, 0.5)
	assert.InDelta(t, deg(170), m.Value(), 1e-4)
	assert.InDelta(t, 0, m.Difference(), 1e-4)
}

func TestEase_ModularValueStaysWrapped(t *testing.T) {
	e := newTestEngine()
	m, err := motivator.NewScalarMotivator(processor.EaseInit{Modular: true}, e)
	require.NoError(t, err)
	require.NoError(t, m.SetTarget(motivator.TargetValue(deg(170), 1)))

	for i := 0; i < 20; i++ {
		e.AdvanceFrame(0.1)
		v := float64(m.Value())
		assert.LessOrEqual(t, v, float64(math.Pi)+1e-6)
		assert.Greater(t, v, -float64(math.Pi)-1e-6)
	}
}

func TestEase_SplinePlayback(t *testing.T) {
	e := newTestEngine()
	m, err := motivator.NewScalarMotivator(processor.EaseInit{}, e)
	require.NoError(t, err)

	curve, err := motivator.NewSpline(
		motivator.SplineNode{Time: 0, Value: 0},
		motivator.SplineNode{Time: 1, Value: 2},
	)
	require.NoError(t, err)
	require.NoError(t, m.SetSpline(motivator.SplinePlayback{Spline: curve}))

	assert.Equal(t, float32(0), m.Value())
	assert.Equal(t, float32(2), m.TargetValue(), "target is the spline's end value")
	assert.InDelta(t, 1, m.TargetTime(), 1e-6)

	advance(e, 1, 0.5)
	assert.InDelta(t, 1, m.Value(), 1e-5)

	advance(e, 1, 0.6)
	assert.Equal(t, float32(2), m.Value(), "non-repeating playback clamps at the end")
	assert.Equal(t, float32(0), m.TargetTime())

	advance(e, 3, 0.5)
	assert.Equal(t, float32(2), m.Value())
}

func TestEase_SplineRepeats(t *testing.T) {
	e := newTestEngine()
	m, err := motivator.NewScalarMotivator(processor.EaseInit{}, e)
	require.NoError(t, err)

	curve, err := motivator.NewSpline(
		motivator.SplineNode{Time: 0, Value: 0},
		motivator.SplineNode{Time: 1, Value: 2},
	)
	require.NoError(t, err)
	require.NoError(t, m.SetSpline(motivator.SplinePlayback{Spline: curve, Repeat: true}))

	advance(e, 1, 1.25)

	wantValue, wantVelocity := curve.Evaluate(0.25)
	assert.InDelta(t, wantValue, m.Value(), 1e-5, "playback wraps past the end back to the start")
	assert.InDelta(t, wantVelocity, m.Velocity(), 1e-4)
}

func TestEase_SplineRequiresCurve(t *testing.T) {
	e := newTestEngine()
	m, err := motivator.NewScalarMotivator(processor.EaseInit{}, e)
	require.NoError(t, err)

	assert.Error(t, m.SetSpline(motivator.SplinePlayback{}))
}

func TestEase_SetTargetCancelsSpline(t *testing.T) {
	e := newTestEngine()
	m, err := motivator.NewScalarMotivator(processor.EaseInit{}, e)
	require.NoError(t, err)

	curve, err := motivator.NewSpline(
		motivator.SplineNode{Time: 0, Value: 0},
		motivator.SplineNode{Time: 1, Value: 2},
	)
	require.NoError(t, err)
	require.NoError(t, m.SetSpline(motivator.SplinePlayback{Spline: curve, Repeat: true}))
	advance(e, 1, 0.25)

	require.NoError(t, m.SetTarget(motivator.TargetValue(7, 0.5)))

	assert.Equal(t, float32(7), m.TargetValue())
	advance(e, 2, 0.25)
	assert.Equal(t, float32(7), m.Value())
}

func TestEase_ReinitializeResets(t *testing.T) {
	e := newTestEngine()
	m, err := motivator.NewScalarMotivator(processor.EaseInit{StartValue: 1}, e)
	require.NoError(t, err)
	require.NoError(t, m.SetTarget(motivator.TargetValue(10, 1)))
	advance(e, 1, 0.4)

	require.NoError(t, m.Initialize(processor.EaseInit{StartValue: -2}, e))

	assert.Equal(t, float32(-2), m.Value(), "reinitialization discards the old motion")
	assert.Equal(t, float32(0), m.Velocity())
}

func TestEase_RejectsForeignInit(t *testing.T) {
	e := newTestEngine()
	p, err := e.Processor(processor.EaseType)
	require.NoError(t, err)

	var m motivator.Motivator
	err = p.InitializeMotivator(processor.OvershootInit{}, e, &m)
	assert.Error(t, err, "the ease processor only accepts its own descriptor")
	assert.False(t, m.Valid())
}
