package motivator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stubType Type = "stub-1f"

type stubInit struct {
	start float32
}

func (stubInit) MotivatorType() Type { return stubType }

// stubProcessor is a minimal scalar processor for exercising the ownership
// protocol without pulling in a real interpolation algorithm.
type stubProcessor struct {
	ProcessorBase
	values []float32
}

var _ ScalarProcessor = &stubProcessor{}

func newStubProcessor() *stubProcessor { return &stubProcessor{} }

func (p *stubProcessor) Type() Type           { return stubType }
func (p *stubProcessor) Dimensions() int      { return 1 }
func (p *stubProcessor) AdvanceFrame(float32) {}

func (p *stubProcessor) InitializeMotivator(init Init, _ Engine, m *Motivator) error {
	si, ok := init.(stubInit)
	if !ok {
		return fmt.Errorf("stub: unsupported init descriptor %T", init)
	}
	index := p.BindMotivator(p, m)
	if int(index) == len(p.values) {
		p.values = append(p.values, si.start)
	} else {
		p.values[index] = si.start
	}
	return nil
}

func (p *stubProcessor) Value(index Index) float32       { return p.values[index] }
func (p *stubProcessor) Velocity(Index) float32          { return 0 }
func (p *stubProcessor) TargetValue(index Index) float32 { return p.values[index] }
func (p *stubProcessor) TargetVelocity(Index) float32    { return 0 }
func (p *stubProcessor) Difference(Index) float32        { return 0 }
func (p *stubProcessor) TargetTime(Index) float32        { return 0 }
func (p *stubProcessor) SetTarget(Index, Target1f) error { return nil }

func (p *stubProcessor) SetSpline(Index, SplinePlayback) error {
	return ErrSplineUnsupported
}

// stubEngine resolves processors from a plain map.
type stubEngine map[Type]Processor

func (e stubEngine) Processor(t Type) (Processor, error) {
	p, ok := e[t]
	if !ok {
		return nil, fmt.Errorf("stub engine: no processor for %q", t)
	}
	return p, nil
}

func newStubEngine(procs ...Processor) stubEngine {
	e := stubEngine{}
	for _, p := range procs {
		e[p.Type()] = p
	}
	return e
}

func TestMotivator_InitializeBinds(t *testing.T) {
	p := newStubProcessor()
	e := newStubEngine(p)

	m, err := NewMotivator(stubInit{start: 5}, e)
	require.NoError(t, err)

	assert.True(t, m.Valid())
	assert.Equal(t, stubType, m.Type())
	assert.Equal(t, 1, m.Dimensions())
	assert.Equal(t, Index(0), m.Index())
	assert.Equal(t, float32(5), p.Value(m.Index()))
}

func TestMotivator_InitializeUnknownType(t *testing.T) {
	e := newStubEngine()

	var m Motivator
	err := m.Initialize(stubInit{}, e)
	assert.Error(t, err)
	assert.False(t, m.Valid())
}

func TestMotivator_ZeroValueIsUnbound(t *testing.T) {
	var m Motivator
	assert.False(t, m.Valid())
	assert.Panics(t, func() { m.Type() }, "unbound use should fail fast")
	assert.Panics(t, func() { m.Dimensions() })
}

func TestMotivator_InvalidateIdempotent(t *testing.T) {
	p := newStubProcessor()
	e := newStubEngine(p)

	m, err := NewMotivator(stubInit{}, e)
	require.NoError(t, err)

	m.Invalidate()
	assert.False(t, m.Valid())
	assert.NotPanics(t, func() { m.Invalidate() }, "second invalidate is a no-op")

	var unbound Motivator
	assert.NotPanics(t, func() { unbound.Invalidate() })
}

func TestMotivator_TransferMovesOwnership(t *testing.T) {
	p := newStubProcessor()
	e := newStubEngine(p)

	a, err := NewMotivator(stubInit{start: 42}, e)
	require.NoError(t, err)
	index := a.Index()

	var b Motivator
	a.TransferTo(&b)

	assert.False(t, a.Valid(), "source is unbound after transfer")
	assert.True(t, b.Valid(), "destination owns the slot")
	assert.Equal(t, index, b.Index(), "slot data is untouched by the move")
	assert.Equal(t, float32(42), p.Value(b.Index()))
}

func TestMotivator_TransferReleasesDestinationSlot(t *testing.T) {
	p := newStubProcessor()
	e := newStubEngine(p)

	a, err := NewMotivator(stubInit{start: 1}, e)
	require.NoError(t, err)
	b, err := NewMotivator(stubInit{start: 2}, e)
	require.NoError(t, err)
	bOld := b.Index()

	a.TransferTo(b)

	assert.True(t, b.Valid())
	assert.False(t, p.Occupied(bOld), "destination's previous slot is freed")
	assert.Equal(t, float32(1), p.Value(b.Index()))
}

func TestMotivator_TransferFromUnboundInvalidates(t *testing.T) {
	p := newStubProcessor()
	e := newStubEngine(p)

	b, err := NewMotivator(stubInit{}, e)
	require.NoError(t, err)

	var a Motivator
	a.TransferTo(b)

	assert.False(t, b.Valid(), "moving from an unbound handle just invalidates the destination")
	assert.Equal(t, 0, occupiedCount(p), "no slot is left owned")
}

func TestMotivator_TransferToSelf(t *testing.T) {
	p := newStubProcessor()
	e := newStubEngine(p)

	m, err := NewMotivator(stubInit{}, e)
	require.NoError(t, err)

	m.TransferTo(m)
	assert.True(t, m.Valid(), "self-transfer must not release the slot")
}

func TestMotivator_StaleHandleAfterExternalTransfer(t *testing.T) {
	p := newStubProcessor()
	e := newStubEngine(p)

	old, err := NewMotivator(stubInit{start: 7}, e)
	require.NoError(t, err)
	index := old.Index()

	// Ownership moves via the processor directly, bypassing old's TransferTo
	// (this is what happens to a handle left behind by a container move).
	var fresh Motivator
	p.TransferMotivator(index, &fresh)

	assert.False(t, old.Valid(), "the bypassed handle is no longer the owner")
	assert.True(t, fresh.Valid())

	// Invalidating the stale handle must not disturb the new owner's slot.
	old.Invalidate()
	assert.True(t, fresh.Valid())
	assert.Equal(t, float32(7), p.Value(fresh.Index()))
}

func TestMotivator_ReinitializeReleasesPriorSlot(t *testing.T) {
	p := newStubProcessor()
	e := newStubEngine(p)

	m, err := NewMotivator(stubInit{start: 1}, e)
	require.NoError(t, err)
	first := m.Index()

	require.NoError(t, m.Initialize(stubInit{start: 2}, e))

	assert.True(t, m.Valid())
	assert.Equal(t, first, m.Index(), "the freed index is reused immediately")
	assert.Equal(t, float32(2), p.Value(m.Index()))
	assert.Equal(t, 1, occupiedCount(p), "the old slot did not leak")
}

func TestProcessorBase_IndexReuseIsLIFO(t *testing.T) {
	p := newStubProcessor()
	e := newStubEngine(p)

	handles := make([]*Motivator, 4)
	for i := range handles {
		m, err := NewMotivator(stubInit{start: float32(i)}, e)
		require.NoError(t, err)
		handles[i] = m
	}

	handles[1].Invalidate()
	handles[3].Invalidate()

	m, err := NewMotivator(stubInit{start: 9}, e)
	require.NoError(t, err)
	assert.Equal(t, Index(3), m.Index(), "most recently freed index is reused first")

	m2, err := NewMotivator(stubInit{start: 10}, e)
	require.NoError(t, err)
	assert.Equal(t, Index(1), m2.Index())
	assert.Equal(t, 4, p.Len(), "no new slots were appended")
}

func TestProcessorBase_SingleOwnerPerSlot(t *testing.T) {
	p := newStubProcessor()
	e := newStubEngine(p)

	a, err := NewMotivator(stubInit{}, e)
	require.NoError(t, err)
	b, err := NewMotivator(stubInit{}, e)
	require.NoError(t, err)

	// Shuffle ownership through a chain of transfers; at every step each
	// slot has at most one valid owner among all handles.
	var c, d Motivator
	steps := []func(){
		func() { a.TransferTo(&c) },
		func() { b.TransferTo(&d) },
		func() { c.TransferTo(a) },
		func() { d.TransferTo(&c) },
	}
	all := []*Motivator{a, b, &c, &d}
	for _, step := range steps {
		step()
		owners := map[Index]int{}
		for _, m := range all {
			if m.Valid() {
				owners[m.Index()]++
			}
		}
		for index, n := range owners {
			assert.Equal(t, 1, n, "slot %d has %d owners", index, n)
		}
	}
}

func TestProcessorBase_ReleaseAll(t *testing.T) {
	p := newStubProcessor()
	e := newStubEngine(p)

	a, err := NewMotivator(stubInit{}, e)
	require.NoError(t, err)
	b, err := NewMotivator(stubInit{}, e)
	require.NoError(t, err)

	p.ReleaseAll()

	assert.False(t, a.Valid())
	assert.False(t, b.Valid())
	assert.Equal(t, 0, p.Len())
}

func TestProcessorBase_RemoveOutOfRange(t *testing.T) {
	p := newStubProcessor()
	assert.NotPanics(t, func() {
		p.RemoveMotivator(-1)
		p.RemoveMotivator(99)
	})
}

// occupiedCount counts the occupied slots of a stub processor.
func occupiedCount(p *stubProcessor) int {
	n := 0
	for i := 0; i < p.Len(); i++ {
		if p.Occupied(Index(i)) {
			n++
		}
	}
	return n
}
