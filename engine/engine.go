// package engine hosts the MotiveEngine: the registry that routes motivator
// initialization to the processor responsible for each type, and the frame
// clock that advances every processor's whole population once per tick.
package engine

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/motive-go/engine/motivator"
	"github.com/Carmen-Shannon/motive-go/engine/profiler"
)

var (
	// ErrUnknownType is returned when no processor is registered for a
	// requested motivator type.
	ErrUnknownType = errors.New("engine: no processor registered for motivator type")

	// ErrDuplicateType is returned when a processor is registered for a
	// type that already has one.
	ErrDuplicateType = errors.New("engine: processor already registered for motivator type")
)

// motiveEngine implements the MotiveEngine interface.
type motiveEngine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	// running is read by SetTickRate from client goroutines while Run owns
	// the tick loop, so it needs atomic access.
	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	processors map[motivator.Type]motivator.Processor

	// phases holds the registered processors grouped by ascending
	// dimensionality. Scalar processors (1 channel) advance before matrix
	// processors (16 channels), so composed transforms always read child
	// values from the current frame. Rebuilt on registration.
	phases [][]motivator.Processor

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)

	// advancePool manages a bounded set of reusable goroutines that advance
	// the processors of one phase in parallel. Workers persist across
	// frames, avoiding per-frame goroutine spawn/teardown overhead.
	advancePool    worker.DynamicWorkerPool
	advanceWorkers int
}

// MotiveEngine owns the processors and drives them frame by frame. Client
// code initializes motivators against it (it satisfies motivator.Engine)
// and either calls AdvanceFrame from its own loop or lets Run tick at a
// fixed rate.
//
// Registration and handle operations are single-threaded with respect to
// AdvanceFrame: advance shards whole processors across workers, but nothing
// else may mutate engine or handle state while a frame is in flight.
type MotiveEngine interface {
	// RegisterProcessor registers a processor as responsible for its type.
	//
	// Parameters:
	//   - p: the processor to register
	//
	// Returns:
	//   - error: ErrDuplicateType if the type already has a processor
	RegisterProcessor(p motivator.Processor) error

	// Processor returns the processor responsible for the given type.
	// This is the resolution step behind Motivator.Initialize.
	//
	// Parameters:
	//   - t: the motivator type to resolve
	//
	// Returns:
	//   - motivator.Processor: the responsible processor
	//   - error: ErrUnknownType if none is registered
	Processor(t motivator.Type) (motivator.Processor, error)

	// AdvanceFrame advances every registered processor's population by the
	// elapsed time, scalar processors first so matrix compositions see
	// current child values.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame, in caller-defined units
	AdvanceFrame(deltaTime float32)

	// Run starts the fixed-rate tick loop, calling AdvanceFrame with the
	// measured delta each tick (blocks until Quit is called).
	Run()

	// Quit signals the tick loop to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Release forcibly invalidates every motivator of every registered
	// processor. Call during teardown so no handle is left referencing a
	// dead processor; afterwards all handles report Valid() == false.
	Release()

	// SetTickRate sets the tick rate in frames per second.
	// If the engine is running, the change takes effect immediately.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers a function called after each tick's
	// AdvanceFrame. Use this for game logic that reads motivator values.
	//
	// Parameters:
	//   - callback: function receiving the tick's delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// EnableProfiler enables advance-loop profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables advance-loop profiling output.
	DisableProfiler()
}

// Ensure motiveEngine implements both the public interface and the
// resolution contract the motivator package initializes against.
var (
	_ MotiveEngine     = &motiveEngine{}
	_ motivator.Engine = &motiveEngine{}
)

// NewMotiveEngine creates a new MotiveEngine with the provided options.
// Options are applied directly to the engine struct via the option-builder
// pattern. With WithAdvanceWorkers(n > 1), a persistent worker pool advances
// the processors of each dimensionality phase in parallel.
//
// Parameters:
//   - options: functional options for engine configuration (processors, tick rate, workers, profiling)
//
// Returns:
//   - MotiveEngine: the newly created engine
func NewMotiveEngine(options ...EngineBuilderOption) MotiveEngine {
	e := &motiveEngine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		processors:      make(map[motivator.Type]motivator.Processor),
		profiler:        profiler.NewProfiler(),
		engineTickRate:  time.Second / 60,
		advanceWorkers:  1,
	}

	for _, opt := range options {
		opt(e)
	}

	// Initialize the advance pool after options so WithAdvanceWorkers can
	// override the default. Queue size of 256 accommodates typical
	// processor counts with headroom.
	if e.advanceWorkers > 1 {
		e.advancePool = worker.NewDynamicWorkerPool(e.advanceWorkers, 256, 1*time.Second)
	}

	return e
}

func (e *motiveEngine) RegisterProcessor(p motivator.Processor) error {
	t := p.Type()
	if _, exists := e.processors[t]; exists {
		return fmt.Errorf("register %q: %w", t, ErrDuplicateType)
	}
	e.processors[t] = p
	e.rebuildPhases()
	return nil
}

func (e *motiveEngine) Processor(t motivator.Type) (motivator.Processor, error) {
	p, ok := e.processors[t]
	if !ok {
		return nil, fmt.Errorf("resolve %q: %w", t, ErrUnknownType)
	}
	return p, nil
}

// rebuildPhases regroups the registered processors by ascending
// dimensionality. Ties advance in deterministic type order.
func (e *motiveEngine) rebuildPhases() {
	all := make([]motivator.Processor, 0, len(e.processors))
	for _, p := range e.processors {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Dimensions() != all[j].Dimensions() {
			return all[i].Dimensions() < all[j].Dimensions()
		}
		return all[i].Type() < all[j].Type()
	})

	e.phases = e.phases[:0]
	for i := 0; i < len(all); {
		j := i + 1
		for j < len(all) && all[j].Dimensions() == all[i].Dimensions() {
			j++
		}
		e.phases = append(e.phases, all[i:j])
		i = j
	}
}

func (e *motiveEngine) AdvanceFrame(deltaTime float32) {
	var start time.Time
	if e.profilingEnabled {
		start = time.Now()
	}

	for _, phase := range e.phases {
		if e.advancePool == nil || len(phase) < 2 {
			for _, p := range phase {
				p.AdvanceFrame(deltaTime)
			}
			continue
		}

		// Parallel advance: each processor owns disjoint state, so the
		// processors of one phase can advance concurrently. A WaitGroup
		// provides the per-phase barrier; the pool's workers are reused
		// across frames.
		var wg sync.WaitGroup
		for i, p := range phase {
			wg.Add(1)
			pCap := p // capture for closure
			e.advancePool.SubmitTask(worker.Task{
				ID: i,
				Do: func() (any, error) {
					defer wg.Done()
					pCap.AdvanceFrame(deltaTime)
					return nil, nil
				},
			})
		}
		wg.Wait()
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(time.Since(start))
	}
}

func (e *motiveEngine) Run() {
	e.running.Store(true)
	e.wg.Add(2)
	go e.handleAdvance()
	go e.handleQuit()
	e.wg.Wait()
	e.running.Store(false)
}

// Quit signals the tick loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *motiveEngine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *motiveEngine) Release() {
	for _, phase := range e.phases {
		for _, p := range phase {
			p.ReleaseAll()
		}
	}
}

// handleAdvance runs the fixed-rate tick loop in its own goroutine.
// Advances all processors each tick, fires the tick callback, and listens
// for dynamic rate changes via tickRateChannel. Exits when the quit channel
// is closed.
func (e *motiveEngine) handleAdvance() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			e.AdvanceFrame(dt)
			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *motiveEngine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// SetTickRate sets the tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *motiveEngine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Second / time.Duration(fps)

	if e.running.Load() {
		// Send to channel for immediate update in the running tick loop.
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			// Channel has a pending update, drain and send new value
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		// Engine not running, just update the field
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers a function called after each tick's AdvanceFrame.
func (e *motiveEngine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// EnableProfiler enables advance-loop profiling output to the log.
func (e *motiveEngine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables advance-loop profiling output.
func (e *motiveEngine) DisableProfiler() {
	e.profilingEnabled = false
}
