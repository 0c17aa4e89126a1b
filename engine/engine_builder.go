package engine

import (
	"fmt"
	"time"

	"github.com/Carmen-Shannon/motive-go/engine/motivator"
)

// EngineBuilderOption is a functional option for configuring a MotiveEngine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*motiveEngine)

// WithProcessor registers a processor during engine construction.
// Panics on a duplicate type: registering two processors for one type is a
// construction-time misconfiguration, not a runtime condition.
//
// Parameters:
//   - p: the processor to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProcessor(p motivator.Processor) EngineBuilderOption {
	return func(e *motiveEngine) {
		if err := e.RegisterProcessor(p); err != nil {
			panic(fmt.Sprintf("engine: %v", err))
		}
	}
}

// WithTickRate sets the tick rate in frames per second for the Run loop.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *motiveEngine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Second / time.Duration(fps)
	}
}

// WithAdvanceWorkers sets the number of workers advancing processors in
// parallel within each dimensionality phase. Values <= 1 keep the advance
// loop serial (the default).
//
// Parameters:
//   - workers: the worker count for the advance pool
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithAdvanceWorkers(workers int) EngineBuilderOption {
	return func(e *motiveEngine) {
		if workers < 1 {
			workers = 1
		}
		e.advanceWorkers = workers
	}
}

// WithProfiling enables or disables advance-loop profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *motiveEngine) {
		e.profilingEnabled = enabled
	}
}

// WithTickCallback registers the post-advance tick callback during engine
// construction.
//
// Parameters:
//   - callback: function receiving each tick's delta time in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickCallback(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *motiveEngine) {
		e.tickCallback = callback
	}
}
