package motivator

import (
	"fmt"
	"math"
)

// SplineNode is one control point of a motion curve: the value and its
// derivative at a point in time. Times are in caller-defined units.
type SplineNode struct {
	Time       float32
	Value      float32
	Derivative float32
}

// Spline is a piecewise cubic Hermite curve through a series of nodes.
// Between adjacent nodes the value is interpolated so that both endpoint
// values and endpoint derivatives are matched exactly.
type Spline struct {
	nodes []SplineNode
}

// NewSpline creates a Spline from the given nodes. At least two nodes are
// required and node times must be strictly increasing.
//
// Parameters:
//   - nodes: the curve's control points, in time order
//
// Returns:
//   - *Spline: the new spline
//   - error: error if the node list is too short or out of order
func NewSpline(nodes ...SplineNode) (*Spline, error) {
	if len(nodes) < 2 {
		return nil, fmt.Errorf("spline: need at least 2 nodes, got %d", len(nodes))
	}
	for i := 1; i < len(nodes); i++ {
		if nodes[i].Time <= nodes[i-1].Time {
			return nil, fmt.Errorf("spline: node times must be strictly increasing (node %d: %v <= %v)",
				i, nodes[i].Time, nodes[i-1].Time)
		}
	}
	s := &Spline{nodes: make([]SplineNode, len(nodes))}
	copy(s.nodes, nodes)
	return s, nil
}

// StartTime returns the time of the first node.
func (s *Spline) StartTime() float32 { return s.nodes[0].Time }

// EndTime returns the time of the last node.
func (s *Spline) EndTime() float32 { return s.nodes[len(s.nodes)-1].Time }

// Duration returns EndTime minus StartTime.
func (s *Spline) Duration() float32 { return s.EndTime() - s.StartTime() }

// EndValue returns the value at the last node.
func (s *Spline) EndValue() float32 { return s.nodes[len(s.nodes)-1].Value }

// EndDerivative returns the derivative at the last node.
func (s *Spline) EndDerivative() float32 { return s.nodes[len(s.nodes)-1].Derivative }

// Evaluate samples the curve at time t. Times before the first node return
// the first node's state; times after the last node return the last node's.
//
// Parameters:
//   - t: the sample time, in the same units as the node times
//
// Returns:
//   - value: the curve value at t
//   - derivative: the curve's rate of change at t
func (s *Spline) Evaluate(t float32) (value, derivative float32) {
	first := s.nodes[0]
	last := s.nodes[len(s.nodes)-1]
	if t <= first.Time {
		return first.Value, first.Derivative
	}
	if t >= last.Time {
		return last.Value, last.Derivative
	}

	// Find the segment containing t. Node counts are small, so a linear
	// scan beats the constant factor of a binary search in practice.
	seg := 0
	for seg < len(s.nodes)-2 && s.nodes[seg+1].Time <= t {
		seg++
	}
	n0, n1 := s.nodes[seg], s.nodes[seg+1]

	h := n1.Time - n0.Time
	u := (t - n0.Time) / h
	u2 := u * u
	u3 := u2 * u

	// Cubic Hermite basis.
	h00 := 2*u3 - 3*u2 + 1
	h10 := u3 - 2*u2 + u
	h01 := -2*u3 + 3*u2
	h11 := u3 - u2
	value = h00*n0.Value + h10*h*n0.Derivative + h01*n1.Value + h11*h*n1.Derivative

	d00 := 6*u2 - 6*u
	d10 := 3*u2 - 4*u + 1
	d01 := -6*u2 + 6*u
	d11 := 3*u2 - 2*u
	derivative = d00*n0.Value/h + d10*n0.Derivative + d01*n1.Value/h + d11*n1.Derivative
	return value, derivative
}

// LoopTime maps an absolute playback time into the spline's time range,
// wrapping past the end back to the start.
//
// Parameters:
//   - t: the absolute playback time
//
// Returns:
//   - float32: the equivalent time inside [StartTime, EndTime)
func (s *Spline) LoopTime(t float32) float32 {
	d := s.Duration()
	if d <= 0 {
		return s.StartTime()
	}
	offset := float32(math.Mod(float64(t-s.StartTime()), float64(d)))
	if offset < 0 {
		offset += d
	}
	return s.StartTime() + offset
}

// SplinePlayback describes playback of a Spline: the curve to follow, the
// time within the curve to start at, and whether to repeat from the
// beginning once the end is reached.
type SplinePlayback struct {
	Spline    *Spline
	StartTime float32
	Repeat    bool
}
