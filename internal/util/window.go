package util

import "github.com/asecurityteam/rolling"

// RollingWindow keeps the last N appended values.
// It is not safe for concurrent use.
type RollingWindow struct {
	policy *rolling.PointPolicy
	size   int
	filled int
}

func CreateRollingWindow(size int) *RollingWindow {
	if size < 1 {
		size = 1
	}
	return &RollingWindow{
		policy: rolling.NewPointPolicy(rolling.NewWindow(size)),
		size:   size,
	}
}

func (w *RollingWindow) Append(value float64) {
	w.policy.Append(value)
	if w.filled < w.size {
		w.filled++
	}
}

// Len returns the number of values currently held by the window
func (w *RollingWindow) Len() int {
	return w.filled
}

func (w *RollingWindow) Max() float64 {
	return w.reduce(rolling.Max)
}

func (w *RollingWindow) Min() float64 {
	return w.reduce(rolling.Min)
}

func (w *RollingWindow) Avg() float64 {
	return w.reduce(rolling.Avg)
}

// reduce only looks at buckets that received a value, the policy
// pre-allocates the remaining ones with zeros.
func (w *RollingWindow) reduce(reducer func(rolling.Window) float64) float64 {
	if w.filled == 0 {
		return 0
	}
	filled := w.filled
	return w.policy.Reduce(func(window rolling.Window) float64 {
		if filled < len(window) {
			window = window[:filled]
		}
		return reducer(window)
	})
}
