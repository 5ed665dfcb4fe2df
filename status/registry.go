// Package status publishes live playback metrics for the status bar, the
// inspection panel and diagnostic dumps
package status

import (
	"fmt"
	"sort"
	"strconv"
	"sync/atomic"
)

// Well-known metric keys written by the player
const (
	KeyFrame   = "frame"
	KeyFrames  = "frames"
	KeyRate    = "rate"
	KeyFPS     = "fps"
	KeyPaused  = "paused"
	KeyMode    = "mode"
	KeyTickUS  = "tick_us"
	KeyLoops   = "loops"
	KeyMuted   = "muted"
	KeyTrace   = "trace"
	KeyImpacts = "impacts"
)

// Registry is the metrics facade
// Writers cache pointers during init and store to the atomics each tick
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns the number of metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot returns every metric formatted as a string, keyed by name
func (r *Registry) Snapshot() map[string]string {
	out := make(map[string]string, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) { out[k] = strconv.FormatBool(v.Load()) })
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = strconv.FormatInt(v.Load(), 10) })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = strconv.FormatFloat(v.Get(), 'f', 2, 64) })
	r.Strings.Range(func(k string, v *AtomicString) { out[k] = v.Load() })
	return out
}

// Lines returns "key=value" pairs in key order
func (r *Registry) Lines() []string {
	snap := r.Snapshot()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = fmt.Sprintf("%s=%s", k, snap[k])
	}
	return lines
}
