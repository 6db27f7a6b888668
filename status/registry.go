// Package status is the atomic telemetry registry read by the HUD and the observer server
package status

import (
	"sort"
	"strings"
	"sync/atomic"
)

// Registry groups metric maps by value type
// Systems cache pointers at construction; update loops write atomics directly
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Export copies metrics under prefix into a flat map keyed by name, an empty prefix exports all
func (r *Registry) Export(prefix string) map[string]any {
	out := make(map[string]any)
	r.Bools.Range(prefix, func(k string, p *atomic.Bool) { out[k] = p.Load() })
	r.Ints.Range(prefix, func(k string, p *atomic.Int64) { out[k] = p.Load() })
	r.Floats.Range(prefix, func(k string, p *AtomicFloat) { out[k] = p.Get() })
	r.Strings.Range(prefix, func(k string, p *AtomicString) { out[k] = p.Load() })
	return out
}

// Subsystems lists the distinct first key segments in sorted order
func (r *Registry) Subsystems() []string {
	seen := make(map[string]struct{})
	for k := range r.Export("") {
		head, _, _ := strings.Cut(k, ".")
		seen[head] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
