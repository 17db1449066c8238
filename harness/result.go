// Package harness runs workloads in timed loops and records how long
// each batch took.
package harness

import "time"

// Unit selects how per-call durations are displayed.
type Unit string

const (
	Nanoseconds  Unit = "ns"
	Milliseconds Unit = "ms"
)

// Result holds the timing of a single batch.
type Result struct {
	Name        string        `json:"name" cbor:"name"`
	Description string        `json:"description" cbor:"description"`
	Calls       int           `json:"calls" cbor:"calls"`
	Total       time.Duration `json:"total_ns" cbor:"total_ns"`
	Unit        Unit          `json:"unit" cbor:"unit"`
	Last        uint64        `json:"last" cbor:"last"`
}

// TotalNs returns the batch duration in nanoseconds.
func (r Result) TotalNs() int64 {
	return r.Total.Nanoseconds()
}

// TotalMs returns the batch duration in milliseconds.
func (r Result) TotalMs() float64 {
	return float64(r.Total.Nanoseconds()) / float64(time.Millisecond)
}

// PerCallNs returns the average duration of one call in nanoseconds.
func (r Result) PerCallNs() float64 {
	if r.Calls <= 0 {
		return 0
	}

	return float64(r.Total.Nanoseconds()) / float64(r.Calls)
}

// PerCall returns the average duration of one call in r.Unit.
func (r Result) PerCall() float64 {
	if r.Unit == Milliseconds {
		return r.PerCallNs() / float64(time.Millisecond)
	}

	return r.PerCallNs()
}
