// Package report formats benchmark results as text, JSON or CBOR.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/weiihann/callbench/harness"
)

// Sentinel is a value no built-in workload produces. Comparing each
// batch's last result against it keeps that result observable.
const Sentinel uint64 = 0x5ca1ab1e0ddba11

const ruleWidth = 36

// Generate writes the human-readable report for results to w.
func Generate(w io.Writer, name string, results []harness.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to report")
	}

	fmt.Fprintf(w, "%s Native Benchmark\n", name)
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))

	for _, r := range results {
		fmt.Fprintln(w)

		if r.Description != "" {
			fmt.Fprintf(w, "%s (%s):\n", r.Name, r.Description)
		} else {
			fmt.Fprintf(w, "%s:\n", r.Name)
		}

		fmt.Fprintf(w, "  Total time:  %s ms\n", formatFixed(r.TotalMs()))
		fmt.Fprintf(w, "  Per call:    %s %s\n", formatFixed(r.PerCall()), unitLabel(r.Unit))

		if r.Last == Sentinel {
			fmt.Fprintf(w, "  sentinel: %#x\n", r.Last)
		}
	}

	return nil
}

// GenerateJSON writes results as JSON to w.
func GenerateJSON(w io.Writer, results []harness.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(results)
}

// GenerateCBOR writes results as a CBOR array to w.
func GenerateCBOR(w io.Writer, results []harness.Result) error {
	if err := cbor.NewEncoder(w).Encode(results); err != nil {
		return fmt.Errorf("encode CBOR: %w", err)
	}

	return nil
}

func formatFixed(v float64) string {
	return fmt.Sprintf("%8.2f", v)
}

func unitLabel(u harness.Unit) string {
	if u == "" {
		return string(harness.Nanoseconds)
	}

	return string(u)
}
