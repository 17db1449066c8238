package harness

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Op is a single workload invocation. Its return value is kept by the
// harness so the call cannot be optimized away.
type Op func() uint64

// Batch describes a fixed number of back-to-back invocations of Op.
type Batch struct {
	Name        string
	Description string
	Calls       int
	Unit        Unit
	Op          Op
}

// ConfigError reports an iteration count that cannot be measured.
type ConfigError struct {
	Field string
	Value int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %d (must be > 0)", e.Field, e.Value)
}

// Measure invokes op iterations times and returns the elapsed time.
// Only the invocation loop is timed.
func Measure(op Op, iterations int) (Result, error) {
	if iterations <= 0 {
		return Result{}, &ConfigError{Field: "iterations", Value: iterations}
	}

	var last uint64

	start := time.Now()

	for i := 0; i < iterations; i++ {
		last = op()
	}

	elapsed := time.Since(start)

	return Result{
		Calls: iterations,
		Total: elapsed,
		Unit:  Nanoseconds,
		Last:  last,
	}, nil
}

// Runner measures a sequence of batches on the calling goroutine.
type Runner struct {
	Logger *slog.Logger
}

// NewRunner creates a Runner that logs batch boundaries to logger.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{Logger: logger}
}

// Validate checks every batch without measuring anything.
func Validate(batches []Batch) error {
	for _, b := range batches {
		if b.Op == nil {
			return fmt.Errorf("batch %s: nil op", b.Name)
		}

		if b.Calls <= 0 {
			return fmt.Errorf("batch %s: %w", b.Name,
				&ConfigError{Field: "calls", Value: b.Calls})
		}
	}

	return nil
}

// Run validates all batches, then measures them in order. A batch is
// never interrupted; ctx is only checked between batches.
func (r *Runner) Run(ctx context.Context, batches []Batch) ([]Result, error) {
	if len(batches) == 0 {
		return nil, fmt.Errorf("no batches to run")
	}

	if err := Validate(batches); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(batches))

	for _, b := range batches {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("before batch %s: %w", b.Name, err)
		}

		r.Logger.DebugContext(ctx, "starting batch",
			slog.String("batch", b.Name),
			slog.Int("calls", b.Calls),
		)

		result, err := Measure(b.Op, b.Calls)
		if err != nil {
			return nil, fmt.Errorf("measure %s: %w", b.Name, err)
		}

		result.Name = b.Name
		result.Description = b.Description

		if b.Unit != "" {
			result.Unit = b.Unit
		}

		r.Logger.InfoContext(ctx, "batch finished",
			slog.String("batch", b.Name),
			slog.Duration("elapsed", result.Total),
		)

		results = append(results, result)
	}

	return results, nil
}
