// Package main provides the CLI entry point for callbench, a timed-loop
// harness comparing a call-overhead bound workload with a compute bound one.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/weiihann/callbench/harness"
	"github.com/weiihann/callbench/report"
	"github.com/weiihann/callbench/workload"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger, os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type runConfig struct {
	configPath   string
	fastIters    int
	slowIters    int
	computeIters int
	seed         uint64
	format       string
	name         string
}

func newRootCmd(logger *slog.Logger, out io.Writer) *cobra.Command {
	var cfg runConfig

	root := &cobra.Command{
		Use:   "callbench",
		Short: "Compare call overhead against computation cost",
		Long: `Callbench times one million calls of a trivial eight-argument sum and
one hundred calls of a one-million-round 64-bit mixing function, then prints
total and per-call durations for both batches.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBenchmark(cmd, logger, out, cfg)
		},
	}

	flags := root.Flags()
	flags.StringVar(&cfg.configPath, "config", "",
		"Path to a YAML file overriding batch sizes and seed")
	flags.IntVar(&cfg.fastIters, "fast-iters", workload.FastIters,
		"Number of fast_sum8 calls")
	flags.IntVar(&cfg.slowIters, "slow-iters", workload.SlowIters,
		"Number of slow_compute calls")
	flags.IntVar(&cfg.computeIters, "compute-iters", workload.ComputeIters,
		"Mixing rounds per slow_compute call")
	flags.Uint64Var(&cfg.seed, "seed", 0,
		"Seed of the first slow_compute call")
	flags.StringVar(&cfg.format, "format", "text",
		"Output format: text, json, cbor")
	flags.StringVar(&cfg.name, "name", "Go",
		"Harness name shown in the report header")

	root.AddCommand(newMixCmd(out))

	return root
}

func newMixCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "mix <seed> [iterations]",
		Short: "Print slow_compute(seed, iterations) as hex",
		Long: `Mix runs the slow_compute function once and prints its result, which
is useful for pinning reference values across implementations.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			seed, err := strconv.ParseUint(args[0], 0, 64)
			if err != nil {
				return fmt.Errorf("parse seed %q: %w", args[0], err)
			}

			iters := workload.ComputeIters
			if len(args) == 2 {
				iters, err = strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("parse iterations %q: %w", args[1], err)
				}

				if iters < 0 {
					return &harness.ConfigError{Field: "iterations", Value: iters}
				}
			}

			fmt.Fprintf(out, "%#016x\n", workload.SlowCompute(seed, iters))

			return nil
		},
	}
}

func resolveConfig(cmd *cobra.Command, cfg runConfig) (workload.Config, error) {
	wcfg := workload.DefaultConfig()

	if cfg.configPath != "" {
		loaded, err := workload.LoadConfig(cfg.configPath)
		if err != nil {
			return wcfg, err
		}

		wcfg = loaded
	}

	// Explicit flags take precedence over the config file.
	flags := cmd.Flags()
	if cfg.configPath == "" || flags.Changed("fast-iters") {
		wcfg.FastIters = cfg.fastIters
	}
	if cfg.configPath == "" || flags.Changed("slow-iters") {
		wcfg.SlowIters = cfg.slowIters
	}
	if cfg.configPath == "" || flags.Changed("compute-iters") {
		wcfg.ComputeIters = cfg.computeIters
	}
	if cfg.configPath == "" || flags.Changed("seed") {
		wcfg.Seed = cfg.seed
	}

	if err := wcfg.Validate(); err != nil {
		return wcfg, fmt.Errorf("configuration: %w", err)
	}

	return wcfg, nil
}

func runBenchmark(
	cmd *cobra.Command,
	logger *slog.Logger,
	out io.Writer,
	cfg runConfig,
) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch cfg.format {
	case "text", "json", "cbor":
	default:
		return fmt.Errorf("unknown format %q", cfg.format)
	}

	wcfg, err := resolveConfig(cmd, cfg)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting benchmark",
		slog.Int("fast_iters", wcfg.FastIters),
		slog.Int("slow_iters", wcfg.SlowIters),
		slog.Int("compute_iters", wcfg.ComputeIters),
		slog.Uint64("seed", wcfg.Seed),
	)

	results, err := harness.NewRunner(logger).Run(ctx, workload.Batches(wcfg))
	if err != nil {
		return fmt.Errorf("run benchmark: %w", err)
	}

	switch cfg.format {
	case "json":
		err = report.GenerateJSON(out, results)
	case "cbor":
		err = report.GenerateCBOR(out, results)
	default:
		err = report.Generate(out, cfg.name, results)
	}

	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	logger.InfoContext(ctx, "benchmark complete")

	return nil
}
