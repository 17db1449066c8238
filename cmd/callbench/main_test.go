package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/weiihann/callbench/harness"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	root := newRootCmd(logger, &out)
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	err := root.Execute()

	return out.String(), err
}

func TestRunSmallBatches(t *testing.T) {
	out, err := execute(t,
		"--fast-iters", "1000", "--slow-iters", "2", "--compute-iters", "100")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	for _, want := range []string{
		"Go Native Benchmark",
		"fast_sum8 (1000 calls):",
		"slow_compute (2 calls, 100 iters each):",
		"Total time:",
		"Per call:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunInvalidIterations(t *testing.T) {
	out, err := execute(t, "--fast-iters", "0")

	var cfgErr *harness.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want *harness.ConfigError", err)
	}
	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}
}

func TestRunUnknownFormat(t *testing.T) {
	if _, err := execute(t, "--format", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRunConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	body := "fast_iters: 10\nslow_iters: 1\ncompute_iters: 5\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := execute(t, "--config", path, "--slow-iters", "3")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if !strings.Contains(out, "fast_sum8 (10 calls):") {
		t.Errorf("config fast_iters not applied:\n%s", out)
	}
	if !strings.Contains(out, "slow_compute (3 calls, 5 iters each):") {
		t.Errorf("flag did not override config:\n%s", out)
	}
}

func TestMixCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"mix", "1", "1"}, "0xb456bcfc34c2cb2c\n"},
		{[]string{"mix", "42", "0"}, "0x000000000000002a\n"},
	}

	for _, tt := range tests {
		out, err := execute(t, tt.args...)
		if err != nil {
			t.Fatalf("%v failed: %v", tt.args, err)
		}

		if out != tt.want {
			t.Errorf("%v = %q, want %q", tt.args, out, tt.want)
		}
	}
}
