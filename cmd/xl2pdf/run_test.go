package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-xl2pdf/internal/config"
)

func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
	}
	return env, &stdout, &stderr
}

func TestRunVersion(t *testing.T) {
	env, stdout, _ := testEnv()
	if err := run([]string{"xl2pdf", "version"}, env); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "xl2pdf") {
		t.Errorf("version output = %q", stdout.String())
	}
}

func TestRunHelp(t *testing.T) {
	env, stdout, _ := testEnv()
	if err := run([]string{"xl2pdf", "help"}, env); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	out := stdout.String()
	for _, want := range []string{"Usage:", "--retry", "--overwrite", ".xlsx"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestRunMissingInput(t *testing.T) {
	env, _, stderr := testEnv()
	err := run([]string{"xl2pdf"}, env)
	if !errors.Is(err, errUsage) {
		t.Fatalf("run() error = %v, want errUsage", err)
	}
	if exitCodeFor(err) != ExitUsage {
		t.Errorf("exit code = %d, want %d", exitCodeFor(err), ExitUsage)
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Error("usage text not printed on missing input")
	}
}

func TestRunNegativeRetry(t *testing.T) {
	env, _, _ := testEnv()
	err := run([]string{"xl2pdf", "--retry", "-2", "report.xlsx"}, env)
	if !errors.Is(err, errUsage) {
		t.Errorf("run() error = %v, want errUsage", err)
	}
}

func TestRunUnknownFlag(t *testing.T) {
	env, _, _ := testEnv()
	err := run([]string{"xl2pdf", "--bogus", "report.xlsx"}, env)
	if !errors.Is(err, errUsage) {
		t.Errorf("run() error = %v, want errUsage", err)
	}
}

func TestRunConfigNotFound(t *testing.T) {
	env, _, _ := testEnv()
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	err := run([]string{"xl2pdf", "-c", missing, "report.xlsx"}, env)
	if !errors.Is(err, config.ErrConfigNotFound) {
		t.Fatalf("run() error = %v, want ErrConfigNotFound", err)
	}
	if exitCodeFor(err) != ExitUsage {
		t.Errorf("exit code = %d, want %d", exitCodeFor(err), ExitUsage)
	}
}

func TestDestFor(t *testing.T) {
	sep := string(os.PathSeparator)
	tests := []struct {
		name       string
		file       string
		input      string
		output     string
		inputIsDir bool
		want       string
	}{
		{
			name:   "no output hint",
			file:   filepath.Join("data", "a.xlsx"),
			input:  filepath.Join("data", "a.xlsx"),
			output: "",
			want:   "",
		},
		{
			name:   "single file keeps hint as-is",
			file:   filepath.Join("data", "a.xlsx"),
			input:  filepath.Join("data", "a.xlsx"),
			output: filepath.Join("out", "custom.pdf"),
			want:   filepath.Join("out", "custom.pdf"),
		},
		{
			name:       "directory input top level",
			file:       filepath.Join("data", "a.xlsx"),
			input:      "data",
			output:     "out",
			inputIsDir: true,
			want:       "out" + sep,
		},
		{
			name:       "directory input mirrors subtree",
			file:       filepath.Join("data", "q1", "a.xlsx"),
			input:      "data",
			output:     "out",
			inputIsDir: true,
			want:       filepath.Join("out", "q1") + sep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := destFor(tt.file, tt.input, tt.output, tt.inputIsDir)
			if got != tt.want {
				t.Errorf("destFor() = %q, want %q", got, tt.want)
			}
		})
	}
}
