package main

import (
	"io"
	"os"
	"time"
)

// Environment bundles the ambient dependencies of the CLI so tests can
// substitute buffers and a fixed clock.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultEnv returns the environment backed by the real process streams.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
