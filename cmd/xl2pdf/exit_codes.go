package main

import (
	"errors"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-xl2pdf/internal/config"
)

// Exit codes follow the Unix convention: 0 success, 1 operational failure,
// 2 usage or configuration error.
const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// errUsage marks errors caused by how the tool was invoked rather than by
// the conversion itself.
var errUsage = errors.New("usage error")

// exitCodeFor maps an error from run to a process exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return ExitSuccess
	case errors.Is(err, errUsage),
		errors.Is(err, config.ErrEmptyConfigName),
		errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, config.ErrConfigParse):
		return ExitUsage
	default:
		return ExitFailure
	}
}
