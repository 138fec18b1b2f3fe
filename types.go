package xl2pdf

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Recognized spreadsheet extensions.
var spreadsheetExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
	".xlsm": true,
}

// IsSpreadsheet reports whether path has a recognized spreadsheet extension.
// The comparison is case-insensitive.
func IsSpreadsheet(path string) bool {
	return spreadsheetExtensions[strings.ToLower(filepath.Ext(path))]
}

// SanitizeMode selects how temporary copies of non-ASCII source paths are
// named before they are handed to the external application.
type SanitizeMode int

const (
	// SanitizePreserveName keeps an ASCII-safe form of the original base
	// name, falling back to a random hex name when sanitization still
	// leaves non-ASCII characters.
	SanitizePreserveName SanitizeMode = iota

	// SanitizeRandomName always uses a random hex name.
	SanitizeRandomName
)

// Request describes a single conversion. Immutable once created.
type Request struct {
	Source    string // path to the spreadsheet file (required)
	Dest      string // destination file or directory ("" = sibling of source)
	Recursive bool   // include subdirectories during discovery
	Overwrite bool   // reuse an existing destination instead of suffixing
}

// Result holds the outcome of a single conversion attempt.
type Result struct {
	Request    Request
	OutputPath string // set on success
	Err        error  // nil on success
	Duration   time.Duration
}

// OK reports whether the conversion succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Summary aggregates a batch run. Results preserves input order and holds
// the final outcome of each request after all retry passes.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Recovered int // failures that succeeded on a retry pass
	Results   []Result
}

// FailedResults returns the results that ultimately failed, in input order.
func (s Summary) FailedResults() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	sanitize   SanitizeMode
	tempDir    string
	retryPause time.Duration
	logger     zerolog.Logger
}

// defaultRetryPause is the wait before each retry pass, giving the external
// application time to release file locks after being killed.
const defaultRetryPause = time.Second

// WithSanitizeMode sets the temporary-copy naming policy.
func WithSanitizeMode(m SanitizeMode) Option {
	return func(s *Service) {
		s.cfg.sanitize = m
	}
}

// WithTempDir sets the directory for sanitized temporary copies.
// Defaults to os.TempDir().
func WithTempDir(dir string) Option {
	return func(s *Service) {
		s.cfg.tempDir = dir
	}
}

// WithLogger sets the logger used for automation step tracing.
// Defaults to zerolog.Nop().
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) {
		s.cfg.logger = l
	}
}

// WithAutomation injects an automation backend, replacing the platform
// default. Used by the CLI for renderer overrides and by tests.
func WithAutomation(a Automation) Option {
	return func(s *Service) {
		s.automation = a
	}
}
