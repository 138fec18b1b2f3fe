// Package ui holds the state and worker logic behind the desktop interface,
// independent of any graphical toolkit. The toolkit layer supplies callbacks
// and is responsible for marshalling them onto its own thread.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	xl2pdf "github.com/alnah/go-xl2pdf"
	"github.com/alnah/go-xl2pdf/internal/process"
)

// Level classifies log entries for display.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
	LevelWarning
)

// String returns the display tag for the level.
func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	default:
		return "info"
	}
}

// Entry is one timestamped, level-tagged log line.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
}

// Callbacks deliver progress to the toolkit layer. Any callback may be nil.
// They are invoked from the worker goroutine; only one worker is ever
// active at a time.
type Callbacks struct {
	Log      func(Entry)
	Progress func(done, total int)
	Status   func(message string)
	Done     func(succeeded, failed int)
}

// Converter is the conversion service interface consumed by the session.
type Converter interface {
	Convert(ctx context.Context, req xl2pdf.Request) xl2pdf.Result
}

// Compile-time interface implementation check.
var _ Converter = (*xl2pdf.Service)(nil)

// Sentinel errors for session operations.
var (
	ErrConversionInProgress = errors.New("conversion already in progress")
	ErrNoFilesSelected      = errors.New("no files or directory selected")
)

// retryPause is longer than the batch driver's: the interface gives the
// killed application extra time to release locks before the retry pass.
const retryPause = 2 * time.Second

// Session carries the interface state explicitly: selected files, output
// directory, option flags, and the in-progress marker. One background
// worker at most; there is no cancellation once a batch has started.
type Session struct {
	mu         sync.Mutex
	files      []string // explicit files, or a single directory
	outputDir  string
	recursive  bool
	overwrite  bool
	converting bool

	conv      Converter
	cb        Callbacks
	killStray func()
	pause     time.Duration
	wg        sync.WaitGroup
}

// NewSession creates a session around the given converter.
func NewSession(conv Converter, cb Callbacks) *Session {
	return &Session{
		conv:      conv,
		cb:        cb,
		killStray: process.KillStrayRenderers,
		pause:     retryPause,
	}
}

// SetFiles replaces the selection with explicit file paths.
func (s *Session) SetFiles(files []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append([]string(nil), files...)
}

// SetDirectory replaces the selection with a directory to discover.
func (s *Session) SetDirectory(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = []string{dir}
}

// SetOutputDir sets the destination directory ("" = next to each source).
func (s *Session) SetOutputDir(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputDir = dir
}

// SetRecursive toggles subdirectory discovery.
func (s *Session) SetRecursive(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recursive = v
}

// SetOverwrite toggles reuse of existing destinations.
func (s *Session) SetOverwrite(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overwrite = v
}

// Converting reports whether a batch is in progress.
func (s *Session) Converting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.converting
}

// Start launches the batch on a background worker. It fails when a batch is
// already running or nothing is selected.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.converting {
		s.mu.Unlock()
		return ErrConversionInProgress
	}
	if len(s.files) == 0 {
		s.mu.Unlock()
		return ErrNoFilesSelected
	}
	s.converting = true
	files := append([]string(nil), s.files...)
	outputDir, recursive, overwrite := s.outputDir, s.recursive, s.overwrite
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			s.converting = false
			s.mu.Unlock()
		}()
		s.run(ctx, files, outputDir, recursive, overwrite)
	}()

	return nil
}

// Wait blocks until the current batch finishes.
func (s *Session) Wait() {
	s.wg.Wait()
}

func (s *Session) run(ctx context.Context, files []string, outputDir string, recursive, overwrite bool) {
	s.status("Starting conversion...")

	list, err := expandSelection(files, recursive)
	if err != nil {
		s.log(LevelError, "Failed to list files: %v", err)
		s.status("Ready")
		s.done(0, 0)
		return
	}
	if len(list) == 0 {
		s.log(LevelWarning, "No spreadsheet files found")
		s.status("Ready")
		s.done(0, 0)
		return
	}

	total := len(list)
	succeeded, failed := 0, 0
	var failures []xl2pdf.Request

	for i, f := range list {
		s.status(fmt.Sprintf("Converting %d/%d: %s", i+1, total, filepath.Base(f)))
		s.progress(i, total)

		req := xl2pdf.Request{Source: f, Dest: outputDir, Overwrite: overwrite}
		res := s.conv.Convert(ctx, req)

		if res.OK() {
			s.log(LevelSuccess, "✓ Converted: %s → %s", filepath.Base(f), filepath.Base(res.OutputPath))
			succeeded++
		} else {
			s.log(LevelError, "✗ Failed to convert: %s - %v", filepath.Base(f), res.Err)
			failed++
			failures = append(failures, req)
		}
	}

	// Single implicit retry pass, only worth it when the renderer proved
	// able to convert at least one file.
	if len(failures) > 0 && succeeded > 0 {
		s.log(LevelInfo, "Retrying failed conversions...")
		s.killStray()
		select {
		case <-time.After(s.pause):
		case <-ctx.Done():
		}

		recovered := 0
		for _, req := range failures {
			s.status("Retrying: " + filepath.Base(req.Source))
			res := s.conv.Convert(ctx, req)
			if res.OK() {
				s.log(LevelSuccess, "✓ Retry successful: %s → %s",
					filepath.Base(req.Source), filepath.Base(res.OutputPath))
				succeeded++
				failed--
				recovered++
			} else {
				s.log(LevelError, "✗ Retry failed: %s - %v", filepath.Base(req.Source), res.Err)
			}
		}
		if recovered > 0 {
			s.log(LevelSuccess, "Retry recovered %d file(s)", recovered)
		}
	}

	s.progress(total, total)
	s.status(fmt.Sprintf("Completed! %d successful, %d failed", succeeded, failed))

	if failed > 0 {
		s.log(LevelInfo, "Troubleshooting tips for failed conversions:")
		for _, tip := range troubleshootingTips {
			s.log(LevelInfo, "%s", tip)
		}
	}

	s.done(succeeded, failed)
}

var troubleshootingTips = []string{
	"1. Close all running instances of the office application",
	"2. Check if the spreadsheet files are password-protected",
	"3. Check if the application is properly installed and licensed",
	"4. Check if there's enough disk space for the PDF files",
	"5. For files with non-ASCII names, try renaming them",
}

// expandSelection turns the selection into a concrete file list. A single
// directory entry is discovered; explicit files are used as-is.
func expandSelection(files []string, recursive bool) ([]string, error) {
	if len(files) == 1 {
		info, err := os.Stat(files[0])
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return xl2pdf.Discover(files[0], recursive)
		}
	}
	return files, nil
}

func (s *Session) log(level Level, format string, args ...any) {
	if s.cb.Log == nil {
		return
	}
	s.cb.Log(Entry{Time: time.Now(), Level: level, Message: fmt.Sprintf(format, args...)})
}

func (s *Session) progress(done, total int) {
	if s.cb.Progress != nil {
		s.cb.Progress(done, total)
	}
}

func (s *Session) status(message string) {
	if s.cb.Status != nil {
		s.cb.Status(message)
	}
}

func (s *Session) done(succeeded, failed int) {
	if s.cb.Done != nil {
		s.cb.Done(succeeded, failed)
	}
}
