package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	xl2pdf "github.com/alnah/go-xl2pdf"
)

// fakeConverter fails each source a configured number of times, then
// succeeds.
type fakeConverter struct {
	mu       sync.Mutex
	failures map[string]int
	calls    []string
	block    chan struct{} // when set, Convert waits until closed
}

func (c *fakeConverter) Convert(_ context.Context, req xl2pdf.Request) xl2pdf.Result {
	if c.block != nil {
		<-c.block
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	base := filepath.Base(req.Source)
	c.calls = append(c.calls, base)
	if c.failures[base] > 0 {
		c.failures[base]--
		return xl2pdf.Result{Request: req, Err: errors.New("renderer crashed")}
	}
	out := strings.TrimSuffix(req.Source, filepath.Ext(req.Source)) + ".pdf"
	return xl2pdf.Result{Request: req, OutputPath: out}
}

func (c *fakeConverter) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

// recorder captures session callbacks for inspection after Wait.
type recorder struct {
	mu        sync.Mutex
	entries   []Entry
	statuses  []string
	succeeded int
	failed    int
	done      bool
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		Log: func(e Entry) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.entries = append(r.entries, e)
		},
		Status: func(msg string) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.statuses = append(r.statuses, msg)
		},
		Done: func(succeeded, failed int) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.succeeded, r.failed, r.done = succeeded, failed, true
		},
	}
}

func (r *recorder) hasEntry(level Level, substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func newTestSession(conv Converter, rec *recorder, kills *int) *Session {
	s := NewSession(conv, rec.callbacks())
	s.pause = 0
	s.killStray = func() { *kills++ }
	return s
}

func tempSources(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(names))
	for _, n := range names {
		p := filepath.Join(dir, n)
		if err := os.WriteFile(p, []byte("data"), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	return paths
}

func TestStartRequiresSelection(t *testing.T) {
	t.Parallel()
	var kills int
	s := newTestSession(&fakeConverter{}, &recorder{}, &kills)

	if err := s.Start(context.Background()); !errors.Is(err, ErrNoFilesSelected) {
		t.Errorf("Start() error = %v, want ErrNoFilesSelected", err)
	}
}

func TestStartRejectsConcurrentBatches(t *testing.T) {
	t.Parallel()
	var kills int
	conv := &fakeConverter{block: make(chan struct{})}
	rec := &recorder{}
	s := newTestSession(conv, rec, &kills)
	s.SetFiles(tempSources(t, "a.xlsx", "b.xlsx"))

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("first Start() error = %v", err)
	}
	if err := s.Start(context.Background()); !errors.Is(err, ErrConversionInProgress) {
		t.Errorf("second Start() error = %v, want ErrConversionInProgress", err)
	}

	close(conv.block)
	s.Wait()

	if s.Converting() {
		t.Error("Converting() still true after Wait()")
	}
}

func TestRunConvertsSelection(t *testing.T) {
	t.Parallel()
	var kills int
	conv := &fakeConverter{}
	rec := &recorder{}
	s := newTestSession(conv, rec, &kills)
	s.SetFiles(tempSources(t, "a.xlsx", "b.xlsx"))

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	s.Wait()

	if !rec.done || rec.succeeded != 2 || rec.failed != 0 {
		t.Errorf("done callback = (%d, %d, called=%v), want (2, 0, true)",
			rec.succeeded, rec.failed, rec.done)
	}
	if !rec.hasEntry(LevelSuccess, "✓ Converted: a.xlsx") {
		t.Error("missing success log entry for a.xlsx")
	}
	if kills != 0 {
		t.Errorf("stray kill ran %d time(s) with no failures", kills)
	}
}

func TestRunRetriesAfterPartialSuccess(t *testing.T) {
	t.Parallel()
	var kills int
	conv := &fakeConverter{failures: map[string]int{"b.xlsx": 1}}
	rec := &recorder{}
	s := newTestSession(conv, rec, &kills)
	s.SetFiles(tempSources(t, "a.xlsx", "b.xlsx"))

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	s.Wait()

	if rec.succeeded != 2 || rec.failed != 0 {
		t.Errorf("done callback = (%d, %d), want (2, 0)", rec.succeeded, rec.failed)
	}
	if kills != 1 {
		t.Errorf("stray kill ran %d time(s), want 1", kills)
	}
	if !rec.hasEntry(LevelSuccess, "Retry successful") {
		t.Error("missing retry success log entry")
	}
	if conv.callCount() != 3 {
		t.Errorf("converter called %d time(s), want 3", conv.callCount())
	}
}

func TestRunSkipsRetryWhenNothingSucceeded(t *testing.T) {
	t.Parallel()
	var kills int
	conv := &fakeConverter{failures: map[string]int{"a.xlsx": 9, "b.xlsx": 9}}
	rec := &recorder{}
	s := newTestSession(conv, rec, &kills)
	s.SetFiles(tempSources(t, "a.xlsx", "b.xlsx"))

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	s.Wait()

	if rec.succeeded != 0 || rec.failed != 2 {
		t.Errorf("done callback = (%d, %d), want (0, 2)", rec.succeeded, rec.failed)
	}
	if kills != 0 {
		t.Error("retry pass ran although no conversion had succeeded")
	}
	if conv.callCount() != 2 {
		t.Errorf("converter called %d time(s), want 2", conv.callCount())
	}
	if !rec.hasEntry(LevelInfo, "Troubleshooting") {
		t.Error("missing troubleshooting tips after failures")
	}
}

func TestRunDiscoversDirectorySelection(t *testing.T) {
	t.Parallel()
	var kills int
	conv := &fakeConverter{}
	rec := &recorder{}
	s := newTestSession(conv, rec, &kills)

	dir := t.TempDir()
	for _, n := range []string{"a.xlsx", "b.xls", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("data"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	s.SetDirectory(dir)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	s.Wait()

	if rec.succeeded != 2 || rec.failed != 0 {
		t.Errorf("done callback = (%d, %d), want (2, 0)", rec.succeeded, rec.failed)
	}
}

func TestRunEmptyDirectory(t *testing.T) {
	t.Parallel()
	var kills int
	rec := &recorder{}
	s := newTestSession(&fakeConverter{}, rec, &kills)
	s.SetDirectory(t.TempDir())

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	s.Wait()

	if !rec.hasEntry(LevelWarning, "No spreadsheet files found") {
		t.Error("missing warning for empty directory")
	}
	if !rec.done {
		t.Error("done callback never fired")
	}
}

func TestLevelString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		level Level
		want  string
	}{
		{LevelInfo, "info"},
		{LevelSuccess, "success"},
		{LevelError, "error"},
		{LevelWarning, "warning"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}
