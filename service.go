package xl2pdf

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-xl2pdf/internal/fileutil"
	"github.com/alnah/go-xl2pdf/internal/process"
)

// Service orchestrates conversion attempts against the external rendering
// application. Attempts are serialized: at most one application handle is
// live at any instant and it never outlives the attempt that created it.
type Service struct {
	cfg        serviceConfig
	automation Automation
	killStray  func() // overridable in tests
}

// New creates a Service with the platform automation backend.
// Use options to customize behavior (e.g., WithSanitizeMode, WithAutomation).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			sanitize:   SanitizePreserveName,
			retryPause: defaultRetryPause,
			logger:     zerolog.Nop(),
		},
		killStray: process.KillStrayRenderers,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create automation backend if not injected (e.g., by tests)
	if s.automation == nil {
		s.automation = newPlatformAutomation(s.cfg.logger)
	}

	return s
}

// Automation returns the active automation backend.
func (s *Service) Automation() Automation { return s.automation }

// Convert runs one conversion attempt and returns its result.
func (s *Service) Convert(ctx context.Context, req Request) Result {
	start := time.Now()
	out, err := s.convert(ctx, req)
	return Result{Request: req, OutputPath: out, Err: err, Duration: time.Since(start)}
}

func (s *Service) convert(ctx context.Context, req Request) (string, error) {
	src, err := filepath.Abs(req.Source)
	if err != nil {
		return "", err
	}
	if !fileutil.FileExists(src) {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, src)
	}
	if !IsSpreadsheet(src) {
		return "", fmt.Errorf("%w: %s", ErrNotSpreadsheet, src)
	}

	dst, err := Resolve(src, req.Dest, req.Overwrite)
	if err != nil {
		return "", err
	}

	logger := s.cfg.logger.With().Str("source", src).Str("dest", dst).Logger()
	s.preflight(src, logger)

	// The external application handles non-ASCII paths unreliably; open a
	// sanitized temporary copy instead. The original is never renamed.
	openPath := src
	cleanupTemp := func() {}
	if fileutil.HasNonASCII(src) {
		tmp, cleanup, copyErr := fileutil.SanitizedCopy(src, s.cfg.tempDir,
			s.cfg.sanitize == SanitizeRandomName)
		if copyErr != nil {
			logger.Warn().Err(copyErr).Msg("could not create sanitized copy, opening original path")
		} else {
			openPath = tmp
			cleanupTemp = cleanup
			logger.Debug().Str("copy", tmp).Msg("created sanitized temporary copy")
		}
	}
	defer cleanupTemp()

	sess, err := s.automation.Start(ctx)
	if err != nil {
		return "", err
	}

	doc, err := sess.Open(ctx, openPath)
	if err != nil {
		_ = sess.Quit()
		return "", err
	}

	exportErr := exportWithFallbacks(ctx, doc, dst, logger)

	_ = doc.Close()
	_ = sess.Quit()

	// The filesystem is the final arbiter: the application is known to
	// report spurious errors for unusual filenames while still producing
	// a valid file.
	if fileutil.NonEmptyFile(dst) {
		if exportErr != nil {
			logger.Warn().Err(exportErr).Msg("export reported an error but produced a valid file")
		}
		return dst, nil
	}
	if exportErr != nil {
		return "", exportErr
	}
	return "", fmt.Errorf("%w: %s", ErrPdfNotProduced, dst)
}

// exportWithFallbacks tries the three escalating export call shapes in
// order. When all fail, the first error is the one surfaced.
func exportWithFallbacks(ctx context.Context, doc Document, dst string, logger zerolog.Logger) error {
	first := doc.ExportFixedFormat(ctx, dst)
	if first == nil {
		return nil
	}
	logger.Debug().Err(first).Msg("full export failed, trying active sheet")

	if err := doc.ExportActiveSheet(ctx, dst); err == nil {
		return nil
	}
	logger.Debug().Msg("active sheet export failed, trying minimal parameters")

	if err := doc.ExportMinimal(ctx, dst); err == nil {
		return nil
	}
	return first
}
