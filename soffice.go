package xl2pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-xl2pdf/internal/fileutil"
)

// NewSofficeAutomation returns an Automation that drives LibreOffice in
// headless mode. An empty binary resolves soffice/libreoffice from PATH.
func NewSofficeAutomation(binary string, logger zerolog.Logger) Automation {
	if binary == "" {
		binary = lookupSoffice()
	}
	return &sofficeAutomation{binary: binary, logger: logger}
}

func lookupSoffice() string {
	for _, name := range []string{"soffice", "libreoffice"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	return ""
}

// sofficeAutomation shells out to soffice per export. There is no persistent
// application process: Start validates the binary, Quit is a no-op.
type sofficeAutomation struct {
	binary string
	logger zerolog.Logger
}

func (a *sofficeAutomation) Name() string { return "LibreOffice" }

func (a *sofficeAutomation) Available() bool { return a.binary != "" }

func (a *sofficeAutomation) InstallHint() string {
	return "LibreOffice is required but was not found. Install it (e.g. apt-get install libreoffice) or put soffice on PATH."
}

func (a *sofficeAutomation) Start(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if a.binary == "" {
		return nil, fmt.Errorf("%w: soffice not found on PATH", ErrApplicationUnavailable)
	}
	return &sofficeSession{binary: a.binary, logger: a.logger}, nil
}

type sofficeSession struct {
	binary string
	logger zerolog.Logger
}

func (s *sofficeSession) Open(ctx context.Context, path string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentOpenFailed, err)
	}
	_ = f.Close()
	s.logger.Debug().Str("path", path).Msg("document opened")
	return &sofficeDocument{binary: s.binary, src: path, logger: s.logger}, nil
}

func (s *sofficeSession) Quit() error { return nil }

type sofficeDocument struct {
	binary string
	src    string
	logger zerolog.Logger
}

// The three escalating call shapes. LibreOffice cannot export a single
// sheet, so the middle shape drops the Calc filter instead.
func (d *sofficeDocument) ExportFixedFormat(ctx context.Context, dst string) error {
	return d.convert(ctx, dst, "pdf:calc_pdf_Export",
		"--headless", "--invisible", "--norestore", "--nolockcheck")
}

func (d *sofficeDocument) ExportActiveSheet(ctx context.Context, dst string) error {
	return d.convert(ctx, dst, "pdf", "--headless", "--invisible")
}

func (d *sofficeDocument) ExportMinimal(ctx context.Context, dst string) error {
	return d.convert(ctx, dst, "pdf", "--headless")
}

func (d *sofficeDocument) Close() error { return nil }

// convert runs soffice into a private temp directory, then moves the
// produced file to dst. soffice always names its output after the source,
// so exporting directly to dst would break suffixed destinations.
func (d *sofficeDocument) convert(ctx context.Context, dst, filter string, flags ...string) error {
	outDir, err := os.MkdirTemp("", "xl2pdf-out-")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	defer func() { _ = os.RemoveAll(outDir) }()

	args := append(flags, "--convert-to", filter, "--outdir", outDir, d.src)
	cmd := exec.CommandContext(ctx, d.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	d.logger.Debug().Strs("args", args).Msg("running soffice")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %v: %s", ErrExportFailed, err, strings.TrimSpace(stderr.String()))
	}

	produced := filepath.Join(outDir,
		strings.TrimSuffix(filepath.Base(d.src), filepath.Ext(d.src))+".pdf")
	if !fileutil.NonEmptyFile(produced) {
		return fmt.Errorf("%w: soffice produced no output", ErrExportFailed)
	}

	if err := fileutil.MoveFile(produced, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return nil
}
