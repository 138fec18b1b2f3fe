package xl2pdf

import "errors"

// Sentinel errors for conversion attempts.
var (
	ErrSourceNotFound = errors.New("spreadsheet file not found")
	ErrNotSpreadsheet = errors.New("not a spreadsheet file")

	// ErrApplicationUnavailable means the external rendering application
	// could not be started. Terminal for the attempt.
	ErrApplicationUnavailable = errors.New("failed to start rendering application")

	// ErrDocumentOpenFailed covers password-protected or corrupt sources.
	ErrDocumentOpenFailed = errors.New("failed to open document")

	// ErrExportFailed is returned when all three export call shapes fail.
	ErrExportFailed = errors.New("failed to export to PDF")

	// ErrPdfNotProduced means the export reported success but the
	// destination file is missing or empty.
	ErrPdfNotProduced = errors.New("PDF file was not created")
)

// Sentinel errors for path resolution.
var (
	ErrCreateOutputDir   = errors.New("failed to create output directory")
	ErrOutputNotWritable = errors.New("cannot write to output file")
)
