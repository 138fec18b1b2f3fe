package xl2pdf

import "context"

// Automation is the boundary to the external rendering application. The only
// wire-level contract is: start the application, open a document read-only,
// export to a fixed format, close, quit.
type Automation interface {
	// Name returns the human-readable application name.
	Name() string

	// Available reports whether the application dependency is present.
	Available() bool

	// InstallHint returns the instruction printed when the application
	// is missing.
	InstallHint() string

	// Start acquires an application handle with interactive alerts and
	// link-update prompts suppressed. Errors wrap
	// ErrApplicationUnavailable.
	Start(ctx context.Context) (Session, error)
}

// Session is a live application handle. It is owned exclusively by the
// conversion attempt that created it and must be released on every exit
// path, including errors.
type Session interface {
	// Open opens the document read-only, ignoring "not recommended"
	// warnings and tolerating partial corruption. Errors wrap
	// ErrDocumentOpenFailed.
	Open(ctx context.Context, path string) (Document, error)

	// Quit tells the application to exit. Best-effort.
	Quit() error
}

// Document is an open document handle. The three export methods are the
// escalating fallback call shapes tried in order; each writes the PDF to
// dst and wraps ErrExportFailed on failure.
type Document interface {
	// ExportFixedFormat exports the whole document with full options.
	ExportFixedFormat(ctx context.Context, dst string) error

	// ExportActiveSheet exports only the active sheet.
	ExportActiveSheet(ctx context.Context, dst string) error

	// ExportMinimal exports with minimal parameters.
	ExportMinimal(ctx context.Context, dst string) error

	// Close closes the document without saving. Best-effort.
	Close() error
}
