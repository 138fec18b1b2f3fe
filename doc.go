// Package xl2pdf converts spreadsheet files to PDF by driving an external
// office application through its automation interface.
//
// # Quick Start
//
// Create a service and convert a file:
//
//	svc := xl2pdf.New()
//	result := svc.Convert(ctx, xl2pdf.Request{Source: "report.xlsx"})
//	if result.Err != nil {
//	    log.Fatal(result.Err)
//	}
//	fmt.Println("created", result.OutputPath)
//
// The destination defaults to a sibling of the source with a .pdf extension.
// Existing non-empty files are never silently overwritten: a numeric suffix
// (_1, _2, ...) is appended unless Request.Overwrite is set.
//
// # Conversion Pipeline
//
// Each attempt walks a fixed sequence:
//
//  1. Resolve a collision-free, filesystem-safe destination path
//  2. Start the external application with interactive prompts suppressed
//  3. Open the source document read-only, tolerating partial corruption
//  4. Export to PDF, falling back through three escalating call shapes
//  5. Verify the destination file exists and is non-empty
//
// The filesystem is the final arbiter: a produced, non-empty destination file
// counts as success even when the application reported an export error, and
// a reported success without a file is ErrPdfNotProduced. The application
// handle never outlives the attempt that created it.
//
// # Batch Processing
//
// Run processes requests strictly in order and retries failures after
// reclaiming stray renderer processes:
//
//	summary := svc.Run(ctx, requests, 1)
//	fmt.Printf("%d/%d converted\n", summary.Succeeded, summary.Total)
//
// # Backends
//
// On Windows the service drives Microsoft Excel over COM (go-ole). Elsewhere
// it drives LibreOffice in headless mode. Use WithAutomation to inject a
// custom backend, e.g. NewSofficeAutomation with an explicit binary path.
//
// Sources with non-ASCII paths are copied to a sanitized temporary path
// before opening, working around unreliable non-ASCII path handling in the
// external application. WithSanitizeMode selects how the temporary name is
// derived.
package xl2pdf
