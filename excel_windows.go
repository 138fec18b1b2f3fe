//go:build windows

package xl2pdf

import (
	"context"
	"fmt"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/rs/zerolog"
)

// Excel constants for COM automation.
const (
	xlTypePDF           = 0 // fixed-format PDF export
	xlQualityStandard   = 0
	xlCorruptLoadRepair = 1 // open even if the file might be corrupt
)

// newPlatformAutomation returns the Excel COM backend on Windows.
func newPlatformAutomation(logger zerolog.Logger) Automation {
	return &excelAutomation{logger: logger}
}

// excelAutomation drives Microsoft Excel through its COM interface.
type excelAutomation struct {
	logger zerolog.Logger
}

func (a *excelAutomation) Name() string { return "Microsoft Excel" }

func (a *excelAutomation) InstallHint() string {
	return "Microsoft Excel is required but was not found. Install Microsoft Office and ensure Excel is properly licensed."
}

// Available probes for Excel by creating and immediately quitting a COM
// instance. Heavier than a registry lookup but answers the only question
// that matters: can an application handle be acquired.
func (a *excelAutomation) Available() bool {
	sess, err := a.Start(context.Background())
	if err != nil {
		return false
	}
	_ = sess.Quit()
	return true
}

func (a *excelAutomation) Start(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// S_FALSE (already initialized on this thread) surfaces as an error
	// from go-ole; either way COM is usable afterwards.
	coInitialized := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED) == nil

	unknown, err := oleutil.CreateObject("Excel.Application")
	if err != nil {
		if coInitialized {
			ole.CoUninitialize()
		}
		return nil, fmt.Errorf("%w: %v", ErrApplicationUnavailable, err)
	}

	app, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		unknown.Release()
		if coInitialized {
			ole.CoUninitialize()
		}
		return nil, fmt.Errorf("%w: %v", ErrApplicationUnavailable, err)
	}

	// Suppress everything interactive. Each property is best-effort:
	// some Excel versions reject individual settings.
	for _, p := range []string{"Visible", "DisplayAlerts", "AskToUpdateLinks", "EnableEvents"} {
		if _, err := oleutil.PutProperty(app, p, false); err != nil {
			a.logger.Debug().Err(err).Str("property", p).Msg("could not set application property")
		}
	}

	a.logger.Debug().Msg("Excel.Application started")
	return &excelSession{logger: a.logger, app: app, coInitialized: coInitialized}, nil
}

type excelSession struct {
	logger        zerolog.Logger
	app           *ole.IDispatch
	coInitialized bool
}

func (s *excelSession) Open(ctx context.Context, path string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	workbooks, err := oleutil.GetProperty(s.app, "Workbooks")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentOpenFailed, err)
	}
	wbs := workbooks.ToIDispatch()
	defer wbs.Release()

	// Workbooks.Open positional arguments:
	// Filename, UpdateLinks, ReadOnly, Format, Password, WriteResPassword,
	// IgnoreReadOnlyRecommended, Origin, Delimiter, Editable, Notify,
	// Converter, AddToMru, Local, CorruptLoad.
	wb, err := oleutil.CallMethod(wbs, "Open",
		path,
		0,    // UpdateLinks: don't update links
		true, // ReadOnly
		nil, nil, nil,
		true, // IgnoreReadOnlyRecommended
		nil, nil, nil,
		false, // Notify
		nil, nil, nil,
		xlCorruptLoadRepair,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentOpenFailed, err)
	}

	s.logger.Debug().Str("path", path).Msg("workbook opened")
	return &excelDocument{logger: s.logger, wb: wb.ToIDispatch()}, nil
}

func (s *excelSession) Quit() error {
	if s.app == nil {
		return nil
	}
	_, err := oleutil.CallMethod(s.app, "Quit")
	if err != nil {
		s.logger.Warn().Err(err).Msg("Excel.Quit failed")
	}
	s.app.Release()
	s.app = nil
	if s.coInitialized {
		ole.CoUninitialize()
	}
	return err
}

type excelDocument struct {
	logger zerolog.Logger
	wb     *ole.IDispatch
}

func (d *excelDocument) ExportFixedFormat(ctx context.Context, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// Type, Filename, Quality, IncludeDocProperties, IgnorePrintAreas,
	// From, To, OpenAfterPublish.
	_, err := oleutil.CallMethod(d.wb, "ExportAsFixedFormat",
		xlTypePDF, dst, xlQualityStandard, true, false, nil, nil, false)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return nil
}

func (d *excelDocument) ExportActiveSheet(ctx context.Context, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	active, err := oleutil.GetProperty(d.wb, "ActiveSheet")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	sheet := active.ToIDispatch()
	defer sheet.Release()

	_, err = oleutil.CallMethod(sheet, "ExportAsFixedFormat",
		xlTypePDF, dst, xlQualityStandard, true, false, nil, nil, false)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return nil
}

func (d *excelDocument) ExportMinimal(ctx context.Context, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := oleutil.CallMethod(d.wb, "ExportAsFixedFormat", xlTypePDF, dst)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return nil
}

func (d *excelDocument) Close() error {
	if d.wb == nil {
		return nil
	}
	_, err := oleutil.CallMethod(d.wb, "Close", false)
	if err != nil {
		d.logger.Warn().Err(err).Msg("Workbook.Close failed")
	}
	d.wb.Release()
	d.wb = nil
	return err
}
