package xl2pdf

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// preflight inspects the workbook before the external application is
// started. Advisory only: the application can open files excelize cannot
// (corrupt-load tolerance), so findings are logged and never fail the
// attempt.
func (s *Service) preflight(path string, logger zerolog.Logger) {
	// excelize reads OOXML only; legacy .xls goes straight to the renderer.
	if strings.ToLower(filepath.Ext(path)) == ".xls" {
		return
	}

	sheets, err := inspectWorkbook(path)
	if err != nil {
		logger.Warn().Err(err).Msg("workbook preflight failed; file may be corrupt or password-protected")
		return
	}
	if sheets == 0 {
		logger.Warn().Msg("workbook has no sheets")
		return
	}
	logger.Debug().Int("sheets", sheets).Msg("workbook preflight ok")
}

// inspectWorkbook opens the workbook and returns its sheet count.
func inspectWorkbook(path string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()
	return len(f.GetSheetList()), nil
}
