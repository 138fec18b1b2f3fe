//go:build !windows

package xl2pdf

import "github.com/rs/zerolog"

// newPlatformAutomation returns the LibreOffice backend outside Windows.
func newPlatformAutomation(logger zerolog.Logger) Automation {
	return NewSofficeAutomation("", logger)
}
