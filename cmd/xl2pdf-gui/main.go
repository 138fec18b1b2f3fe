// Command xl2pdf-gui is the desktop front end for the converter. All batch
// logic lives in internal/ui; this file only wires widgets to the session
// and marshals callbacks onto the Fyne thread.
package main

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	xl2pdf "github.com/alnah/go-xl2pdf"
	"github.com/alnah/go-xl2pdf/internal/ui"
)

var spreadsheetFilter = storage.NewExtensionFileFilter([]string{".xlsx", ".xls", ".xlsm"})

func main() {
	a := app.New()
	w := a.NewWindow("Spreadsheet to PDF")
	w.Resize(fyne.NewSize(720, 560))

	g := newGUI(w)
	w.SetContent(g.content())
	w.ShowAndRun()
}

type gui struct {
	win     fyne.Window
	session *ui.Session

	selection *widget.Label
	outputDir *widget.Label
	recursive *widget.Check
	overwrite *widget.Check
	progress  *widget.ProgressBar
	status    *widget.Label
	logView   *widget.RichText
	logScroll *container.Scroll
	convert   *widget.Button

	files []string
}

func newGUI(win fyne.Window) *gui {
	g := &gui{win: win}

	// Temp copies always get random hex names here: selections come from a
	// picker, so there is no file name worth preserving for the user.
	svc := xl2pdf.New(
		xl2pdf.WithSanitizeMode(xl2pdf.SanitizeRandomName),
		xl2pdf.WithLogger(zerolog.Nop()),
	)
	g.session = ui.NewSession(svc, ui.Callbacks{
		Log:      g.onLog,
		Progress: g.onProgress,
		Status:   g.onStatus,
		Done:     g.onDone,
	})

	g.selection = widget.NewLabel("No files selected")
	g.selection.Truncation = fyne.TextTruncateEllipsis
	g.outputDir = widget.NewLabel("Output: next to each source file")
	g.outputDir.Truncation = fyne.TextTruncateEllipsis

	g.recursive = widget.NewCheck("Include subfolders", g.session.SetRecursive)
	g.overwrite = widget.NewCheck("Overwrite existing PDFs", g.session.SetOverwrite)

	g.progress = widget.NewProgressBar()
	g.status = widget.NewLabel("Ready")
	g.logView = widget.NewRichText()
	g.logView.Wrapping = fyne.TextWrapWord
	g.logScroll = container.NewVScroll(g.logView)

	g.convert = widget.NewButton("Convert to PDF", g.onConvert)
	g.convert.Importance = widget.HighImportance

	return g
}

func (g *gui) content() fyne.CanvasObject {
	pickers := container.NewHBox(
		widget.NewButton("Add File…", g.pickFile),
		widget.NewButton("Select Folder…", g.pickFolder),
		widget.NewButton("Clear", g.clearSelection),
	)
	output := container.NewHBox(
		widget.NewButton("Output Folder…", g.pickOutputDir),
	)

	top := container.NewVBox(
		pickers,
		g.selection,
		output,
		g.outputDir,
		container.NewHBox(g.recursive, g.overwrite),
		g.convert,
		g.progress,
		g.status,
		widget.NewSeparator(),
	)

	return container.NewBorder(top, nil, nil, nil, g.logScroll)
}

func (g *gui) pickFile() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, g.win)
			return
		}
		if rc == nil {
			return
		}
		_ = rc.Close()
		g.files = append(g.files, rc.URI().Path())
		g.session.SetFiles(g.files)
		g.selection.SetText(fmt.Sprintf("%d file(s) selected", len(g.files)))
	}, g.win)
	d.SetFilter(spreadsheetFilter)
	d.Show()
}

func (g *gui) pickFolder() {
	dialog.ShowFolderOpen(func(lu fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, g.win)
			return
		}
		if lu == nil {
			return
		}
		g.files = nil
		g.session.SetDirectory(lu.Path())
		g.selection.SetText("Folder: " + lu.Path())
	}, g.win)
}

func (g *gui) pickOutputDir() {
	dialog.ShowFolderOpen(func(lu fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, g.win)
			return
		}
		if lu == nil {
			return
		}
		g.session.SetOutputDir(lu.Path())
		g.outputDir.SetText("Output: " + lu.Path())
	}, g.win)
}

func (g *gui) clearSelection() {
	g.files = nil
	g.session.SetFiles(nil)
	g.selection.SetText("No files selected")
}

func (g *gui) onConvert() {
	if err := g.session.Start(context.Background()); err != nil {
		dialog.ShowError(err, g.win)
		return
	}
	g.convert.Disable()
	g.progress.SetValue(0)
}

// Session callbacks run on the worker goroutine; fyne.Do hops back onto
// the UI thread.

func (g *gui) onLog(e ui.Entry) {
	fyne.Do(func() {
		g.logView.Segments = append(g.logView.Segments, &widget.TextSegment{
			Text: fmt.Sprintf("[%s] %s\n", e.Time.Format("15:04:05"), e.Message),
			Style: widget.RichTextStyle{
				ColorName: colorFor(e.Level),
			},
		})
		g.logView.Refresh()
		g.logScroll.ScrollToBottom()
	})
}

func (g *gui) onProgress(done, total int) {
	fyne.Do(func() {
		if total > 0 {
			g.progress.SetValue(float64(done) / float64(total))
		}
	})
}

func (g *gui) onStatus(message string) {
	fyne.Do(func() {
		g.status.SetText(message)
	})
}

func (g *gui) onDone(succeeded, failed int) {
	fyne.Do(func() {
		g.convert.Enable()
		g.progress.SetValue(1)
		if failed > 0 {
			dialog.ShowInformation("Conversion finished",
				fmt.Sprintf("%d succeeded, %d failed", succeeded, failed), g.win)
		}
	})
}

func colorFor(level ui.Level) fyne.ThemeColorName {
	switch level {
	case ui.LevelSuccess:
		return theme.ColorNameSuccess
	case ui.LevelError:
		return theme.ColorNameError
	case ui.LevelWarning:
		return theme.ColorNameWarning
	default:
		return theme.ColorNameForeground
	}
}
