package xl2pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-xl2pdf/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Resolve computes the destination PDF path for a source spreadsheet.
//
// An empty destHint places the PDF next to the source with the extension
// replaced. A destHint naming a directory places the PDF inside it under the
// source's base name. Any other destHint is used as the destination file.
//
// Existing non-empty destinations get a numeric suffix (_1, _2, ...) unless
// overwrite is set; zero-length files count as free. The destination file
// name is sanitized (non-ASCII and spaces become underscores); the source is
// never renamed on disk. The destination's parent directory is created if
// missing.
func Resolve(source, destHint string, overwrite bool) (string, error) {
	src, err := filepath.Abs(source)
	if err != nil {
		return "", err
	}

	base := sanitizeName(strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)))

	var dir, name string
	if destHint == "" {
		dir = filepath.Dir(src)
		name = base + ".pdf"
	} else {
		hint, err := filepath.Abs(destHint)
		if err != nil {
			return "", err
		}
		if info, statErr := os.Stat(hint); (statErr == nil && info.IsDir()) ||
			strings.HasSuffix(destHint, string(os.PathSeparator)) {
			dir = hint
			name = base + ".pdf"
		} else {
			dir = filepath.Dir(hint)
			ext := filepath.Ext(hint)
			if ext == "" {
				ext = ".pdf"
			}
			name = sanitizeName(strings.TrimSuffix(filepath.Base(hint), ext)) + ext
		}
	}

	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCreateOutputDir, err)
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := filepath.Join(dir, name)
	if !overwrite {
		for i := 1; fileutil.NonEmptyFile(candidate); i++ {
			candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		}
	}

	if err := probeWritable(candidate); err != nil {
		return "", err
	}

	return candidate, nil
}

// probeWritable verifies the destination can be written before the external
// application is started, so permission problems fail fast. Existing files
// are opened for append and left untouched; otherwise an empty file is
// created and removed again.
func probeWritable(path string) error {
	if fileutil.FileExists(path) {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrOutputNotWritable, err)
		}
		return f.Close()
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePermissions)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutputNotWritable, err)
	}
	_ = f.Close()

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("%w: removing probe file: %v", ErrOutputNotWritable, err)
	}
	return nil
}

// sanitizeName replaces non-ASCII characters and spaces with underscores.
func sanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r > 127 || r == ' ' {
			b.WriteByte('_')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
