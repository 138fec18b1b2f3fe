// Package fileutil provides file and path utility functions.
package fileutil

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// NonEmptyFile returns true if the path is a regular file with size > 0.
// Zero-length files are treated the same as missing ones by callers.
func NonEmptyFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}

// HasNonASCII reports whether s contains any byte outside the ASCII range.
func HasNonASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return true
		}
	}
	return false
}

// SanitizeBaseName replaces non-ASCII characters and spaces with underscores.
func SanitizeBaseName(name string) string {
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

// randomHexName returns "xl2pdf-<8 hex chars><ext>".
func randomHexName(ext string) (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("generating random name: %w", err)
	}
	return "xl2pdf-" + hex.EncodeToString(buf[:]) + ext, nil
}

// SanitizedCopy copies src into tempDir under an ASCII-safe name and returns
// the copy's path with a cleanup function. With random set the name is always
// random hex; otherwise the original base name is sanitized first and random
// hex is the fallback when sanitization still leaves non-ASCII characters.
// An empty tempDir means os.TempDir().
func SanitizedCopy(src, tempDir string, random bool) (path string, cleanup func(), err error) {
	if tempDir == "" {
		tempDir = os.TempDir()
	}

	ext := filepath.Ext(src)
	var name string
	if !random {
		name = "xl2pdf-" + SanitizeBaseName(filepath.Base(src))
	}
	if random || HasNonASCII(name) {
		name, err = randomHexName(ext)
		if err != nil {
			return "", nil, err
		}
	}

	path = filepath.Join(tempDir, name)
	if err := CopyFile(src, path); err != nil {
		return "", nil, err
	}
	cleanup = func() { _ = os.Remove(path) }
	return path, cleanup, nil
}

// CopyFile copies src to dst, truncating dst if it exists.
func CopyFile(src, dst string) error {
	in, err := os.Open(src) // #nosec G304 -- caller-provided path
	if err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644) // #nosec G304
	if err != nil {
		return fmt.Errorf("copying to %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	return out.Close()
}

// MoveFile renames src to dst, falling back to copy-and-remove when rename
// crosses filesystems.
func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := CopyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}
