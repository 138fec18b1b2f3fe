package xl2pdf

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Discover returns the spreadsheet files under input in lexical order.
//
// When input is a file it must have a recognized spreadsheet extension.
// When input is a directory, only top-level files are returned unless
// recursive is set.
func Discover(input string, recursive bool) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, input)
		}
		return nil, err
	}

	if !info.IsDir() {
		if !IsSpreadsheet(input) {
			return nil, fmt.Errorf("%w: %s", ErrNotSpreadsheet, input)
		}
		return []string{input}, nil
	}

	if !recursive {
		entries, err := os.ReadDir(input)
		if err != nil {
			return nil, err
		}
		var files []string
		for _, e := range entries {
			if e.IsDir() || !IsSpreadsheet(e.Name()) {
				continue
			}
			files = append(files, filepath.Join(input, e.Name()))
		}
		return files, nil
	}

	var files []string
	err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsSpreadsheet(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files, err
}
