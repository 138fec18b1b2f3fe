package main

import (
	"fmt"
	"io"
)

const usageText = `xl2pdf converts spreadsheet files to PDF using the installed office
application (Microsoft Excel on Windows, LibreOffice elsewhere).

Usage:
  xl2pdf <file-or-directory> [flags]
  xl2pdf doctor
  xl2pdf version

Flags:
  -o, --output string   output PDF file or directory (default: next to source)
  -r, --recursive       include subdirectories when input is a directory
      --overwrite       overwrite existing PDFs instead of adding a suffix
      --retry int       retry passes for failed conversions (default 1)
  -v, --verbose         show detailed progress and errors
  -q, --quiet           only show errors
  -c, --config string   config file name or path
  -h, --help            show this help

Examples:
  xl2pdf report.xlsx
  xl2pdf report.xlsx -o /tmp/out.pdf
  xl2pdf ./invoices -r -o ./pdf --retry 2

Accepted extensions: .xlsx, .xls, .xlsm
`

func printUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}
