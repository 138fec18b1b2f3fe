package main

import (
	"fmt"

	xl2pdf "github.com/alnah/go-xl2pdf"
)

// runDoctor probes the external rendering application and reports whether
// conversions can work on this machine. On Windows this launches and quits
// the application once.
func runDoctor(env *Environment) error {
	a := xl2pdf.New().Automation()
	fmt.Fprintf(env.Stdout, "renderer: %s\n", a.Name())

	if !a.Available() {
		fmt.Fprintln(env.Stdout, "status:   not available")
		fmt.Fprintln(env.Stdout, a.InstallHint())
		return fmt.Errorf("%w: %s", xl2pdf.ErrApplicationUnavailable, a.Name())
	}

	fmt.Fprintln(env.Stdout, "status:   ready")
	return nil
}
