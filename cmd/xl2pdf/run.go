package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	xl2pdf "github.com/alnah/go-xl2pdf"
	"github.com/alnah/go-xl2pdf/internal/config"
)

func run(argv []string, env *Environment) error {
	if len(argv) > 1 {
		switch argv[1] {
		case "help":
			printUsage(env.Stdout)
			return nil
		case "version":
			fmt.Fprintf(env.Stdout, "xl2pdf %s\n", Version)
			return nil
		case "doctor":
			return runDoctor(env)
		}
	}

	flags, positional, err := parseFlags(argv[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if len(positional) == 0 {
		printUsage(env.Stderr)
		return fmt.Errorf("%w: missing input file or directory", errUsage)
	}
	if flags.retry < 0 {
		return fmt.Errorf("%w: --retry must be >= 0, got %d", errUsage, flags.retry)
	}

	cfg := config.DefaultConfig()
	if flags.config != "" {
		cfg, err = config.Load(flags.config)
		if err != nil {
			return err
		}
	}

	return runConvert(context.Background(), positional[0], cfg, flags, env)
}

func runConvert(ctx context.Context, input string, cfg *config.Config, flags *cliFlags, env *Environment) error {
	// Explicit flags win over config values.
	output := flags.output
	if output == "" {
		output = cfg.Output.DefaultDir
	}
	retry := cfg.Conversion.Retry
	if flags.changed("retry") {
		retry = flags.retry
	}
	overwrite := cfg.Conversion.Overwrite || flags.overwrite

	logger := zerolog.Nop()
	if flags.verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: env.Stderr, TimeFormat: time.Kitchen}).
			Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}

	opts := []xl2pdf.Option{xl2pdf.WithLogger(logger)}
	if cfg.Conversion.Sanitize == config.SanitizeRandom {
		opts = append(opts, xl2pdf.WithSanitizeMode(xl2pdf.SanitizeRandomName))
	}
	if cfg.Renderer.Binary != "" {
		opts = append(opts, xl2pdf.WithAutomation(xl2pdf.NewSofficeAutomation(cfg.Renderer.Binary, logger)))
	}
	svc := xl2pdf.New(opts...)

	if a := svc.Automation(); !a.Available() {
		fmt.Fprintln(env.Stderr, a.InstallHint())
		return fmt.Errorf("%w: %s", xl2pdf.ErrApplicationUnavailable, a.Name())
	}

	files, err := xl2pdf.Discover(input, flags.recursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no spreadsheet files found in %s", input)
	}

	inputIsDir := false
	if info, statErr := os.Stat(input); statErr == nil {
		inputIsDir = info.IsDir()
	}

	requests := make([]xl2pdf.Request, 0, len(files))
	for _, f := range files {
		requests = append(requests, xl2pdf.Request{
			Source:    f,
			Dest:      destFor(f, input, output, inputIsDir),
			Recursive: flags.recursive,
			Overwrite: overwrite,
		})
	}

	if !flags.quiet {
		fmt.Fprintf(env.Stdout, "Converting %d file(s)...\n", len(files))
	}

	summary := svc.Run(ctx, requests, retry)
	printResults(summary, flags, env)

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d conversion(s) failed", summary.Failed, summary.Total)
	}
	return nil
}

// destFor computes the destination hint for one source file. For directory
// input, the source's relative subpath is mirrored under the output
// directory; the trailing separator marks the hint as a directory even when
// it does not exist yet.
func destFor(file, input, output string, inputIsDir bool) string {
	if output == "" {
		return ""
	}
	if !inputIsDir {
		return output
	}
	rel, err := filepath.Rel(input, file)
	if err != nil {
		return output + string(os.PathSeparator)
	}
	return filepath.Join(output, filepath.Dir(rel)) + string(os.PathSeparator)
}

var (
	successMark = color.New(color.FgGreen)
	failureMark = color.New(color.FgRed)
)

func printResults(summary xl2pdf.Summary, flags *cliFlags, env *Environment) {
	for _, r := range summary.Results {
		switch {
		case r.OK() && !flags.quiet:
			successMark.Fprintf(env.Stdout, "✓ %s → %s", filepath.Base(r.Request.Source), r.OutputPath)
			if flags.verbose {
				fmt.Fprintf(env.Stdout, " (%s)", r.Duration.Round(time.Millisecond))
			}
			fmt.Fprintln(env.Stdout)
		case !r.OK():
			failureMark.Fprintf(env.Stderr, "✗ %s: %v\n", filepath.Base(r.Request.Source), r.Err)
		}
	}

	if !flags.quiet && summary.Total > 1 {
		fmt.Fprintf(env.Stdout, "Summary: %d/%d converted", summary.Succeeded, summary.Total)
		if summary.Recovered > 0 {
			fmt.Fprintf(env.Stdout, " (%d recovered on retry)", summary.Recovered)
		}
		fmt.Fprintln(env.Stdout)
	}

	if summary.Failed > 0 && flags.verbose {
		fmt.Fprintln(env.Stderr, "Troubleshooting:")
		for _, tip := range troubleshootingTips {
			fmt.Fprintf(env.Stderr, "  %s\n", tip)
		}
	}
}

var troubleshootingTips = []string{
	"close all running instances of the office application",
	"check whether the files are password-protected or corrupt",
	"check that the application is properly installed (xl2pdf doctor)",
	"check free disk space at the destination",
}
