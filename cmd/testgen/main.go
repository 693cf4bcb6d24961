package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/toyz/testgen/internal/cli"
	"github.com/toyz/testgen/internal/generator"
	"github.com/toyz/testgen/internal/manifest"
	"github.com/toyz/testgen/internal/server"
	"github.com/toyz/testgen/internal/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("testgen", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		outFlag        = flags.String("out", "", "Write one <Controller>_<method>.txt fragment per action into this directory (stdout otherwise)")
		verboseFlag    = flags.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag      = flags.Bool("quiet", false, "Only show errors and final results")
		superAdminFlag = flags.Bool("super-admin", false, "Assign the super-admin role to every generated actor")
		frameworkFlag  = flags.String("framework", "", "Framework version, e.g. 10.2 (overrides framework_version)")
		serveFlag      = flags.String("serve", "", "Serve POST /generate on this address instead of reading manifests")
		cleanFlag      = flags.Bool("clean", false, "Delete previously generated fragment files from the specified directories")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: testgen [options] <manifest-paths...>\n\n")
		fmt.Fprintf(stderr, "Test Scaffold Generator\n")
		fmt.Fprintf(stderr, "Reads action manifests and generates feature test bodies with validation cases.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nArguments:\n")
		fmt.Fprintf(stderr, "  manifest-paths     Manifest files (.yaml, .yml, .json) or directories containing them\n")
		fmt.Fprintf(stderr, "                     Supports patterns like './manifests/...' for recursive scanning\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  testgen blog.yaml                        # Print fragments for one manifest\n")
		fmt.Fprintf(stderr, "  testgen -out tests/generated ./...       # Write fragments for every manifest\n")
		fmt.Fprintf(stderr, "  testgen -framework 10 -super-admin api/  # Override manifest settings\n")
		fmt.Fprintf(stderr, "  testgen -clean tests/generated           # Delete generated fragments\n")
		fmt.Fprintf(stderr, "  testgen -serve :8080                     # Serve the HTTP API\n")
	}

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case *quietFlag:
		diagnostics = utils.NewQuietDiagnostics()
	case *verboseFlag:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	if stdout != os.Stdout || stderr != os.Stderr {
		diagnostics.SetOutput(stdout, stderr)
	}

	overrides := manifest.Overrides{SuperAdmin: *superAdminFlag, FrameworkVersion: *frameworkFlag}
	if v := overrides.FrameworkVersion; v != "" && generator.CanonicalVersion(v) == "" {
		diagnostics.Error("'%s' is not a framework version", v)
		return 2
	}

	if *serveFlag != "" {
		return serve(ctx, *serveFlag, overrides, diagnostics)
	}

	paths := flags.Args()
	if len(paths) == 0 {
		fmt.Fprintf(stderr, "Error: At least one manifest path is required\n\n")
		flags.Usage()
		return 1
	}

	diagnostics.Header("Test Scaffold Generator")

	if *cleanFlag {
		cleaner := cli.NewCleaner()
		if err := cleaner.CleanGeneratedFiles(paths); err != nil {
			diagnostics.Error("Clean operation failed: %v", err)
			return 1
		}
		diagnostics.Success("Removed %d generated fragment file(s)", len(cleaner.Removed()))
		return 0
	}

	if *verboseFlag {
		diagnostics.PhaseHeader("Configuration")
		diagnostics.List("Manifests: %s", strings.Join(paths, ", "))
		if *outFlag != "" {
			diagnostics.List("Output directory: %s", *outFlag)
		}
		if overrides.FrameworkVersion != "" {
			diagnostics.List("Framework version: %s", overrides.FrameworkVersion)
		}
		diagnostics.List("Super admin: %t", overrides.SuperAdmin)
	}

	runner := cli.NewGenerator(*verboseFlag, diagnostics)
	runner.SetStdout(stdout)
	runner.Reporter().SetOutput(stderr)

	err := runner.Run(ctx, cli.Config{
		Manifests:        paths,
		OutputDir:        *outFlag,
		SuperAdmin:       overrides.SuperAdmin,
		FrameworkVersion: overrides.FrameworkVersion,
		Verbose:          *verboseFlag,
	})

	summary := runner.GetSummary()
	diagnostics.Summary("Generation Summary", summary.Stats())
	if *verboseFlag && len(summary.GeneratedFiles) > 0 {
		diagnostics.PhaseHeader("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
	}

	if err != nil {
		runner.Reporter().ReportError(err)
		return 1
	}
	diagnostics.GenerationComplete()
	return 0
}

// serve runs the HTTP server until ctx is cancelled
func serve(ctx context.Context, addr string, overrides manifest.Overrides, diagnostics *utils.DiagnosticSystem) int {
	srv := server.New(diagnostics, server.Options{Overrides: overrides})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(addr) }()

	select {
	case err := <-errCh:
		if err != nil {
			diagnostics.Error("Server failed: %v", err)
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		diagnostics.Error("Shutdown failed: %v", err)
		return 1
	}
	diagnostics.Info("Server stopped")
	return 0
}
