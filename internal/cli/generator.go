// Package cli coordinates a command line run: it finds manifests, generates
// every action concurrently and writes or prints the fragments.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/manifest"
	"github.com/toyz/testgen/internal/models"
	"github.com/toyz/testgen/internal/utils"
)

// Generator coordinates the CLI generation process
type Generator struct {
	scanner     *ManifestScanner
	loader      *manifest.Loader
	reporter    *DiagnosticReporter
	diagnostics *utils.DiagnosticSystem
	stdout      io.Writer
	summary     GenerationSummary
}

// NewGenerator creates a CLI generator reporting through diagnostics
func NewGenerator(verbose bool, diagnostics *utils.DiagnosticSystem) *Generator {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	return &Generator{
		scanner:     NewManifestScanner(),
		loader:      manifest.NewLoader(),
		reporter:    NewDiagnosticReporter(verbose),
		diagnostics: diagnostics,
		stdout:      os.Stdout,
	}
}

// SetStdout redirects fragments printed when no output directory is set
func (g *Generator) SetStdout(w io.Writer) {
	g.stdout = w
}

// Reporter returns the reporter used for failures
func (g *Generator) Reporter() *DiagnosticReporter {
	return g.reporter
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run generates fragments for every manifest in config. Manifest problems
// and failed actions are collected; the returned error aggregates them
// after every manifest has been processed.
func (g *Generator) Run(ctx context.Context, config Config) error {
	startTime := time.Now()
	g.summary = GenerationSummary{RunID: uuid.NewString()}

	g.diagnostics.Verbose("Run %s started at %s", g.summary.RunID, startTime.Format("15:04:05"))

	paths, err := g.scanner.ScanManifests(config.Manifests)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New(errors.FileSystemErrorCode, "no manifests found").
			WithContext("arguments", config.Manifests).
			WithSuggestions(
				"pass manifest files or directories containing .yaml, .yml or .json files",
				"use dir/... to scan directories recursively",
			)
	}
	g.diagnostics.Info("Found %d manifest(s)", len(paths))

	var problems *errors.MultipleErrors
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.processManifest(ctx, path, config, &problems); err != nil {
			return err
		}
	}

	g.diagnostics.Verbose("Run finished in %s", time.Since(startTime).Round(time.Millisecond))
	return problems.ErrorOrNil()
}

// processManifest generates one manifest. Only cancellation is returned
// directly; everything else is added to problems.
func (g *Generator) processManifest(ctx context.Context, path string, config Config, problems **errors.MultipleErrors) error {
	g.diagnostics.Manifest(path)

	m, err := g.loader.Load(path)
	if err != nil {
		g.diagnostics.PhaseFailure(fmt.Sprintf("%s could not be loaded", path))
		addProblem(problems, err)
		return nil
	}
	g.summary.ManifestsProcessed++
	g.summary.ActionsFound += len(m.Actions)

	results, err := m.Run(ctx, config.overrides().Apply(m.GeneratorConfig()), manifest.RunOptions{Logger: g.diagnostics})
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		addProblem(problems, err)
		return nil
	}

	g.diagnostics.Indent()
	defer g.diagnostics.Unindent()

	for _, result := range results {
		name := result.Job.Name()
		if result.Failed() {
			g.summary.ActionsFailed++
			g.diagnostics.PhaseFailure(name)
			addProblem(problems, result.Err)
			continue
		}

		if err := g.emit(result, config.OutputDir); err != nil {
			g.summary.ActionsFailed++
			g.diagnostics.PhaseFailure(name)
			addProblem(problems, err)
			continue
		}

		if kind := result.Fragment.Kind; (kind == models.KindStore || kind == models.KindUpdate) && len(result.Fragment.DataProvider) == 0 {
			g.reporter.ReportWarning(fmt.Sprintf("%s has no validation rules; its data provider is empty", name))
		}
		g.summary.FragmentsGenerated++
		g.summary.ValidationCases += len(result.Fragment.DataProvider)
		g.diagnostics.PhaseItem(fmt.Sprintf("%s (%s)", name, result.Fragment.Kind))
	}
	return nil
}

// emit writes the fragment to the output directory or prints it
func (g *Generator) emit(result manifest.Result, outputDir string) error {
	content := RenderFragment(result.Fragment)
	if outputDir == "" {
		_, err := fmt.Fprintln(g.stdout, content)
		return err
	}

	name := FragmentFileName(result.Job.Action)
	path, err := utils.WriteFile(outputDir, name, []byte(content))
	if err != nil {
		return errors.WrapFileSystemError("write", name, err).
			WithContext("action", result.Job.Name())
	}
	g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, path)
	g.diagnostics.Debug("wrote %s", path)
	return nil
}

func addProblem(problems **errors.MultipleErrors, err error) {
	switch e := err.(type) {
	case *errors.MultipleErrors:
		for _, item := range e.Errors {
			errors.AddToMultiple(problems, item)
		}
	case errors.TestgenError:
		errors.AddToMultiple(problems, e)
	default:
		errors.AddToMultiple(problems, errors.Wrap(errors.UnknownErrorCode, err.Error(), err))
	}
}
