package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/goliatone/go-katas/cmd/katas/internal/bootstrap"
	buildcmd "github.com/goliatone/go-katas/internal/commands/build"
	"github.com/goliatone/go-katas/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runBuild(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("katas build: %v", err)
	}
}

func runBuild(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("katas-build", flag.ExitOnError)
	configFile := fs.String("config", "", "Path to a YAML config file (defaults to $KATAS_CONFIG)")
	contentDir := fs.String("content-dir", "", "Path to the corpus root (defaults to config)")
	outputDir := fs.String("output-dir", "", "Directory artifacts are written to (defaults to config)")
	baseURL := fs.String("base-url", "", "Site base URL recorded in manifest deep links")
	logLevel := fs.String("log-level", "", "Minimum log level")
	dryRun := fs.Bool("dry-run", false, "Run the full pipeline and validation without writing artifacts")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ConfigFile: *configFile,
		ContentDir: *contentDir,
		OutputDir:  *outputDir,
		BaseURL:    *baseURL,
		LogLevel:   *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Compiler == nil {
		return fmt.Errorf("compiler service not configured")
	}

	handler := buildcmd.NewBuildCorpusHandler(module.Compiler, module.Logger)
	cmd := buildcmd.BuildCorpusCommand{
		DryRun: *dryRun,
		ResultCallback: func(result *interfaces.BuildResult) {
			printBuildResult(out, result)
		},
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute build command: %w", err)
	}
	return nil
}

func printBuildResult(w io.Writer, result *interfaces.BuildResult) {
	if result == nil {
		return
	}
	fmt.Fprintf(w, "built %d katas (%d published, %d sections, %d sources) in %s\n",
		result.Katas, result.Published, result.Sections, result.Sources,
		result.Duration.Round(time.Millisecond))
	for _, art := range result.Artifacts {
		status := "written"
		if !art.Written {
			status = "dry-run"
		}
		fmt.Fprintf(w, "  %-8s %s (%d bytes, %s)\n", art.Mode, art.Path, art.Bytes, status)
	}
	if result.Manifest != "" {
		fmt.Fprintf(w, "  manifest %s\n", result.Manifest)
	}
}
