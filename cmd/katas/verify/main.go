package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-katas/cmd/katas/internal/bootstrap"
	buildcmd "github.com/goliatone/go-katas/internal/commands/build"
	"github.com/goliatone/go-katas/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runVerify(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("katas verify: %v", err)
	}
}

func runVerify(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("katas-verify", flag.ExitOnError)
	configFile := fs.String("config", "", "Path to a YAML config file (defaults to $KATAS_CONFIG)")
	contentDir := fs.String("content-dir", "", "Path to the corpus root (defaults to config)")
	outputDir := fs.String("output-dir", "", "Directory holding the artifacts to check (defaults to config)")
	logLevel := fs.String("log-level", "", "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ConfigFile: *configFile,
		ContentDir: *contentDir,
		OutputDir:  *outputDir,
		LogLevel:   *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Compiler == nil {
		return fmt.Errorf("compiler service not configured")
	}

	handler := buildcmd.NewVerifyCorpusHandler(module.Compiler, module.Logger)
	cmd := buildcmd.VerifyCorpusCommand{
		ResultCallback: func(result *interfaces.VerifyResult) {
			printVerifyResult(out, result)
		},
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute verify command: %w", err)
	}
	return nil
}

func printVerifyResult(w io.Writer, result *interfaces.VerifyResult) {
	if result == nil {
		return
	}
	for _, drift := range result.Artifacts {
		switch {
		case drift.Missing:
			fmt.Fprintf(w, "  %-8s %s missing\n", drift.Mode, drift.Path)
		case drift.Match:
			fmt.Fprintf(w, "  %-8s %s ok\n", drift.Mode, drift.Path)
		default:
			fmt.Fprintf(w, "  %-8s %s drifted (want %s, have %s)\n", drift.Mode, drift.Path, drift.Want, drift.Have)
		}
	}
	if result.Clean {
		fmt.Fprintln(w, "artifacts match the corpus")
	}
}
