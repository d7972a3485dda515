package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-katas/cmd/katas/internal/bootstrap"
	scaffoldcmd "github.com/goliatone/go-katas/internal/commands/scaffold"
	"github.com/goliatone/go-katas/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runNew(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("katas new: %v", err)
	}
}

func runNew(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("katas-new", flag.ExitOnError)
	configFile := fs.String("config", "", "Path to a YAML config file (defaults to $KATAS_CONFIG)")
	contentDir := fs.String("content-dir", "", "Path to the corpus root (defaults to config)")
	title := fs.String("title", "", "Human title for the new kata (required)")
	id := fs.String("id", "", "Directory name override; derived from the title when empty")
	publish := fs.Bool("publish", false, "Append the new kata to the published index")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ConfigFile: *configFile,
		ContentDir: *contentDir,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Scaffolder == nil {
		return fmt.Errorf("scaffolder service not configured")
	}

	handler := scaffoldcmd.NewScaffoldKataHandler(module.Scaffolder, module.Logger)
	cmd := scaffoldcmd.ScaffoldKataCommand{
		Title:   *title,
		ID:      *id,
		Publish: *publish,
		ResultCallback: func(result *interfaces.ScaffoldResult) {
			printScaffoldResult(out, result)
		},
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute scaffold command: %w", err)
	}
	return nil
}

func printScaffoldResult(w io.Writer, result *interfaces.ScaffoldResult) {
	if result == nil {
		return
	}
	fmt.Fprintf(w, "created kata %s at %s\n", result.ID, result.Dir)
	for _, file := range result.Files {
		fmt.Fprintf(w, "  %s\n", file)
	}
	if result.Registered {
		fmt.Fprintln(w, "  registered in published index")
	}
}
