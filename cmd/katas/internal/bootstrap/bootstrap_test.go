package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuildModuleWiresServices(t *testing.T) {
	resources, err := BuildModule(Options{LogLevel: "error"})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if resources.Module == nil {
		t.Fatal("expected module to be initialised")
	}
	if resources.Compiler == nil {
		t.Fatal("expected compiler service to be configured")
	}
	if resources.Scaffolder == nil {
		t.Fatal("expected scaffolder service to be configured")
	}
	if resources.Logger == nil {
		t.Fatal("expected CLI logger to be configured")
	}
}

func TestBuildModuleReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "katas.yml")
	content := "content_dir: exercises\noutput:\n  dir: build\nlogging:\n  provider: noop\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	resources, err := BuildModule(Options{ConfigFile: path})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}

	cfg := resources.Module.Container().Config
	if cfg.ContentDir != "exercises" {
		t.Fatalf("expected content dir from file, got %q", cfg.ContentDir)
	}
	if cfg.Output.Dir != "build" {
		t.Fatalf("expected output dir from file, got %q", cfg.Output.Dir)
	}
	if cfg.Logging.Provider != "noop" {
		t.Fatalf("expected logging provider from file, got %q", cfg.Logging.Provider)
	}
}

func TestBuildModulePrecedenceFlagsOverEnvOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "katas.yml")
	content := "content_dir: from-file\noutput:\n  dir: from-file\nlogging:\n  provider: noop\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("KATAS_CONFIG", path)
	t.Setenv("KATAS_CONTENT_DIR", "from-env")
	t.Setenv("KATAS_OUTPUT_DIR", "from-env")

	resources, err := BuildModule(Options{ContentDir: "from-flag"})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}

	cfg := resources.Module.Container().Config
	if cfg.ContentDir != "from-flag" {
		t.Fatalf("expected flag to win, got %q", cfg.ContentDir)
	}
	if cfg.Output.Dir != "from-env" {
		t.Fatalf("expected env to beat file, got %q", cfg.Output.Dir)
	}
}

func TestBuildModuleRejectsBrokenConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "katas.yml")
	if err := os.WriteFile(path, []byte(":\tnot yaml"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := BuildModule(Options{ConfigFile: path}); err == nil {
		t.Fatal("expected parse error for broken config file")
	}
}

func TestBuildModuleRejectsInvalidConfig(t *testing.T) {
	t.Setenv("KATAS_LOG_PROVIDER", "syslog")

	if _, err := BuildModule(Options{}); err == nil {
		t.Fatal("expected validation error for unknown logging provider")
	}
}
