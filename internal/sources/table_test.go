package sources_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-katas/internal/sources"
)

func corpusDir(tb testing.TB, files map[string]string) string {
	tb.Helper()
	root := tb.TempDir()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			tb.Fatalf("mkdir %s: %v", full, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			tb.Fatalf("write %s: %v", full, err)
		}
	}
	return root
}

type countingFS struct {
	inner fs.FS
	opens map[string]int
}

func (c *countingFS) Open(name string) (fs.File, error) {
	c.opens[name]++
	return c.inner.Open(name)
}

func newTable(tb testing.TB, fsys fs.FS) *sources.Table {
	tb.Helper()
	reader, err := sources.NewReader(fsys)
	if err != nil {
		tb.Fatalf("NewReader returned error: %v", err)
	}
	return sources.NewTable(reader, nil)
}

func TestAggregateReadsEachPathOnce(t *testing.T) {
	root := corpusDir(t, map[string]string{
		"lib/Common.qs":               "namespace Common {}",
		"kata_a/y_gate/Verify.qs":     "namespace A {}",
		"kata_b/global_phase/Test.qs": "namespace B {}",
	})
	counting := &countingFS{inner: os.DirFS(root), opens: map[string]int{}}
	table := newTable(t, counting)

	first, err := table.Aggregate("kata_a", "y_gate", "kata_a/index.md",
		[]string{"y_gate/Verify.qs", "../lib/Common.qs"})
	if err != nil {
		t.Fatalf("first Aggregate returned error: %v", err)
	}
	second, err := table.Aggregate("kata_b", "global_phase", "kata_b/index.md",
		[]string{"global_phase/Test.qs", "../lib/Common.qs"})
	if err != nil {
		t.Fatalf("second Aggregate returned error: %v", err)
	}

	if first[1] != second[1] {
		t.Fatalf("shared library produced different ids: %q vs %q", first[1], second[1])
	}
	if got := counting.opens["lib/Common.qs"]; got != 1 {
		t.Fatalf("expected shared library to be read once, got %d reads", got)
	}
	if table.Len() != 3 {
		t.Fatalf("expected 3 unique sources, got %d", table.Len())
	}
}

func TestAggregatePreservesArgumentAndInsertionOrder(t *testing.T) {
	root := corpusDir(t, map[string]string{
		"kata/ex/Verification.qs": "verify",
		"lib/One.qs":              "one",
		"lib/Two.qs":              "two",
	})
	table := newTable(t, os.DirFS(root))

	ids, err := table.Aggregate("kata", "ex", "kata/index.md",
		[]string{"ex/Verification.qs", "../lib/One.qs", "../lib/Two.qs"})
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}

	want := []string{"kata__ex__Verification.qs", "lib__One.qs", "lib__Two.qs"}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("id %d: expected %q, got %q", i, want[i], ids[i])
		}
	}

	entries := table.Entries()
	for i := range want {
		if entries[i].ID != want[i] {
			t.Fatalf("entry %d out of order: expected %q, got %q", i, want[i], entries[i].ID)
		}
	}
	if entries[0].Code != "verify" {
		t.Fatalf("unexpected code payload: %q", entries[0].Code)
	}
}

func TestAggregateDropsDuplicateReferences(t *testing.T) {
	root := corpusDir(t, map[string]string{
		"kata/ex/Verification.qs": "verify",
		"lib/Common.qs":           "common",
	})
	table := newTable(t, os.DirFS(root))

	ids, err := table.Aggregate("kata", "ex", "kata/index.md",
		[]string{"ex/Verification.qs", "../lib/Common.qs", "../lib/Common.qs"})
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected duplicate to be dropped, got ids %v", ids)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 unique sources, got %d", table.Len())
	}
}

func TestAggregateFailsOnMissingFile(t *testing.T) {
	root := corpusDir(t, map[string]string{
		"kata/index.md": "# Kata",
	})
	table := newTable(t, os.DirFS(root))

	_, err := table.Aggregate("kata", "y_gate", "kata/index.md", []string{"y_gate/Verification.qs"})
	if err == nil {
		t.Fatal("expected missing resource error, got nil")
	}
	if !errors.Is(err, sources.ErrMissingResource) {
		t.Fatalf("expected ErrMissingResource, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not_found category, got %v", err)
	}
	for _, want := range []string{"kata/y_gate/Verification.qs", "y_gate", "kata/index.md"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to mention %q, got %v", want, err)
		}
	}
}

func TestAggregateRejectsEscapingReference(t *testing.T) {
	root := corpusDir(t, map[string]string{
		"kata/index.md": "# Kata",
	})
	table := newTable(t, os.DirFS(root))

	_, err := table.Aggregate("kata", "ex", "kata/index.md", []string{"../../outside.qs"})
	if !errors.Is(err, sources.ErrPathEscapesCorpus) {
		t.Fatalf("expected ErrPathEscapesCorpus, got %v", err)
	}
}

func TestAggregateDetectsIDCollision(t *testing.T) {
	root := corpusDir(t, map[string]string{
		"a/b__c.qs": "first",
		"a/b/c.qs":  "second",
	})
	table := newTable(t, os.DirFS(root))

	if _, err := table.Aggregate("", "ex1", "a/index.md", []string{"a/b__c.qs"}); err != nil {
		t.Fatalf("first Aggregate returned error: %v", err)
	}
	_, err := table.Aggregate("", "ex2", "a/index.md", []string{"a/b/c.qs"})
	if !errors.Is(err, sources.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryConflict) {
		t.Fatalf("expected conflict category, got %v", err)
	}
}

func TestDeriveID(t *testing.T) {
	cases := map[string]string{
		"single_qubit_gates/y_gate/Verification.qs": "single_qubit_gates__y_gate__Verification.qs",
		"lib/Common.qs": "lib__Common.qs",
		"Top.qs":        "Top.qs",
	}
	for canonical, want := range cases {
		if got := sources.DeriveID(canonical); got != want {
			t.Fatalf("DeriveID(%q): expected %q, got %q", canonical, want, got)
		}
	}
}
