package segment_test

import (
	"errors"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-katas/internal/macro"
	"github.com/goliatone/go-katas/internal/segment"
)

func TestScanPlainProseYieldsSingleSegment(t *testing.T) {
	segments, err := segment.Scan("kata/index.md", "# Title\n\nJust prose, no macros.\n")
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Kind != segment.KindMarkdown {
		t.Fatalf("expected markdown segment, got %s", segments[0].Kind)
	}
	if segments[0].Line != 1 {
		t.Fatalf("expected segment to start at line 1, got %d", segments[0].Line)
	}
}

func TestScanSplitsProseAroundMacros(t *testing.T) {
	doc := "# Single-Qubit Gates\n\n" +
		"@[section]({\"id\": \"overview\", \"title\": \"Overview\"})\n\n" +
		"This kata introduces single-qubit gates.\n"

	segments, err := segment.Scan("kata/index.md", doc)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}

	if segments[0].Kind != segment.KindMarkdown || !strings.HasPrefix(segments[0].Text, "# Single-Qubit Gates") {
		t.Fatalf("unexpected first segment: %+v", segments[0])
	}
	if !segments[1].IsMacro(macro.TypeSection) {
		t.Fatalf("expected section macro, got %+v", segments[1])
	}
	if segments[1].Line != 3 {
		t.Fatalf("expected macro at line 3, got %d", segments[1].Line)
	}
	if segments[2].Kind != segment.KindMarkdown || !strings.Contains(segments[2].Text, "introduces single-qubit gates") {
		t.Fatalf("unexpected trailing segment: %+v", segments[2])
	}
}

func TestScanKeepsProsePrecedingMacroOnSameLine(t *testing.T) {
	doc := "See the listing @[example]({\"id\": \"ex1\", \"codePath\": \"./Code.qs\"})\n"

	segments, err := segment.Scan("kata/index.md", doc)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Text != "See the listing " {
		t.Fatalf("unexpected prose: %q", segments[0].Text)
	}
	if !segments[1].IsMacro(macro.TypeExample) {
		t.Fatalf("expected example macro, got %+v", segments[1])
	}
}

func TestScanDropsWhitespaceOnlySpans(t *testing.T) {
	doc := "   \n\n@[section]({\"id\": \"s\", \"title\": \"S\"})\n   \t\n"

	segments, err := segment.Scan("kata/index.md", doc)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("expected only the macro segment, got %d segments", len(segments))
	}
	if segments[0].Kind != segment.KindMacro {
		t.Fatalf("expected macro segment, got %s", segments[0].Kind)
	}
}

func TestScanAllowsClosingCharactersInsideStrings(t *testing.T) {
	doc := "@[example]({\"id\": \"with)paren\", \"codePath\": \"./a}b.qs\"})"

	segments, err := segment.Scan("kata/index.md", doc)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(segments) != 1 || !segments[0].IsMacro(macro.TypeExample) {
		t.Fatalf("expected single example macro, got %+v", segments)
	}
	example := segments[0].Macro.(macro.Example)
	if example.ID != "with)paren" || example.CodePath != "./a}b.qs" {
		t.Fatalf("payload decoded incorrectly: %+v", example)
	}
}

func TestScanTreatsUnterminatedPatternAsProse(t *testing.T) {
	doc := "@[example]({\"id\": \"x\", \"codePath\": \"y\"}) trailing words\n"

	segments, err := segment.Scan("kata/index.md", doc)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(segments) != 1 || segments[0].Kind != segment.KindMarkdown {
		t.Fatalf("expected prose fallback, got %+v", segments)
	}
	if !strings.Contains(segments[0].Text, "trailing words") {
		t.Fatalf("prose lost: %q", segments[0].Text)
	}
}

func TestScanFailsOnMalformedPayload(t *testing.T) {
	doc := "# Title\n\n@[section]({\"id\": \"overview\", \"title\": })\n"

	_, err := segment.Scan("kata/index.md", doc)
	if err == nil {
		t.Fatal("expected malformed macro error, got nil")
	}
	if !errors.Is(err, segment.ErrMalformedMacro) {
		t.Fatalf("expected ErrMalformedMacro, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	for _, want := range []string{"section", "kata/index.md:3"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to mention %q, got %v", want, err)
		}
	}
}

func TestScanFailsOnUnknownMacroType(t *testing.T) {
	doc := "@[svg]({\"path\": \"./circuit.svg\"})\n"

	_, err := segment.Scan("kata/index.md", doc)
	if !errors.Is(err, macro.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType in chain, got %v", err)
	}
	if !errors.Is(err, segment.ErrMalformedMacro) {
		t.Fatalf("expected ErrMalformedMacro in chain, got %v", err)
	}
}

func TestScanHandlesMacroAtEndOfText(t *testing.T) {
	doc := "prose\n@[diagram-embed]({\"path\": \"./circuit.svg\"})"

	segments, err := segment.Scan("kata/index.md", doc)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if !segments[1].IsMacro(macro.TypeDiagramEmbed) {
		t.Fatalf("expected diagram-embed macro, got %+v", segments[1])
	}
	if segments[1].Line != 2 {
		t.Fatalf("expected macro at line 2, got %d", segments[1].Line)
	}
}

func TestScanFailsOnMissingRequiredProperty(t *testing.T) {
	doc := "@[exercise]({\"id\": \"y_gate\", \"title\": \"Y Gate\", \"path\": \"./y_gate\"})\n"

	_, err := segment.Scan("kata/index.md", doc)
	if err == nil {
		t.Fatal("expected schema violation, got nil")
	}
	var payloadErr *macro.PayloadError
	if !errors.As(err, &payloadErr) {
		t.Fatalf("expected PayloadError in chain, got %v", err)
	}
}
