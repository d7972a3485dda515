package emit_test

import (
	"testing"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-katas/internal/emit"
)

func TestKataURLFromBaseAndRoute(t *testing.T) {
	r, err := emit.NewLinkResolver(emit.LinkOptions{
		BaseURL:   "https://quantum.example.com",
		KataRoute: "/katas/:kata",
	})
	if err != nil {
		t.Fatalf("NewLinkResolver() error = %v", err)
	}
	if r == nil {
		t.Fatal("NewLinkResolver() returned a nil resolver for a configured base URL")
	}

	url, err := r.KataURL("single_qubit_gates")
	if err != nil {
		t.Fatalf("KataURL() error = %v", err)
	}
	if want := "https://quantum.example.com/katas/single_qubit_gates"; url != want {
		t.Fatalf("KataURL() = %q, want %q", url, want)
	}
}

func TestLinkResolverDisabledWithoutBaseURL(t *testing.T) {
	r, err := emit.NewLinkResolver(emit.LinkOptions{})
	if err != nil {
		t.Fatalf("NewLinkResolver() error = %v", err)
	}
	if r != nil {
		t.Fatal("NewLinkResolver() should be nil without a base URL")
	}

	url, err := r.KataURL("pauli_gates")
	if err != nil {
		t.Fatalf("KataURL() on nil resolver error = %v", err)
	}
	if url != "" {
		t.Fatalf("KataURL() on nil resolver = %q, want empty", url)
	}
}

func TestLinkResolverRequiresRouteWithBase(t *testing.T) {
	if _, err := emit.NewLinkResolver(emit.LinkOptions{BaseURL: "https://example.com"}); err == nil {
		t.Fatal("NewLinkResolver() expected an error for a base URL without a kata route")
	}
}

func TestLinkResolverRoutesOverride(t *testing.T) {
	r, err := emit.NewLinkResolver(emit.LinkOptions{
		Group: "docs",
		Routes: &urlkit.Config{
			Groups: []urlkit.GroupConfig{
				{
					Name:    "docs",
					BaseURL: "https://docs.example.com",
					Paths: map[string]string{
						"kata": "/training/:kata",
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("NewLinkResolver() error = %v", err)
	}

	url, err := r.KataURL("teleportation")
	if err != nil {
		t.Fatalf("KataURL() error = %v", err)
	}
	if want := "https://docs.example.com/training/teleportation"; url != want {
		t.Fatalf("KataURL() = %q, want %q", url, want)
	}
}

func TestLinkResolverUnknownGroup(t *testing.T) {
	_, err := emit.NewLinkResolver(emit.LinkOptions{
		Group: "missing",
		Routes: &urlkit.Config{
			Groups: []urlkit.GroupConfig{
				{Name: "docs", BaseURL: "https://docs.example.com", Paths: map[string]string{"kata": "/k/:kata"}},
			},
		},
	})
	if err == nil {
		t.Fatal("NewLinkResolver() expected an error for an unknown route group")
	}
}
