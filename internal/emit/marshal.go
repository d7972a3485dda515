// Package emit turns a compiled corpus into its on-disk artifacts: the
// deterministic corpus JSON per render mode, the optional build manifest,
// and the atomic writer that commits them.
package emit

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-katas/internal/kata"
)

// Marshal renders a corpus artifact: struct-ordered keys, two-space indent,
// trailing newline. Identical corpora marshal to identical bytes, so artifact
// diffs track content changes only.
func Marshal(c kata.Corpus) ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("emit: marshal corpus: %w", err)
	}
	return append(data, '\n'), nil
}
