package sources

import (
	"strings"

	"github.com/goliatone/go-katas/internal/logging"
	"github.com/goliatone/go-katas/pkg/interfaces"
)

// Joiner replaces path separators when deriving source ids.
const Joiner = "__"

// Entry is one shared code source: a stable id plus the file content it was
// read from. Path keeps the canonical origin for diagnostics and never
// reaches the emitted corpus document.
type Entry struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Path string `json:"-"`
}

// Table is the corpus-wide deduplicated store of code sources. It flows
// through the build as an explicit dependency: one instance per run, shared
// by both rendering passes, populated exactly once per unique path.
type Table struct {
	reader  *Reader
	logger  interfaces.Logger
	ids     map[string]string
	paths   map[string]string
	entries []Entry
}

// NewTable builds an empty table over the given corpus reader.
func NewTable(reader *Reader, logger interfaces.Logger) *Table {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Table{
		reader: reader,
		logger: logger,
		ids:    map[string]string{},
		paths:  map[string]string{},
	}
}

// DeriveID turns a canonical corpus-relative path into the stable source id
// used by exercises: path separators become the fixed joiner.
func DeriveID(canonical string) string {
	return strings.ReplaceAll(strings.TrimPrefix(canonical, "./"), "/", Joiner)
}

// Aggregate resolves every reference against docDir, inserts unseen files
// into the table, and returns the source ids in argument order. Each unique
// path is read exactly once per run; repeated references reuse the recorded
// entry. Duplicate references within one call are dropped keep-first so an
// exercise never lists the same source twice. owner names the exercise or
// solution requesting the aggregation and document is the path of the
// document holding the reference, both for error provenance.
func (t *Table) Aggregate(docDir, owner, document string, refs []string) ([]string, error) {
	ids := make([]string, 0, len(refs))
	seen := make(map[string]struct{}, len(refs))

	for _, ref := range refs {
		canonical, err := t.reader.Resolve(docDir, ref)
		if err != nil {
			return nil, missingResource(err, ref, document, owner)
		}
		id, err := t.insert(canonical, document, owner)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			t.logger.Warn("sources: duplicate reference dropped",
				"id", id,
				"owner", owner,
				"document", document,
			)
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func (t *Table) insert(canonical, document, owner string) (string, error) {
	if id, ok := t.ids[canonical]; ok {
		return id, nil
	}

	id := DeriveID(canonical)
	if other, taken := t.paths[id]; taken && other != canonical {
		return "", duplicateID(id, other, canonical)
	}

	code, err := t.reader.ReadCanonical(canonical)
	if err != nil {
		return "", missingResource(err, canonical, document, owner)
	}

	t.ids[canonical] = id
	t.paths[id] = canonical
	t.entries = append(t.entries, Entry{ID: id, Code: code, Path: canonical})
	t.logger.Debug("sources: code source registered", "id", id, "path", canonical)
	return id, nil
}

// Entries returns the table content in first-seen insertion order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len reports how many unique sources the table holds.
func (t *Table) Len() int {
	return len(t.entries)
}

// IDs returns every registered id in insertion order, for uniqueness
// validation against the section tree.
func (t *Table) IDs() []string {
	out := make([]string, 0, len(t.entries))
	for _, entry := range t.entries {
		out = append(out, entry.ID)
	}
	return out
}
