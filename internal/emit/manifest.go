package emit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const (
	// ManifestName is the metadata file committed beside the corpus artifacts.
	ManifestName = ".katas-manifest.json"

	manifestVersion = 1
)

// Manifest records build metadata next to the corpus artifacts: which run
// produced them, their fingerprints, and per-kata summaries. The manifest is
// metadata, not corpus output; artifacts stay byte-deterministic while the
// manifest carries the run id and timestamp.
type Manifest struct {
	Version     int                `json:"version"`
	RunID       string             `json:"run_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Config      string             `json:"config_fingerprint,omitempty"`
	Artifacts   []ManifestArtifact `json:"artifacts"`
	Katas       []ManifestKata     `json:"katas,omitempty"`
}

// ManifestArtifact pins one emitted artifact by fingerprint.
type ManifestArtifact struct {
	Mode        string `json:"mode"`
	Path        string `json:"path"`
	Fingerprint string `json:"fingerprint"`
	Size        int64  `json:"size"`
}

// ManifestKata summarizes one compiled kata. Summary and Tags echo the main
// document's frontmatter when present.
type ManifestKata struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Published bool     `json:"published"`
	Sections  int      `json:"sections"`
	Summary   string   `json:"summary,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	URL       string   `json:"url,omitempty"`
}

// NewManifest starts a manifest for one build run.
func NewManifest(runID string, generatedAt time.Time) *Manifest {
	return &Manifest{
		Version:     manifestVersion,
		RunID:       runID,
		GeneratedAt: generatedAt,
	}
}

// Marshal renders the manifest with the same framing as corpus artifacts.
// Artifacts and katas keep their append order, which follows the canonical
// mode and discovery orders.
func (m *Manifest) Marshal() ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("emit: marshal requires a manifest")
	}
	cloned := *m
	if cloned.Version == 0 {
		cloned.Version = manifestVersion
	}
	data, err := json.MarshalIndent(cloned, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("emit: marshal manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// Fingerprint derives the stable artifact id recorded in the manifest and
// compared by verify: a deterministic UUID over the artifact's SHA-256
// digest.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])
	uid, err := hashid.NewUUID("katas:artifact:"+digest, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(digest)).String()
	}
	return uid.String()
}
