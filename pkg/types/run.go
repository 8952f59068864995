package types

import (
	"crypto/sha1"
	"encoding/hex"
	"time"
)

// Run records one detection over one source (typically a file of date
// strings, one per line). Runs are what pkg/store persists.
type Run struct {
	SourceID   string    `json:"source_id"` // SHA-1 over the input lines
	Source     string    `json:"source"`    // path or label
	Lines      int       `json:"lines"`
	Format     string    `json:"format,omitempty"`  // empty on failure
	Failure    string    `json:"failure,omitempty"` // FailureKind label
	DetectedAt time.Time `json:"detected_at"`
}

// ComputeSourceID computes a content-based ID for a batch of input lines.
// Lines are hashed with null byte separators so reordering or splitting
// changes the ID.
func ComputeSourceID(lines []string) string {
	h := sha1.New()
	for i, line := range lines {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(line))
	}
	return hex.EncodeToString(h.Sum(nil))
}
