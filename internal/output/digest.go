package output

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bundlegraph/cli/internal/core"
)

// ComputeDigest computes a deterministic SHA256 digest over a set of action
// records. The digest is independent of input order.
//
// Algorithm:
//  1. Sort records by id
//  2. json.Marshal each record (Go sorts map keys alphabetically)
//  3. Concatenate serialized bytes with newline separators
//  4. SHA256 the result → "sha256:<hex>"
func ComputeDigest(records []core.ActionRecord) string {
	// Work on a copy to avoid mutating the caller's slice
	sorted := make([]core.ActionRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	h := sha256.New()
	for i, r := range sorted {
		b, err := json.Marshal(r)
		if err != nil {
			// Records hold only strings, slices and maps; fall back to a
			// stable string form all the same.
			b = []byte(fmt.Sprintf("%v", r))
		}
		h.Write(b)
		if i < len(sorted)-1 {
			h.Write([]byte("\n"))
		}
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil))
}
