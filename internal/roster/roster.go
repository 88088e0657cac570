// Package roster loads and indexes the expected-owner roster that scan
// results are reconciled against.
package roster

import (
	"log/slog"

	"phonebox-scanner/internal/slotid"
)

// Entry is one roster record. Entries are immutable once loaded; the
// security number is the join key.
type Entry struct {
	PersonID       string `json:"personId"`
	FullName       string `json:"fullName"`
	SecurityNumber string `json:"securityNumber"`
	CurrentGrade   string `json:"currentGrade"`
}

// Index builds a lookup from normalized security number to entry.
// Entries without a security number are skipped. Duplicate identifiers
// keep the last entry seen; each shadowed entry is reported through the
// logger so bad rosters surface instead of failing silently.
func Index(entries []Entry, logger *slog.Logger) map[string]Entry {
	if logger == nil {
		logger = slog.Default()
	}

	idx := make(map[string]Entry, len(entries))
	for _, e := range entries {
		key := slotid.Normalize(e.SecurityNumber)
		if key == "" {
			continue
		}
		if prev, ok := idx[key]; ok {
			logger.Warn("duplicate roster identifier, keeping later entry",
				"identifier", key,
				"shadowed", prev.FullName,
				"kept", e.FullName)
		}
		idx[key] = e
	}
	return idx
}
