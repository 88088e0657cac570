// Package baseline persists learned device color profiles and supplies
// the expected colors used to flag suspicious scans.
package baseline

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"phonebox-scanner/internal/classify"
	"phonebox-scanner/internal/reconcile"
	"phonebox-scanner/internal/slotid"
)

// ErrInvalidImport marks an import payload rejected by validation.
// Nothing is merged when any record is invalid.
var ErrInvalidImport = errors.New("invalid baseline import")

// Profile is one identifier's learned device color.
type Profile struct {
	SecurityNumber string    `json:"securityNumber"`
	Color          string    `json:"color"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

// Set holds baseline profiles keyed by normalized identifier.
type Set struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewSet creates a set seeded with the given profiles. A nil map gives
// an empty set. Keys are normalized on the way in.
func NewSet(profiles map[string]Profile) *Set {
	s := &Set{profiles: make(map[string]Profile, len(profiles))}
	for key, p := range profiles {
		id := slotid.Normalize(key)
		if id == "" {
			continue
		}
		p.SecurityNumber = id
		s.profiles[id] = p
	}
	return s
}

// Len returns the number of stored profiles.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

// Lookup returns the profile stored for an identifier.
func (s *Set) Lookup(identifier string) (Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[slotid.Normalize(identifier)]
	return p, ok
}

// ExpectedColor returns the stored color for an identifier. It is the
// lookup the reconciliation engine consults.
func (s *Set) ExpectedColor(identifier string) (string, bool) {
	p, ok := s.Lookup(identifier)
	return p.Color, ok
}

// Learn records a first-seen color profile for every row that has a
// roster match, a present phone, and no stored profile yet. Existing
// profiles are never overwritten by a scan. Learned rows get their
// ExpectedColor backfilled so a fresh baseline cannot contradict the
// scan that created it. Returns the number of profiles learned.
func (s *Set) Learn(rows []reconcile.Row, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	learned := 0
	for i := range rows {
		row := &rows[i]
		if row.FullName == "" || !row.Present {
			continue
		}
		id := slotid.Normalize(row.Identifier)
		if id == "" {
			continue
		}
		if _, ok := s.profiles[id]; ok {
			continue
		}
		s.profiles[id] = Profile{
			SecurityNumber: id,
			Color:          row.Color,
			LastUpdated:    now,
		}
		row.ExpectedColor = row.Color
		learned++
	}
	return learned
}

// Export returns all profiles sorted by identifier.
func (s *Set) Export() []Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	sortProfiles(out)
	return out
}

// Import validates every record, then merges them keyed by normalized
// identifier, overwriting existing entries. Any invalid record rejects
// the whole payload and leaves the set untouched.
func (s *Set) Import(records []Profile) error {
	for i, r := range records {
		id := slotid.Normalize(r.SecurityNumber)
		if id == "" {
			return fmt.Errorf("%w: record %d: empty identifier", ErrInvalidImport, i)
		}
		if !classify.ValidLabel(r.Color) {
			return fmt.Errorf("%w: record %d: unknown color %q", ErrInvalidImport, i, r.Color)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		id := slotid.Normalize(r.SecurityNumber)
		r.SecurityNumber = id
		s.profiles[id] = r
	}
	return nil
}

// Snapshot returns a copy of the profile map for persistence.
func (s *Set) Snapshot() map[string]Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Profile, len(s.profiles))
	for key, p := range s.profiles {
		out[key] = p
	}
	return out
}

func sortProfiles(profiles []Profile) {
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].SecurityNumber < profiles[j].SecurityNumber
	})
}
