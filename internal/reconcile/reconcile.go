// Package reconcile joins slot detections against roster records and
// derives each slot's status.
package reconcile

import (
	"encoding/json"

	"phonebox-scanner/internal/classify"
	"phonebox-scanner/internal/roster"
	"phonebox-scanner/internal/slotid"
)

// Status classifies one reconciled slot.
type Status int

const (
	// StatusUnassigned means no roster entry claims the slot's identifier.
	StatusUnassigned Status = iota
	// StatusMissing means the slot is assigned but no phone was detected.
	StatusMissing
	// StatusSuspicious means the detected color contradicts the stored baseline.
	StatusSuspicious
	// StatusTurnedIn means a phone is present with nothing against it.
	StatusTurnedIn
)

func (s Status) String() string {
	switch s {
	case StatusUnassigned:
		return "UNASSIGNED"
	case StatusMissing:
		return "MISSING"
	case StatusSuspicious:
		return "SUSPICIOUS"
	case StatusTurnedIn:
		return "TURNED_IN"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON implements json.Marshaler.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Status) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	switch text {
	case "MISSING":
		*s = StatusMissing
	case "SUSPICIOUS":
		*s = StatusSuspicious
	case "TURNED_IN":
		*s = StatusTurnedIn
	default:
		*s = StatusUnassigned
	}
	return nil
}

// Baselines supplies the stored color profile for an identifier, when
// one exists. *baseline.Set satisfies it.
type Baselines interface {
	ExpectedColor(identifier string) (string, bool)
}

// Row is one slot's reconciled record: the detection joined with roster
// identity and the derived status.
type Row struct {
	classify.Detection

	FullName string `json:"fullName,omitempty"`
	PersonID string `json:"personId,omitempty"`
	Grade    string `json:"grade,omitempty"`

	ExpectedColor string `json:"expectedColor,omitempty"`
	Status        Status `json:"status"`
}

// Reconcile joins each detection against the roster index by normalized
// identifier and derives its status. Rows keep the detections' order.
// base may be nil when no baselines are loaded.
//
// Status precedence, first match wins:
//  1. no roster match            -> UNASSIGNED
//  2. assigned, phone absent     -> MISSING
//  3. baseline color contradicts -> SUSPICIOUS
//  4. otherwise                  -> TURNED_IN
func Reconcile(dets []classify.Detection, idx map[string]roster.Entry, base Baselines) []Row {
	rows := make([]Row, 0, len(dets))
	for _, det := range dets {
		row := Row{Detection: det}
		key := slotid.Normalize(det.Identifier)

		// The stored baseline is reported whenever one exists,
		// independent of the status outcome.
		hasBaseline := false
		if base != nil {
			row.ExpectedColor, hasBaseline = base.ExpectedColor(key)
		}

		entry, assigned := idx[key]
		if assigned {
			row.FullName = entry.FullName
			row.PersonID = entry.PersonID
			row.Grade = entry.CurrentGrade
		}

		switch {
		case !assigned:
			row.Status = StatusUnassigned
		case !det.Present:
			row.Status = StatusMissing
		case hasBaseline && row.ExpectedColor != det.Color:
			row.Status = StatusSuspicious
		default:
			row.Status = StatusTurnedIn
		}

		rows = append(rows, row)
	}
	return rows
}
