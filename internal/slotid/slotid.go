// Package slotid parses and renders the slot identifier scheme that links
// storage slots to roster entries.
package slotid

import (
	"fmt"
	"strconv"
	"strings"
)

// Category distinguishes the two identifier families.
type Category int

const (
	// GradeBox identifies a slot in a per-grade lettered box (e.g. 10F12).
	GradeBox Category = iota
	// StandaloneBox identifies a slot in a reserved standalone box (e.g. SM2-23).
	StandaloneBox
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case GradeBox:
		return "grade-box"
	case StandaloneBox:
		return "standalone"
	default:
		return "unknown"
	}
}

// standalonePrefix starts every reserved standalone box code (SM1-SM9).
const standalonePrefix = "SM"

// SlotID represents a decoded slot identifier.
type SlotID struct {
	Category Category // grade-box or standalone
	Grade    int      // school grade; meaningful for grade boxes only
	Box      string   // box letter (A-H) or standalone code (SM1-SM9)
	Slot     int      // 1-based slot number
}

// String renders the canonical textual form: grade boxes concatenate
// grade, letter and slot with no separators; standalone boxes join code
// and slot with a hyphen.
func (id SlotID) String() string {
	if id.Category == StandaloneBox {
		return fmt.Sprintf("%s-%d", id.Box, id.Slot)
	}
	return fmt.Sprintf("%d%s%d", id.Grade, id.Box, id.Slot)
}

// Normalize prepares identifier text for matching: trims, removes all
// internal whitespace, and upper-cases. Roster keys and parser input go
// through the same normalization so they compare equal.
func Normalize(text string) string {
	return strings.ToUpper(strings.Join(strings.Fields(text), ""))
}

// Parse attempts to decode an identifier string.
// It tries each grammar in order and reports ok=false when none match;
// callers treat that as "no structured identifier", not a fatal error.
func Parse(text string) (SlotID, bool) {
	code := Normalize(text)
	if len(code) < 3 {
		return SlotID{}, false
	}

	if id, ok := parseGradeBox(code); ok {
		return id, true
	}
	if id, ok := parseStandalone(code); ok {
		return id, true
	}

	return SlotID{}, false
}

// Build renders an identifier from its parts. Standalone box codes omit
// the grade; Parse(Build(g, b, s)) reconstructs the same triple.
func Build(grade int, box string, slot int) string {
	box = strings.ToUpper(strings.TrimSpace(box))
	if strings.HasPrefix(box, standalonePrefix) {
		return fmt.Sprintf("%s-%d", box, slot)
	}
	return fmt.Sprintf("%d%s%d", grade, box, slot)
}

// parseGradeBox decodes the grade-box grammar.
// Grade = 1-2 digits, box = one letter A-H, slot = 1-3 digits.
// Examples: 10F12 = grade 10 box F slot 12, 9A5 = grade 9 box A slot 5
func parseGradeBox(code string) (SlotID, bool) {
	// Leading grade digits
	i := 0
	for i < len(code) && code[i] >= '0' && code[i] <= '9' {
		i++
	}
	if i < 1 || i > 2 || i >= len(code) {
		return SlotID{}, false
	}
	grade, _ := strconv.Atoi(code[:i])

	if !isBoxLetter(code[i]) {
		return SlotID{}, false
	}
	box := string(code[i])
	i++

	slot, ok := parseSlotDigits(code[i:])
	if !ok {
		return SlotID{}, false
	}

	return SlotID{Category: GradeBox, Grade: grade, Box: box, Slot: slot}, true
}

// parseStandalone decodes the standalone-box grammar.
// Code = SM plus one digit 1-9, then an optional - or _ separator, then
// slot = 1-3 digits. Examples: SM2-23, SM1_4, SM37
func parseStandalone(code string) (SlotID, bool) {
	if len(code) < 4 || !strings.HasPrefix(code, standalonePrefix) {
		return SlotID{}, false
	}
	if code[2] < '1' || code[2] > '9' {
		return SlotID{}, false
	}
	box := code[:3]

	rest := code[3:]
	if rest[0] == '-' || rest[0] == '_' {
		rest = rest[1:]
	}

	slot, ok := parseSlotDigits(rest)
	if !ok {
		return SlotID{}, false
	}

	return SlotID{Category: StandaloneBox, Box: box, Slot: slot}, true
}

// parseSlotDigits decodes a 1-3 digit slot number. Slot numbers start
// at 1; a parsed zero is invalid.
func parseSlotDigits(s string) (int, bool) {
	if len(s) < 1 || len(s) > 3 {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	slot, _ := strconv.Atoi(s)
	if slot < 1 {
		return 0, false
	}
	return slot, true
}

// isBoxLetter reports whether c is a valid grade-box letter.
func isBoxLetter(c byte) bool {
	return c >= 'A' && c <= 'H'
}

// FormatInfo provides format information for display.
type FormatInfo struct {
	Name        string
	Description string
	Example     string
}

// Formats returns information about the accepted identifier formats.
func Formats() []FormatInfo {
	return []FormatInfo{
		{
			Name:        "grade box",
			Description: "Grade (1-2 digits) + box letter (A-H) + slot (1-3 digits)",
			Example:     "10F12",
		},
		{
			Name:        "standalone box",
			Description: "Reserved code SM1-SM9 + optional separator + slot (1-3 digits)",
			Example:     "SM2-23",
		},
	}
}
