// Package boxspec provides storage box layout definitions and management.
package boxspec

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"

	"phonebox-scanner/internal/grid"
	"phonebox-scanner/internal/slotid"
)

// ErrUnknownBox is returned when a selector matches no registered layout.
var ErrUnknownBox = errors.New("unknown box")

// Layout describes one physical storage box: its grid shape and the
// default crop calibration for photographs taken at the mounting
// position.
type Layout struct {
	Name        string           `json:"name"`
	Code        string           `json:"code"`         // box letter (A-H) or standalone code (SM1-SM9)
	Grade       int              `json:"grade"`        // 0 for standalone boxes
	Rows        int              `json:"rows"`
	Cols        int              `json:"cols"`
	DefaultCrop grid.CropPercent `json:"default_crop"`
}

// Slots returns the number of compartments in the box.
func (l Layout) Slots() int {
	return l.Rows * l.Cols
}

// Identifier renders the slot identifier for a 1-based slot number.
func (l Layout) Identifier(slot int) string {
	return slotid.Build(l.Grade, l.Code, slot)
}

// Validate checks the layout for usable values.
func (l Layout) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("box layout name is required")
	}
	if l.Code == "" {
		return fmt.Errorf("box code is required")
	}
	if l.Rows <= 0 || l.Cols <= 0 {
		return fmt.Errorf("box grid must be positive, got %dx%d", l.Rows, l.Cols)
	}
	return l.DefaultCrop.Validate()
}

// SaveToFile saves the layout to a JSON file.
func (l Layout) SaveToFile(path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFromFile loads a layout from a JSON file.
func LoadFromFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, err
	}

	var layout Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return Layout{}, err
	}

	if err := layout.Validate(); err != nil {
		return Layout{}, fmt.Errorf("invalid box layout: %w", err)
	}

	return layout, nil
}

// gradeSelector matches selectors like 10F: grade digits then a box letter.
var gradeSelector = regexp.MustCompile(`^([0-9]{1,2})([A-H])$`)

// Registry of standalone box layouts, keyed by normalized code.
var registry = make(map[string]Layout)

// Register adds a standalone box layout to the registry.
func Register(l Layout) {
	registry[slotid.Normalize(l.Code)] = l
}

// Get resolves a box selector to a layout. Grade selectors (e.g. 10F)
// bind the shared lettered-box template to that grade and letter;
// anything else is looked up among the registered standalone boxes.
func Get(selector string) (Layout, error) {
	code := slotid.Normalize(selector)

	if l, ok := registry[code]; ok {
		return l, nil
	}

	if m := gradeSelector.FindStringSubmatch(code); m != nil {
		grade, _ := strconv.Atoi(m[1])
		l := GradeTemplate()
		l.Name = fmt.Sprintf("Grade %d Box %s", grade, m[2])
		l.Code = m[2]
		l.Grade = grade
		return l, nil
	}

	return Layout{}, fmt.Errorf("%w: %q", ErrUnknownBox, selector)
}

// List returns the registered standalone layouts sorted by code.
func List() []Layout {
	layouts := make([]Layout, 0, len(registry))
	for _, l := range registry {
		layouts = append(layouts, l)
	}
	sort.Slice(layouts, func(i, j int) bool {
		return layouts[i].Code < layouts[j].Code
	})
	return layouts
}

func init() {
	// Register built-in standalone boxes
	Register(MusicSchool1())
	Register(MusicSchool2())
	Register(MusicSchool3())
}
