package boxspec

import "phonebox-scanner/internal/grid"

// Built-in layouts for the boxes in circulation.
//
// The lettered grade boxes are all the same 60-slot wall tray; the
// music school runs smaller 40-slot trays with their own SM codes.

// GradeTemplate returns the standard lettered grade-box layout (5 rows
// of 12). Get binds it to a concrete grade and letter; the template
// itself carries neither.
func GradeTemplate() Layout {
	return Layout{
		Name: "Grade Box (A-H)",
		Rows: 5,
		Cols: 12,
		DefaultCrop: grid.CropPercent{
			Top:    9,
			Left:   19,
			Right:  83,
			Bottom: 92,
		},
	}
}

// MusicSchool1 returns the SM1 standalone box layout.
func MusicSchool1() Layout {
	return Layout{
		Name: "Music School Box 1",
		Code: "SM1",
		Rows: 4,
		Cols: 10,
		DefaultCrop: grid.CropPercent{
			Top:    12,
			Left:   15,
			Right:  87,
			Bottom: 90,
		},
	}
}

// MusicSchool2 returns the SM2 standalone box layout.
func MusicSchool2() Layout {
	return Layout{
		Name: "Music School Box 2",
		Code: "SM2",
		Rows: 4,
		Cols: 10,
		DefaultCrop: grid.CropPercent{
			Top:    12,
			Left:   15,
			Right:  87,
			Bottom: 90,
		},
	}
}

// MusicSchool3 returns the SM3 standalone box layout. The third tray
// hangs lower than the other two, hence the deeper crop.
func MusicSchool3() Layout {
	return Layout{
		Name: "Music School Box 3",
		Code: "SM3",
		Rows: 4,
		Cols: 10,
		DefaultCrop: grid.CropPercent{
			Top:    16,
			Left:   15,
			Right:  87,
			Bottom: 94,
		},
	}
}
