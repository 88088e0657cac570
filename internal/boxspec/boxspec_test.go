package boxspec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGradeSelector(t *testing.T) {
	l, err := Get("10F")
	require.NoError(t, err)
	assert.Equal(t, "F", l.Code)
	assert.Equal(t, 10, l.Grade)
	assert.Equal(t, 5, l.Rows)
	assert.Equal(t, 12, l.Cols)
	assert.Equal(t, 60, l.Slots())
	assert.NoError(t, l.Validate())
}

func TestGetNormalizesSelector(t *testing.T) {
	l, err := Get(" 9a ")
	require.NoError(t, err)
	assert.Equal(t, "A", l.Code)
	assert.Equal(t, 9, l.Grade)
}

func TestGetStandalone(t *testing.T) {
	l, err := Get("sm2")
	require.NoError(t, err)
	assert.Equal(t, "SM2", l.Code)
	assert.Equal(t, 0, l.Grade)
	assert.Equal(t, 40, l.Slots())
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("10Z")
	assert.ErrorIs(t, err, ErrUnknownBox)

	_, err = Get("SM7")
	assert.ErrorIs(t, err, ErrUnknownBox)
}

func TestIdentifier(t *testing.T) {
	gradeBox, err := Get("10F")
	require.NoError(t, err)
	assert.Equal(t, "10F12", gradeBox.Identifier(12))

	standalone, err := Get("SM2")
	require.NoError(t, err)
	assert.Equal(t, "SM2-23", standalone.Identifier(23))
}

func TestList(t *testing.T) {
	layouts := List()
	require.Len(t, layouts, 3)
	assert.Equal(t, "SM1", layouts[0].Code)
	assert.Equal(t, "SM2", layouts[1].Code)
	assert.Equal(t, "SM3", layouts[2].Code)
}

func TestValidate(t *testing.T) {
	l, err := Get("SM1")
	require.NoError(t, err)
	assert.NoError(t, l.Validate())

	bad := l
	bad.Rows = 0
	assert.Error(t, bad.Validate())

	bad = l
	bad.Code = ""
	assert.Error(t, bad.Validate())

	bad = l
	bad.DefaultCrop.Top = 95
	assert.Error(t, bad.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")

	custom := Layout{
		Name:        "Annex Tray",
		Code:        "SM9",
		Rows:        3,
		Cols:        8,
		DefaultCrop: GradeTemplate().DefaultCrop,
	}
	require.NoError(t, custom.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, loaded)
}

func TestLoadFromFileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	data := `{"name":"Broken","code":"SM9","rows":0,"cols":8,"default_crop":{"top":10,"left":10,"right":90,"bottom":90}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}
