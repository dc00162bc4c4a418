package exporter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "attendcli/internal/errors"
	"attendcli/pkg/contracts/domain"
)

func openWorkbook(t *testing.T, path string) *excelize.File {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func cellFill(t *testing.T, f *excelize.File, sheet, cell string) []string {
	t.Helper()
	id, err := f.GetCellStyle(sheet, cell)
	require.NoError(t, err)
	if id == 0 {
		return nil
	}
	style, err := f.GetStyle(id)
	require.NoError(t, err)
	return style.Fill.Color
}

// padRows fills rows to width so trailing empty cells compare equal
func padRows(rows [][]string, width int) [][]string {
	for i := range rows {
		for len(rows[i]) < width {
			rows[i] = append(rows[i], "")
		}
	}
	return rows
}

func hasColor(colors []string, rgb string) bool {
	for _, c := range colors {
		if strings.HasSuffix(strings.ToUpper(c), rgb) {
			return true
		}
	}
	return false
}

func TestXLSXWriter_WriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attendance.xlsx")

	require.NoError(t, NewXLSXWriter(DefaultXLSXOptions(), nil).WriteReport(path, sampleReport()))

	f := openWorkbook(t, path)
	assert.Equal(t, []string{"Attendance"}, f.GetSheetList())

	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Name", "Status", "Coach Name"},
		{"Alice Smith", "Present", "Coach X"},
		{"Bob Lee", "Absent", ""},
		{"Zed Foo", "Present (Unrecognized Name)", ""},
	}, padRows(rows, 3))

	tables, err := f.GetTables("Attendance")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "Table1", tables[0].Name)
	assert.Equal(t, "A1:C4", tables[0].Range)
	assert.Equal(t, "TableStyleMedium9", tables[0].StyleName)

	assert.Empty(t, cellFill(t, f, "Attendance", "B2"), "present rows are not filled")
	assert.True(t, hasColor(cellFill(t, f, "Attendance", "B3"), "FFFF00"), "absent is yellow")
	assert.True(t, hasColor(cellFill(t, f, "Attendance", "B4"), "FFA500"), "unrecognized is orange")
	assert.Empty(t, cellFill(t, f, "Attendance", "A3"), "only the status cell is filled")
}

func TestXLSXWriter_CustomOptions(t *testing.T) {
	opts := DefaultXLSXOptions()
	opts.SheetName = "Week 3"
	opts.TableName = "Roll"
	opts.AbsentColor = "#ff0000"

	path := filepath.Join(t.TempDir(), "out", "week3.xlsx")
	require.NoError(t, NewXLSXWriter(opts, nil).WriteReport(path, sampleReport()))

	f := openWorkbook(t, path)
	assert.Equal(t, []string{"Week 3"}, f.GetSheetList())
	assert.True(t, hasColor(cellFill(t, f, "Week 3", "B3"), "FF0000"))

	tables, err := f.GetTables("Week 3")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "Roll", tables[0].Name)
}

func TestXLSXWriter_EmptyReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attendance.xlsx")
	require.NoError(t, NewXLSXWriter(DefaultXLSXOptions(), nil).WriteReport(path, &domain.AttendanceReport{}))

	rows, err := openWorkbook(t, path).GetRows("Attendance")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Name", "Status", "Coach Name"}}, rows)
}

func TestXLSXWriter_Errors(t *testing.T) {
	t.Run("invalid sheet name", func(t *testing.T) {
		opts := DefaultXLSXOptions()
		opts.SheetName = "bad:name"
		path := filepath.Join(t.TempDir(), "attendance.xlsx")

		err := NewXLSXWriter(opts, nil).WriteReport(path, sampleReport())
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrWrite))
		assert.NoFileExists(t, path)
	})

	t.Run("output directory is a file", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		require.NoError(t, os.WriteFile(blocker, nil, 0644))

		err := NewXLSXWriter(DefaultXLSXOptions(), nil).WriteReport(filepath.Join(blocker, "attendance.xlsx"), sampleReport())
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrWrite))
	})

	t.Run("no temporary files left behind", func(t *testing.T) {
		dir := t.TempDir()
		opts := DefaultXLSXOptions()
		opts.TableName = "has space"

		err := NewXLSXWriter(opts, nil).WriteReport(filepath.Join(dir, "attendance.xlsx"), sampleReport())
		require.Error(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestFillColor(t *testing.T) {
	assert.Equal(t, "FFFF00", fillColor("#ffff00"))
	assert.Equal(t, "FFA500", fillColor("FFA500"))
}
