package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "attendcli/internal/errors"
)

const utf8BOM = "\ufeff"

// SupportedExtensions lists the input formats ReadTable understands
var SupportedExtensions = []string{".csv", ".xlsx", ".xlsm"}

// Table is a raw grid of cells read from a csv or xlsx file. Rows may have
// different lengths.
type Table struct {
	Source string
	Rows   [][]string
}

// ReadTable reads a csv or xlsx file into a Table. For workbooks the first
// sheet is used.
func ReadTable(filePath string) (*Table, error) {
	var (
		rows [][]string
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".csv":
		rows, err = readCSV(filePath)
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(filePath)
	default:
		return nil, apperrors.NewParsingError(fmt.Sprintf("unsupported file type %q", ext), nil).
			WithContext("file", filePath)
	}
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read table", err).
			WithContext("file", filePath)
	}

	slog.Debug("Table loaded",
		slog.String("file", filePath),
		slog.Int("rows", len(rows)))

	return &Table{Source: filePath, Rows: rows}, nil
}

// ParseCSV reads csv content from r. The reader is lenient: rows may have any
// number of fields and stray quotes are kept.
func ParseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], utf8BOM)
	}

	return rows, nil
}

func readCSV(filePath string) ([][]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseCSV(file)
}

func readWorkbook(filePath string) ([][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	return rows, nil
}

// Cell returns the trimmed value at row, col or "" when the row is too short.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return CleanCell(t.Rows[row][col])
}

// Header returns the first row, cleaned
func (t *Table) Header() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	header := make([]string, len(t.Rows[0]))
	for i, h := range t.Rows[0] {
		header[i] = CleanCell(h)
	}
	return header
}

// ColumnIndex returns the position of name in the header row, or -1
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header() {
		if h == name {
			return i
		}
	}
	return -1
}

// RequireColumns resolves each name to its header position. The first
// missing column is reported as a schema error.
func (t *Table) RequireColumns(names ...string) (map[string]int, error) {
	positions := make(map[string]int, len(names))
	for _, name := range names {
		idx := t.ColumnIndex(name)
		if idx < 0 {
			return nil, apperrors.NewSchemaError(name, t.Source)
		}
		positions[name] = idx
	}
	return positions, nil
}

// DataRows returns every row after the header
func (t *Table) DataRows() [][]string {
	if len(t.Rows) <= 1 {
		return nil
	}
	return t.Rows[1:]
}

// IsSupported reports whether ReadTable can read the file at path
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// CleanCell trims whitespace and a leading byte order mark
func CleanCell(value string) string {
	return strings.TrimSpace(strings.TrimPrefix(value, utf8BOM))
}
