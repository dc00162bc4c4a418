package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "attendcli/internal/errors"
	"attendcli/internal/files"
	"attendcli/pkg/contracts/domain"
)

// defaultSheet is the sheet every new workbook starts with
const defaultSheet = "Sheet1"

// XLSXOptions controls the styled workbook layout
type XLSXOptions struct {
	SheetName         string
	TableName         string
	TableStyle        string
	AbsentColor       string
	UnrecognizedColor string
}

// DefaultXLSXOptions returns the standard report styling
func DefaultXLSXOptions() XLSXOptions {
	return XLSXOptions{
		SheetName:         "Attendance",
		TableName:         "Table1",
		TableStyle:        "TableStyleMedium9",
		AbsentColor:       "#FFFF00",
		UnrecognizedColor: "#FFA500",
	}
}

// XLSXWriter writes the attendance report as a styled spreadsheet
type XLSXWriter struct {
	opts   XLSXOptions
	files  *files.Manager
	logger *slog.Logger
}

// NewXLSXWriter creates a new workbook writer
func NewXLSXWriter(opts XLSXOptions, logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{
		opts:   opts,
		files:  files.NewManager(logger),
		logger: logger.With("component", "xlsx_writer"),
	}
}

// WriteReport builds the workbook and moves it into place at filePath. The
// workbook is first written to a temporary file in the same directory so a
// failure never leaves a partial file behind. Every failure is a WriteError.
func (w *XLSXWriter) WriteReport(filePath string, report *domain.AttendanceReport) error {
	f, err := w.build(report)
	if err != nil {
		return apperrors.NewWriteError("failed to build workbook", err).
			WithContext("file", filePath)
	}
	defer f.Close()

	if err := w.files.EnsureDir(filePath); err != nil {
		return apperrors.NewWriteError("failed to create output directory", err).
			WithContext("file", filePath)
	}

	tmp, err := os.CreateTemp(filepath.Dir(filePath), ".attendance-*.xlsx")
	if err != nil {
		return apperrors.NewWriteError("failed to create temporary workbook", err).
			WithContext("file", filePath)
	}
	tmpPath := tmp.Name()

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return apperrors.NewWriteError("failed to set workbook permissions", err).
			WithContext("file", filePath)
	}
	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return apperrors.NewWriteError("failed to save workbook", err).
			WithContext("file", filePath)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return apperrors.NewWriteError("failed to save workbook", err).
			WithContext("file", filePath)
	}

	if err := w.files.ReplaceFile(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return apperrors.NewWriteError("failed to move workbook into place", err).
			WithContext("file", filePath)
	}

	w.logger.Info("Workbook written",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(report.Records)),
		slog.String("sheet", w.opts.SheetName),
		slog.String("table", w.opts.TableName))

	return nil
}

func (w *XLSXWriter) build(report *domain.AttendanceReport) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := w.opts.SheetName

	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(domain.ReportHeaders))
	for i, h := range domain.ReportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	absentStyle, err := fillStyle(f, w.opts.AbsentColor)
	if err != nil {
		f.Close()
		return nil, err
	}
	unrecognizedStyle, err := fillStyle(f, w.opts.UnrecognizedColor)
	if err != nil {
		f.Close()
		return nil, err
	}

	for i, row := range report.Rows() {
		excelRow := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, excelRow)
		values := []interface{}{row[0], row[1], row[2]}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", excelRow, err)
		}

		style := 0
		switch report.Records[i].Status {
		case domain.StatusAbsent:
			style = absentStyle
		case domain.StatusUnrecognized:
			style = unrecognizedStyle
		}
		if style != 0 {
			statusCell, _ := excelize.CoordinatesToCellName(2, excelRow)
			if err := f.SetCellStyle(sheet, statusCell, statusCell, style); err != nil {
				f.Close()
				return nil, fmt.Errorf("style row %d: %w", excelRow, err)
			}
		}
	}

	// A table needs at least one data row
	lastRow := len(report.Records) + 1
	if lastRow < 2 {
		lastRow = 2
	}
	lastCell, _ := excelize.CoordinatesToCellName(len(domain.ReportHeaders), lastRow)

	showStripes := true
	if err := f.AddTable(sheet, &excelize.Table{
		Range:             "A1:" + lastCell,
		Name:              w.opts.TableName,
		StyleName:         w.opts.TableStyle,
		ShowRowStripes:    &showStripes,
		ShowColumnStripes: true,
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("add table: %w", err)
	}

	return f, nil
}

func fillStyle(f *excelize.File, color string) (int, error) {
	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{fillColor(color)}, Pattern: 1},
	})
	if err != nil {
		return 0, fmt.Errorf("create fill style %s: %w", color, err)
	}
	return style, nil
}
