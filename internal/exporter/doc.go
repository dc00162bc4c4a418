// Package exporter writes the attendance report.
//
// RenderTable prints the report to a terminal. CSVWriter produces the plain
// UTF-8 (with BOM) csv that doubles as the fallback artifact. XLSXWriter
// produces the styled workbook: one sheet, a header row, a banded table and
// fill colours on the Status cells of absent and unrecognized rows.
//
// Example usage:
//
//	csvWriter := exporter.NewCSVWriter(logger)
//	err := csvWriter.WriteReport("attendance.csv", report)
//
//	xlsxWriter := exporter.NewXLSXWriter(exporter.DefaultXLSXOptions(), logger)
//	if err := xlsxWriter.WriteReport("attendance.xlsx", report); err != nil {
//		// err is a WriteError, attendance.csv is kept
//	}
package exporter
