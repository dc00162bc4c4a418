// Package dataprocessing reads tabular input files for the attendance checker.
//
// Both the roster and the raw sign-in export arrive either as csv or as an
// Excel workbook. ReadTable returns the same raw grid for both so the callers
// never care which format was supplied:
//
//	table, err := dataprocessing.ReadTable("expected_participants.csv")
//	if err != nil {
//	    return err
//	}
//	cols, err := table.RequireColumns("Official Name", "Name (Original Name)")
//
// The csv reader is deliberately lenient. Sign-in exports carry metadata rows
// above the real table with a different number of fields, and some tools
// write a UTF-8 byte order mark.
//
// # Error Handling
//
// Unreadable files and unsupported extensions are reported as parsing errors,
// missing columns as schema errors (see internal/errors).
package dataprocessing
