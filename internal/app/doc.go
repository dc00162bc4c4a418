// Package app wires the attendance pipeline together and exposes it as a
// command.
//
// # Pipeline
//
// A run is one synchronous pass:
//
//  1. Resolve the roster and sign-in files, explicit paths first, then
//     pattern discovery in the input directory
//  2. Load the roster and the sign-in export
//  3. Classify every name and build the ordered report
//  4. Print the report table to stdout
//  5. Write attendance.csv, then attendance.xlsx
//  6. Remove the csv once the workbook is in place
//
// Discovery, schema, marker and parsing errors abort the run before step 5,
// so no report file is left behind. A workbook failure is not fatal: the csv
// is kept and reported instead.
//
// # Usage
//
//	if err := app.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
//	    os.Exit(1)
//	}
//
// Logs go to stderr (and optionally a file) so stdout carries only the report.
package app
