// Package files provides file system operations for locating input tables
// and managing generated report artifacts.
//
// Discovery resolves a glob pattern to exactly one input file. When more than
// one file matches, the first in lexicographic order is used, so repeated runs
// over the same directory always pick the same file. Explicit paths from
// configuration bypass pattern matching.
//
// Manager handles the artifact lifecycle: creating output directories,
// renaming a finished temporary file into place and removing the intermediate
// csv once the workbook is written.
//
// Example usage:
//
//	discovery := files.NewDiscovery(".", logger)
//	roster, err := discovery.ResolveSingle("expected_participants*.csv")
//
//	manager := files.NewManager(logger)
//	if manager.FileExists("attendance.xlsx") {
//	    _ = manager.DeleteFile("attendance.csv")
//	}
package files
