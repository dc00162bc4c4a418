package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version is the current version of the application
	Version = "1.2.0"

	// ReportFormatVersion is the version of the attendance report layout
	ReportFormatVersion = "v2"
)

var (
	// BuildTime is set during build using ldflags
	BuildTime = "unknown"

	// GitCommit is set during build using ldflags
	GitCommit = "unknown"
)

// VersionInfo contains detailed version information
type VersionInfo struct {
	Version      string `json:"version"`
	BuildTime    string `json:"build_time"`
	GitCommit    string `json:"git_commit"`
	GoVersion    string `json:"go_version"`
	OS           string `json:"os"`
	Architecture string `json:"architecture"`
	ReportFormat string `json:"report_format"`
}

// GetVersionInfo returns detailed version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:      Version,
		BuildTime:    BuildTime,
		GitCommit:    GitCommit,
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		ReportFormat: ReportFormatVersion,
	}
}

// String renders the version banner printed by --version
func (v VersionInfo) String() string {
	return fmt.Sprintf("Attendance Checker v%s\ncommit: %s\nbuilt: %s\ngo: %s %s/%s\nreport format: %s",
		v.Version, v.GitCommit, v.BuildTime, v.GoVersion, v.OS, v.Architecture, v.ReportFormat)
}

// GetVersionString returns a formatted version string
func GetVersionString() string {
	return fmt.Sprintf("Attendance Checker v%s", Version)
}
