package exporter

import (
	"fmt"
	"strconv"
	"strings"

	"attendcli/pkg/contracts/domain"
)

// formatIndex formats a 1-based row index for display
func formatIndex(i int) string {
	return strconv.Itoa(i)
}

// fillColor converts "#rrggbb" to the "RRGGBB" form used in fill styles
func fillColor(hex string) string {
	return strings.ToUpper(strings.TrimPrefix(hex, "#"))
}

// formatSummary renders the per-status counts on one line
func formatSummary(s domain.AttendanceSummary) string {
	return fmt.Sprintf("%d present, %d absent, %d unrecognized", s.Present, s.Absent, s.Unrecognized)
}
