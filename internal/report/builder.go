// Package report turns a classification into the ordered attendance table.
package report

import (
	"sort"
	"strings"

	"attendcli/pkg/contracts/domain"
)

// CoachSeparator joins the coaches of a participant assigned to more than one
const CoachSeparator = ", "

// Build orders the classification into report rows.
//
// Present and Absent rows are merged and sorted by name. Unrecognized rows
// follow in encounter order. Coach names are joined from the roster; rows
// without a coach, including every unrecognized row, get an empty value.
func Build(c domain.Classification, roster *domain.Roster) *domain.AttendanceReport {
	coaches := CoachIndex(roster)

	known := make([]domain.AttendanceRecord, 0, len(c.Present)+len(c.Absent))
	for _, name := range c.Present {
		known = append(known, domain.AttendanceRecord{Name: name, Status: domain.StatusPresent})
	}
	for _, name := range c.Absent {
		known = append(known, domain.AttendanceRecord{Name: name, Status: domain.StatusAbsent})
	}
	// names are unique across present and absent
	sort.Slice(known, func(i, j int) bool { return known[i].Name < known[j].Name })

	records := make([]domain.AttendanceRecord, 0, len(known)+len(c.Unrecognized))
	records = append(records, known...)
	for _, name := range c.Unrecognized {
		records = append(records, domain.AttendanceRecord{Name: name, Status: domain.StatusUnrecognized})
	}

	for i := range records {
		records[i].Index = i + 1
		if records[i].Status != domain.StatusUnrecognized {
			records[i].CoachName = coaches[records[i].Name]
		}
	}

	return &domain.AttendanceReport{
		Records: records,
		Summary: domain.AttendanceSummary{
			Present:      len(c.Present),
			Absent:       len(c.Absent),
			Unrecognized: len(c.Unrecognized),
			Total:        len(records),
		},
	}
}

// CoachIndex maps each official name to its coach. Distinct coaches of the
// same person are joined in encounter order. Blank coach values are ignored.
func CoachIndex(roster *domain.Roster) map[string]string {
	if roster == nil || !roster.HasCoach {
		return map[string]string{}
	}

	grouped := make(map[string][]string)
	for _, pair := range roster.Coaches {
		if pair.CoachName == "" {
			continue
		}
		grouped[pair.OfficialName] = append(grouped[pair.OfficialName], pair.CoachName)
	}

	index := make(map[string]string, len(grouped))
	for name, list := range grouped {
		index[name] = strings.Join(list, CoachSeparator)
	}
	return index
}
