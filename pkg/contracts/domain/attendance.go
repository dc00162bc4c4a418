package domain

// AttendanceStatus is the classification of a single report row
type AttendanceStatus string

const (
	StatusPresent      AttendanceStatus = "Present"
	StatusAbsent       AttendanceStatus = "Absent"
	StatusUnrecognized AttendanceStatus = "Present (Unrecognized Name)"
)

// String implements fmt.Stringer
func (s AttendanceStatus) String() string {
	return string(s)
}

// SubmittedRecord is one cell taken from the name column of a sign-in export
type SubmittedRecord struct {
	RawName string `json:"raw_name"`
	Row     int    `json:"row"`
}

// Classification is the partition of submitted names against a roster
type Classification struct {
	Present      []string `json:"present"`
	Absent       []string `json:"absent"`
	Unrecognized []string `json:"unrecognized"`
}

// AttendanceRecord is one row of the final report. Index is 1-based and only
// used for display.
type AttendanceRecord struct {
	Index     int              `json:"index"`
	Name      string           `json:"name"`
	Status    AttendanceStatus `json:"status"`
	CoachName string           `json:"coach_name,omitempty"`
}

// AttendanceSummary holds per-status row counts
type AttendanceSummary struct {
	Present      int `json:"present"`
	Absent       int `json:"absent"`
	Unrecognized int `json:"unrecognized"`
	Total        int `json:"total"`
}

// AttendanceReport is the ordered report handed to the writers
type AttendanceReport struct {
	Records []AttendanceRecord `json:"records"`
	Summary AttendanceSummary  `json:"summary"`
}

// ReportHeaders are the columns written to the csv and xlsx artifacts
var ReportHeaders = []string{"Name", "Status", ColumnCoachName}

// Rows converts the report to string rows in ReportHeaders order
func (r *AttendanceReport) Rows() [][]string {
	rows := make([][]string, 0, len(r.Records))
	for _, rec := range r.Records {
		rows = append(rows, []string{rec.Name, rec.Status.String(), rec.CoachName})
	}
	return rows
}
