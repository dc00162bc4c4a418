package domain

// Column headers shared by the roster file and the raw sign-in export.
const (
	ColumnOfficialName = "Official Name"
	ColumnOriginalName = "Name (Original Name)"
	ColumnCoachName    = "Coach Name"
)

// RosterEntry is one row of the expected-participant table
type RosterEntry struct {
	OfficialName string `json:"official_name"`
	Alias        string `json:"alias"`
	CoachName    string `json:"coach_name,omitempty"`
}

// CoachAssignment is a deduplicated (Official Name, Coach Name) pair
type CoachAssignment struct {
	OfficialName string `json:"official_name"`
	CoachName    string `json:"coach_name"`
}

// Roster is the loaded expected-participant list.
//
// Expected holds every canonical name. Aliases maps a normalized name to the
// canonical name it stands for. Coaches keeps encounter order.
type Roster struct {
	Expected map[string]struct{} `json:"-"`
	Aliases  map[string]string   `json:"aliases"`
	Coaches  []CoachAssignment   `json:"coaches,omitempty"`
	Source   string              `json:"source"`
	HasCoach bool                `json:"has_coach"`
}

// IsExpected reports whether name is a canonical roster name
func (r *Roster) IsExpected(name string) bool {
	_, ok := r.Expected[name]
	return ok
}

// Resolve maps a normalized name to its canonical name.
// Unknown names are returned unchanged.
func (r *Roster) Resolve(normalized string) string {
	if canonical, ok := r.Aliases[normalized]; ok {
		return canonical
	}
	return normalized
}
