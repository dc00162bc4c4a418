package attendance

import (
	"sort"

	"attendcli/internal/names"
	"attendcli/pkg/contracts/domain"
)

// Classify partitions resolved names against the roster.
//
// Present and Absent are sets of canonical names, each sorted. Unrecognized
// keeps every name outside the roster, title-cased, in encounter order and
// with duplicates.
func Classify(roster *domain.Roster, resolved []string) domain.Classification {
	attended := make(map[string]struct{}, len(resolved))
	var unrecognized []string

	for _, name := range resolved {
		if roster.IsExpected(name) {
			attended[name] = struct{}{}
			continue
		}
		unrecognized = append(unrecognized, names.TitleCase(name))
	}

	var present, absent []string
	for name := range roster.Expected {
		if _, ok := attended[name]; ok {
			present = append(present, name)
		} else {
			absent = append(absent, name)
		}
	}
	sort.Strings(present)
	sort.Strings(absent)

	return domain.Classification{
		Present:      present,
		Absent:       absent,
		Unrecognized: unrecognized,
	}
}
