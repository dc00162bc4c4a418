// Package roster loads the expected-participant table.
package roster

import (
	"log/slog"

	"attendcli/internal/dataprocessing"
	"attendcli/internal/names"
	"attendcli/pkg/contracts/domain"
)

// Loader reads roster tables into a domain.Roster
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a roster loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With("component", "roster")}
}

// Load reads the roster file at path
func (l *Loader) Load(path string) (*domain.Roster, error) {
	table, err := dataprocessing.ReadTable(path)
	if err != nil {
		return nil, err
	}
	return l.FromTable(table)
}

// FromTable extracts roster entries from an already loaded table. The
// "Official Name" and "Name (Original Name)" columns are required, "Coach
// Name" is optional.
func (l *Loader) FromTable(table *dataprocessing.Table) (*domain.Roster, error) {
	cols, err := table.RequireColumns(domain.ColumnOfficialName, domain.ColumnOriginalName)
	if err != nil {
		return nil, err
	}
	coachCol := table.ColumnIndex(domain.ColumnCoachName)

	var entries []domain.RosterEntry
	for i, row := range table.DataRows() {
		rowNum := i + 1
		official := table.Cell(rowNum, cols[domain.ColumnOfficialName])
		if official == "" {
			l.logger.Warn("Skipping roster row without official name",
				slog.String("source", table.Source),
				slog.Int("row", rowNum+1),
				slog.Any("content", row))
			continue
		}

		entries = append(entries, domain.RosterEntry{
			OfficialName: official,
			Alias:        table.Cell(rowNum, cols[domain.ColumnOriginalName]),
			CoachName:    table.Cell(rowNum, coachCol),
		})
	}

	r := Build(entries, coachCol >= 0)
	r.Source = table.Source

	l.logger.Info("Roster loaded",
		slog.String("source", table.Source),
		slog.Int("entries", len(entries)),
		slog.Int("expected", len(r.Expected)),
		slog.Int("aliases", len(r.Aliases)),
		slog.Bool("has_coach", r.HasCoach))

	return r, nil
}

// Build assembles a roster from entries.
//
// Aliases are normalized. When two rows share an alias the later row wins.
// Every official name is also reachable through its own normalized form
// unless an explicit alias already claims that key.
func Build(entries []domain.RosterEntry, hasCoach bool) *domain.Roster {
	r := &domain.Roster{
		Expected: make(map[string]struct{}, len(entries)),
		Aliases:  make(map[string]string, len(entries)*2),
		HasCoach: hasCoach,
	}

	explicit := make(map[string]struct{}, len(entries))
	seenCoach := make(map[domain.CoachAssignment]struct{})

	for _, e := range entries {
		r.Expected[e.OfficialName] = struct{}{}

		if key := names.Normalize(e.Alias); key != "" {
			r.Aliases[key] = e.OfficialName
			explicit[key] = struct{}{}
		}

		if hasCoach {
			pair := domain.CoachAssignment{OfficialName: e.OfficialName, CoachName: e.CoachName}
			if _, dup := seenCoach[pair]; !dup {
				seenCoach[pair] = struct{}{}
				r.Coaches = append(r.Coaches, pair)
			}
		}
	}

	for _, e := range entries {
		key := names.Normalize(e.OfficialName)
		if _, taken := explicit[key]; !taken {
			r.Aliases[key] = e.OfficialName
		}
	}

	return r
}
