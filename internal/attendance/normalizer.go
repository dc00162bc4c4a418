package attendance

import (
	"log/slog"

	"attendcli/internal/dataprocessing"
	"attendcli/internal/names"
	"attendcli/pkg/contracts/domain"
)

// NormalizerOptions configures a Normalizer
type NormalizerOptions struct {
	// Marker is the header text that anchors the real table
	Marker string
	// SkipBlankNames drops names that are empty after normalization
	SkipBlankNames bool
}

// Normalizer turns a raw sign-in export into resolved names
type Normalizer struct {
	roster *domain.Roster
	opts   NormalizerOptions
	logger *slog.Logger
}

// NewNormalizer creates a normalizer resolving names against roster
func NewNormalizer(roster *domain.Roster, opts NormalizerOptions, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Marker == "" {
		opts.Marker = domain.ColumnOriginalName
	}
	return &Normalizer{
		roster: roster,
		opts:   opts,
		logger: logger.With("component", "normalizer"),
	}
}

// Load reads the sign-in export at path and resolves its names
func (n *Normalizer) Load(path string) ([]string, error) {
	table, err := dataprocessing.ReadTable(path)
	if err != nil {
		return nil, err
	}
	return n.Resolve(table)
}

// Resolve locates the marker, extracts the name column and maps every name
// to its canonical form. Order and duplicates are preserved.
func (n *Normalizer) Resolve(table *dataprocessing.Table) ([]string, error) {
	anchor, err := FindMarker(table, n.opts.Marker)
	if err != nil {
		return nil, err
	}

	records := ExtractColumn(table, anchor)
	resolved := make([]string, 0, len(records))
	matched, blanks := 0, 0

	for _, rec := range records {
		key := names.Normalize(rec.RawName)
		if key == "" {
			blanks++
			if n.opts.SkipBlankNames {
				continue
			}
		}

		name := n.roster.Resolve(key)
		if name != key || n.roster.IsExpected(name) {
			matched++
		}
		resolved = append(resolved, name)
	}

	n.logger.Info("Sign-in export normalized",
		slog.String("source", table.Source),
		slog.Int("marker_row", anchor.Row+1),
		slog.Int("marker_col", anchor.Col+1),
		slog.Int("names", len(records)),
		slog.Int("matched", matched),
		slog.Int("blank", blanks),
		slog.Bool("skip_blank", n.opts.SkipBlankNames))

	return resolved, nil
}
