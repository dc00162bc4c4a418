package attendance

import (
	"attendcli/internal/dataprocessing"
	apperrors "attendcli/internal/errors"
	"attendcli/pkg/contracts/domain"
)

// Anchor is the position of the marker cell in a raw sign-in export
type Anchor struct {
	Row int
	Col int
}

// FindMarker scans the table in row-major order for the first cell equal to
// marker (ignoring surrounding whitespace). Everything above that row is
// export metadata.
func FindMarker(table *dataprocessing.Table, marker string) (Anchor, error) {
	for r, row := range table.Rows {
		for c, cell := range row {
			if dataprocessing.CleanCell(cell) == marker {
				return Anchor{Row: r, Col: c}, nil
			}
		}
	}
	return Anchor{}, apperrors.NewHeaderNotFoundError(marker, table.Source)
}

// ExtractColumn returns the cells below the anchor in the anchor's column.
// Rows too short to reach the column yield an empty name.
func ExtractColumn(table *dataprocessing.Table, anchor Anchor) []domain.SubmittedRecord {
	if anchor.Row+1 >= len(table.Rows) {
		return nil
	}

	records := make([]domain.SubmittedRecord, 0, len(table.Rows)-anchor.Row-1)
	for r := anchor.Row + 1; r < len(table.Rows); r++ {
		raw := ""
		if anchor.Col < len(table.Rows[r]) {
			raw = table.Rows[r][anchor.Col]
		}
		records = append(records, domain.SubmittedRecord{RawName: raw, Row: r + 1})
	}
	return records
}
