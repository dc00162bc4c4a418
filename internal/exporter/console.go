package exporter

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"attendcli/pkg/contracts/domain"
)

// consoleHeaders prefixes the report columns with the display index
var consoleHeaders = append([]string{"#"}, domain.ReportHeaders...)

// RenderTable prints the report as a text table followed by a summary footer
func RenderTable(w io.Writer, report *domain.AttendanceReport) error {
	config := tablewriter.Config{}
	config.Row.Alignment = tw.CellAlignment{
		PerColumn: []tw.Align{tw.AlignRight, tw.AlignLeft, tw.AlignLeft, tw.AlignLeft},
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	headers := make([]any, len(consoleHeaders))
	for i, h := range consoleHeaders {
		headers[i] = h
	}
	table.Header(headers...)

	for _, rec := range report.Records {
		if err := table.Append(formatIndex(rec.Index), rec.Name, rec.Status.String(), rec.CoachName); err != nil {
			return err
		}
	}

	table.Footer("", "Total "+formatIndex(report.Summary.Total), formatSummary(report.Summary), "")

	return table.Render()
}
