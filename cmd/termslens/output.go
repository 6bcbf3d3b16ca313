package main

import (
	"fmt"
	"io"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"termslens/internal/extract"
	"termslens/internal/pipeline"
	"termslens/internal/risk"
)

type check struct {
	Name string
	Fn   func() error
}

func severityStyle(sev risk.Severity) color.Style {
	switch sev {
	case risk.SeverityDanger:
		return color.New(color.FgRed, color.OpBold)
	case risk.SeverityWarning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func paint(style color.Style, s string, colour bool) string {
	if !colour {
		return s
	}
	return style.Render(s)
}

func printResult(w io.Writer, result pipeline.Result, colour bool) {
	overall := result.Classification.Overall
	fmt.Fprintf(w, "Risk: %s\n\n", paint(severityStyle(overall), string(overall), colour))
	fmt.Fprintf(w, "Summary (%s):\n%s\n\n", result.SummarySource, result.Summary)
	fmt.Fprintf(w, "What this means:\n%s\n\n", result.Explanation)

	if len(result.Classification.Items) == 0 {
		fmt.Fprintln(w, paint(severityStyle(risk.SeveritySafe), "No risky clauses found.", colour))
		return
	}
	table := newTable(w)
	table.SetHeader([]string{"Category", "Severity", "Explanation"})
	for _, item := range result.Classification.Items {
		table.Append([]string{
			item.Category,
			paint(severityStyle(item.Severity), string(item.Severity), colour),
			item.Explanation,
		})
	}
	table.Render()
}

func printDetection(w io.Writer, page extract.Page, det extract.Detection, colour bool) {
	verdict := paint(color.New(color.FgYellow), "not a legal page", colour)
	if det.Legal {
		verdict = paint(color.New(color.FgGreen), "legal page", colour)
	}
	fmt.Fprintf(w, "%s (%s): %s, score %d\n", page.Host, page.Title, verdict, det.Score)
	if len(det.Signals) > 0 {
		fmt.Fprintf(w, "signals: %v\n", det.Signals)
	}
	fmt.Fprintln(w)
}

func printChecks(w io.Writer, checks []check) {
	table := newTable(w)
	table.SetHeader([]string{"Check", "Status", "Detail"})
	for _, c := range checks {
		if err := c.Fn(); err != nil {
			table.Append([]string{c.Name, color.New(color.FgRed).Render("FAIL"), err.Error()})
			continue
		}
		table.Append([]string{c.Name, color.New(color.FgGreen).Render("OK"), ""})
	}
	table.Render()
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("\t")
	return table
}
