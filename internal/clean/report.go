package clean

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lakshaymaurya-felt/devsweep/internal/ui"
)

const notApplicable = "n/a"

// Report renders res as a table with a totals footer. It only reads res.
func Report(res Result) string {
	mode := "apply"
	if res.DryRun {
		mode = "dry-run"
	}

	rows := make([][]string, 0, len(res.Records))
	for _, r := range res.Records {
		reclaimed := notApplicable
		if !res.DryRun {
			reclaimed = ui.FormatSize(r.Reclaimed)
		}
		rows = append(rows, []string{
			r.Task,
			ui.StatusStyle(string(r.Status)).Render(string(r.Status)),
			ui.FormatSize(r.Estimated),
			reclaimed,
			r.Note,
		})
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ui.ColorMuted)).
		Headers("TASK", "STATUS", "ESTIMATED", "RECLAIMED", "NOTE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	var b strings.Builder
	b.WriteString(ui.Heading(fmt.Sprintf("Cleanup report (%s)", mode), 60))
	b.WriteString("\n")
	if len(rows) == 0 {
		b.WriteString(ui.DimStyle().Render("  no tasks selected"))
		b.WriteString("\n")
	} else {
		b.WriteString(tbl.Render())
		b.WriteString("\n")
	}

	t := res.Totals()
	fmt.Fprintf(&b, "  Estimated reclaimable: %s\n", ui.FormatSize(t.Estimated))
	switch {
	case res.DryRun:
		fmt.Fprintf(&b, "  Reclaimed:             %s\n", notApplicable)
	case res.Sampled:
		fmt.Fprintf(&b, "  Reclaimed:             %s (free %s %s %s)\n", ui.FormatSize(t.Reclaimed),
			ui.FormatSize(res.StartFree), ui.IconArrow, ui.FormatSize(res.EndFree))
	default:
		fmt.Fprintf(&b, "  Reclaimed:             %s (free space unavailable)\n", ui.FormatSize(0))
	}
	fmt.Fprintf(&b, "  Tasks:                 %d ok, %d skipped, %d failed\n", t.OK, t.Skipped, t.Failed)
	b.WriteString("  " + outcome(res) + "\n")
	return b.String()
}

func outcome(res Result) string {
	switch {
	case res.Halted():
		return ui.ErrorStyle().Render(fmt.Sprintf("%s Halted after %s failed (strict mode)", ui.IconCross, res.HaltedAfter))
	case res.Failed:
		return ui.WarningStyle().Render(ui.IconWarning + " Completed with failures")
	}
	return ui.SuccessStyle().Render(ui.IconCheck + " Completed")
}
