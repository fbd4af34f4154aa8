package purge

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lakshaymaurya-felt/devsweep/internal/ui"
)

// DefaultLargest is how many matches the largest list shows.
const DefaultLargest = 10

// TypeSummary aggregates matches of one type.
type TypeSummary struct {
	Type  string
	Count int
	KB    int64
}

// Summarize groups matches by type, largest total first. Types of equal
// size keep the order in which they were first discovered.
func Summarize(matches []Match) []TypeSummary {
	index := make(map[string]int)
	var out []TypeSummary
	for _, m := range matches {
		i, ok := index[m.Type]
		if !ok {
			i = len(out)
			index[m.Type] = i
			out = append(out, TypeSummary{Type: m.Type})
		}
		out[i].Count++
		out[i].KB += m.KB
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].KB > out[j].KB })
	return out
}

// TotalKB sums match sizes.
func TotalKB(matches []Match) int64 {
	var n int64
	for _, m := range matches {
		n += m.KB
	}
	return n
}

// Largest returns up to n matches by size descending, ties in discovery
// order. n <= 0 returns all of them.
func Largest(matches []Match, n int) []Match {
	out := append([]Match(nil), matches...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].KB > out[j].KB })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Report renders the scan result for root.
func Report(root string, matches []Match, listAll bool) string {
	var b strings.Builder
	b.WriteString(ui.Heading("Purge candidates under "+root, 60))
	b.WriteString("\n")
	if len(matches) == 0 {
		b.WriteString(ui.DimStyle().Render("  No matches found."))
		b.WriteString("\n")
		return b.String()
	}

	var typeRows [][]string
	for _, s := range Summarize(matches) {
		typeRows = append(typeRows, []string{s.Type, strconv.Itoa(s.Count), formatKB(s.KB), ui.FormatSize(s.KB * 1024)})
	}
	b.WriteString(renderTable([]string{"TYPE", "COUNT", "KB", "SIZE"}, typeRows))
	b.WriteString("\n")

	n := DefaultLargest
	title := fmt.Sprintf("Largest %d", n)
	if listAll {
		n, title = 0, "All matches"
	}
	var rows [][]string
	for _, m := range Largest(matches, n) {
		rows = append(rows, []string{m.Path, m.Type, formatKB(m.KB)})
	}
	b.WriteString(ui.TitleStyle().Render("  " + title))
	b.WriteString("\n")
	b.WriteString(renderTable([]string{"PATH", "TYPE", "KB"}, rows))
	b.WriteString("\n")

	total := TotalKB(matches)
	fmt.Fprintf(&b, "  %d matches, %s KB (%s)\n", len(matches), formatKB(total), ui.FormatSize(total*1024))
	return b.String()
}

func renderTable(headers []string, rows [][]string) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorCoral).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ui.ColorMuted)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Render()
}

// formatKB renders n with thousands separators.
func formatKB(n int64) string {
	s := strconv.FormatInt(n, 10)
	if n < 0 {
		return s
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
