package bench

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

var reportHeaders = []string{
	"run", "time", "n", "mean", "hmean", "median", "min", "max", "stddev", "stderr", "ci95",
}

func us(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func statsRow(label, kind string, s Stats) []string {
	return []string{
		label, kind, strconv.Itoa(s.N),
		us(s.Mean), us(s.HarmonicMean), us(s.Median), us(s.Min), us(s.Max),
		us(s.StdDev), us(s.StdErr), "±" + us(s.CI95),
	}
}

// Report renders results as a table, all times in microseconds.
func Report(title string, results []Result) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(reportHeaders...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range results {
		t.Row(statsRow(r.Label(), "kernel", r.Kernel)...)
		t.Row(statsRow(r.Label(), "wall", r.Wall)...)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title + " (µs)"))
	b.WriteString("\n")
	b.WriteString(t.String())
	b.WriteString("\n")
	return b.String()
}

// ResultTable renders one graph's Node | Parent | Distance table. distances
// may be nil.
func ResultTable(title string, parents, distances []int32) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("node", "parent", "distance").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for v, p := range parents {
		d := "-"
		if distances != nil {
			d = strconv.Itoa(int(distances[v]))
		}
		t.Row(strconv.Itoa(v), strconv.Itoa(int(p)), d)
	}
	return titleStyle.Render(title) + "\n" + t.String() + "\n"
}
