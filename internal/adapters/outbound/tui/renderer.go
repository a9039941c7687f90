package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/covscore/covscore/internal/domain"
	"github.com/covscore/covscore/internal/domain/scoring"
)

// ── palette ──
var (
	accent = lipgloss.Color("#3498DB") // blue
	fg     = lipgloss.Color("#E8E6E3") // warm light gray
	dim    = lipgloss.Color("#6B7280") // muted gray
	faint  = lipgloss.Color("#3F3F46") // very dim
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(faint).
			Padding(0, 1).
			Align(lipgloss.Center).
			Width(15)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

var printer = message.NewPrinter(language.English)

const (
	barWidth      = 24
	fileNameWidth = 28
)

// RenderAnalysis formats one analysis for terminal output. lowest limits the
// least-covered files table; 0 hides it.
func RenderAnalysis(a *domain.Analysis, lowest int) string {
	var b strings.Builder

	// ── Header ──
	score := a.Score
	ratingColor := lipgloss.Color(score.RatingColor)
	title := headerStyle.Render("covscore")
	subtitle := dimStyle.Render("Coverage Score")
	pct := lipgloss.NewStyle().Bold(true).Foreground(ratingColor).
		Render(fmt.Sprintf("%.1f%%", score.OverallPercentage))
	stars := lipgloss.NewStyle().Foreground(ratingColor).Render(scoring.Stars(score.StarRating))
	label := lipgloss.NewStyle().Bold(true).Foreground(ratingColor).Render(score.RatingLabel)

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + pct + "  " + stars + "\n" + label))
	b.WriteString("\n")
	b.WriteString("  " + dimStyle.Render(sourceLine(a)) + "\n\n")

	// ── Summary cards ──
	b.WriteString(renderCards(a.Result.Summary))
	b.WriteString("\n\n")

	// ── Breakdown ──
	b.WriteString("  " + titleStyle.Render("Breakdown") + "\n\n")
	for _, item := range score.Breakdown {
		renderBreakdownItem(&b, item)
	}

	// ── Files ──
	if files := a.Result.LeastCovered(lowest); len(files) > 0 {
		b.WriteString("\n  " + separatorLine + "\n\n")
		b.WriteString("  " + titleStyle.Render("Least covered files") + "  ")
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d of %d", len(files), len(a.Result.Files))) + "\n\n")
		fmt.Fprintf(&b, "    %s %s\n",
			dimStyle.Render(runewidth.FillRight("file", fileNameWidth)),
			dimStyle.Render("  stmts  branch   funcs   lines"))
		for _, f := range files {
			renderFile(&b, f)
		}
	}

	b.WriteString("\n")
	return b.String()
}

func sourceLine(a *domain.Analysis) string {
	line := fmt.Sprintf("%s · %s format", displaySource(a.Source), a.Format)
	if a.CommitHash != "" {
		hash := a.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		line += " · " + hash
	}
	return line
}

func renderCards(summary domain.CoverageSummary) string {
	cards := make([]string, 0, len(domain.MetricKinds))
	for _, kind := range domain.MetricKinds {
		m := summary.Metric(kind)
		pct := m.Percent()
		value := printer.Sprintf("%d/%d", m.Covered, m.Total)
		pctStyled := lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(scoring.FillColor(pct))).
			Render(fmt.Sprintf("%.1f%%", pct))
		cards = append(cards, cardStyle.Render(
			labelStyle.Render(scoring.Label(kind))+"\n"+dimStyle.Render(value)+"\n"+pctStyled,
		))
	}
	return "  " + lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func renderBreakdownItem(b *strings.Builder, item domain.BreakdownItem) {
	name := labelStyle.Render(runewidth.FillRight(item.Label, 12))
	bar := coloredBar(item.Percentage, barWidth, lipgloss.Color(item.FillColor))
	pct := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(item.FillColor)).
		Render(fmt.Sprintf("%5.1f%%", item.Percentage))
	fmt.Fprintf(b, "    %s %s  %s  %s\n", name, bar, pct, dimStyle.Render(item.CoveredOverTotal))
}

func renderFile(b *strings.Builder, f domain.FileCoverage) {
	name := runewidth.FillRight(runewidth.Truncate(f.Name, fileNameWidth, "…"), fileNameWidth)
	cols := make([]string, 0, len(domain.MetricKinds))
	for _, kind := range domain.MetricKinds {
		pct := f.Metric(kind).Percent()
		cols = append(cols, lipgloss.NewStyle().
			Foreground(lipgloss.Color(scoring.FillColor(pct))).
			Render(fmt.Sprintf("%6.1f%%", pct)))
	}
	fmt.Fprintf(b, "    %s %s\n", name, strings.Join(cols, " "))
}

func coloredBar(pct float64, width int, color lipgloss.Color) string {
	filled := max(0, min(int(pct*float64(width)/100), width))
	empty := width - filled

	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}
