package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/covscore/covscore/internal/domain"
)

var (
	passColor = lipgloss.Color("#28a745")
	failColor = lipgloss.Color("#dc3545")

	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	passStyle          = lipgloss.NewStyle().Bold(true).Foreground(passColor)
	failStyle          = lipgloss.NewStyle().Bold(true).Foreground(failColor)
	fileStyle          = lipgloss.NewStyle().Foreground(fg)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// RenderGateReport renders the CI gate outcome.
func RenderGateReport(report *domain.GateReport) string {
	var b strings.Builder

	b.WriteString("  " + sectionHeaderStyle.Render("CI gate") + "  ")
	b.WriteString(dimStyle.Render(thresholdLine(report.Thresholds)) + "\n\n")

	if report.Passed() {
		fmt.Fprintf(&b, "    %s %s\n",
			passStyle.Render("✓"),
			dimStyle.Render(fmt.Sprintf("%d report(s) passed", report.Checked)),
		)
		return b.String()
	}

	for _, v := range report.Violations {
		fmt.Fprintf(&b, "    %s %s  %s\n",
			failStyle.Render("✗"),
			fileStyle.Render(displaySource(v.Source)),
			violationDetail(v),
		)
	}
	b.WriteString("\n")
	b.WriteString("  " + hintStyle.Render(fmt.Sprintf("%d violation(s) in %d report(s)", len(report.Violations), report.Checked)))
	b.WriteString("\n")

	return b.String()
}

func thresholdLine(t domain.Thresholds) string {
	var parts []string
	if t.MinPercentage != nil {
		parts = append(parts, fmt.Sprintf("min %.1f%%", *t.MinPercentage))
	}
	if t.MinStars != nil {
		parts = append(parts, fmt.Sprintf("min %d stars", *t.MinStars))
	}
	if len(parts) == 0 {
		return "no thresholds"
	}
	return strings.Join(parts, " · ")
}

func violationDetail(v domain.GateViolation) string {
	if v.Check == "star_rating" {
		return faintStyle.Render(fmt.Sprintf("%d stars < %d", int(v.Actual), int(v.Required)))
	}
	return faintStyle.Render(fmt.Sprintf("%.1f%% < %.1f%%", v.Actual, v.Required))
}

func displaySource(src string) string {
	if src == "-" {
		return "stdin"
	}
	return src
}
