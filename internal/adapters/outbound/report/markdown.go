// Package report renders analyses as Markdown, HTML and shields.io badges.
package report

import (
	"fmt"
	"strings"

	"github.com/covscore/covscore/internal/domain"
	"github.com/covscore/covscore/internal/domain/scoring"
)

// RenderMarkdown renders analyses as GitHub-flavored Markdown, one section
// per report. lowest limits the least-covered files table; 0 hides it.
func RenderMarkdown(analyses []*domain.Analysis, lowest int) string {
	var b strings.Builder
	b.WriteString("# Coverage report\n")
	for _, a := range analyses {
		b.WriteString("\n")
		writeSection(&b, a, lowest)
	}
	return b.String()
}

func writeSection(b *strings.Builder, a *domain.Analysis, lowest int) {
	score := a.Score
	fmt.Fprintf(b, "## %s\n\n", escapeCell(sourceName(a.Source)))
	fmt.Fprintf(b, "![coverage](%s)\n\n", BadgeURL(score))
	fmt.Fprintf(b, "**%.1f%%** %s %s\n\n", score.OverallPercentage, scoring.Stars(score.StarRating), score.RatingLabel)

	meta := fmt.Sprintf("Format: %s", a.Format)
	if a.CommitHash != "" {
		meta += fmt.Sprintf(" · Commit: `%s`", a.CommitHash)
	}
	b.WriteString(meta + "\n\n")

	b.WriteString("| Metric | Covered | Percentage | Weight |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	for i, item := range score.Breakdown {
		fmt.Fprintf(b, "| %s | %s | %.1f%% | %s |\n",
			item.Label, item.CoveredOverTotal, item.Percentage, weightCell(i))
	}

	files := a.Result.LeastCovered(lowest)
	if len(files) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### Least covered files (%d of %d)\n\n", len(files), len(a.Result.Files))
	b.WriteString("| File | Statements | Branches | Functions | Lines |\n")
	b.WriteString("|---|---:|---:|---:|---:|\n")
	for _, f := range files {
		fmt.Fprintf(b, "| `%s` |", escapeCode(f.Path))
		for _, kind := range domain.MetricKinds {
			fmt.Fprintf(b, " %.1f%% |", f.Metric(kind).Percent())
		}
		b.WriteString("\n")
	}
}

func weightCell(i int) string {
	if i >= len(scoring.Weights) {
		return ""
	}
	return fmt.Sprintf("%.0f%%", scoring.Weights[i].Weight*100)
}

func sourceName(src string) string {
	if src == "-" {
		return "stdin"
	}
	return src
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}

// escapeCode prepares s for an inline code span inside a table cell.
func escapeCode(s string) string {
	return escapeCell(strings.ReplaceAll(s, "`", "'"))
}
