package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/covscore/covscore/internal/adapters/outbound/tui"
	"github.com/covscore/covscore/internal/domain"
	"github.com/covscore/covscore/internal/domain/coverage"
	"github.com/covscore/covscore/internal/domain/scoring"
)

func sampleAnalysis() *domain.Analysis {
	report := domain.DetailedReport{Files: []domain.FileEntry{
		{Path: "/src/app.js", Record: domain.FileRecord{
			Statements: []float64{1, 1, 1, 1},
			Functions:  []float64{1},
		}},
		{Path: "/src/util/strings.js", Record: domain.FileRecord{
			Statements: []float64{0, 0, 1},
			Branches:   [][]float64{{0, 1}},
		}},
		{Path: "/src/legacy.js", Record: domain.FileRecord{
			Statements: []float64{0, 0},
		}},
	}}
	result := coverage.Normalize(report)
	return &domain.Analysis{
		Source:     "coverage/coverage-final.json",
		Format:     report.Format(),
		CommitHash: "0123456789abcdef",
		Result:     result,
		Score:      scoring.Evaluate(result.Summary),
	}
}

func TestRenderAnalysis_ContainsHeader(t *testing.T) {
	a := sampleAnalysis()
	output := tui.RenderAnalysis(a, 10)

	assert.Contains(t, output, "covscore")
	assert.Contains(t, output, "Coverage Score")
	assert.Contains(t, output, a.Score.RatingLabel)
	assert.Contains(t, output, scoring.Stars(a.Score.StarRating))
}

func TestRenderAnalysis_ContainsSourceLine(t *testing.T) {
	output := tui.RenderAnalysis(sampleAnalysis(), 10)
	assert.Contains(t, output, "coverage/coverage-final.json")
	assert.Contains(t, output, "detailed format")
	assert.Contains(t, output, "0123456")
	assert.NotContains(t, output, "0123456789abcdef")
}

func TestRenderAnalysis_ContainsBreakdown(t *testing.T) {
	output := tui.RenderAnalysis(sampleAnalysis(), 10)
	for _, label := range []string{"Statements", "Branches", "Functions", "Lines"} {
		assert.Contains(t, output, label)
	}
	assert.Contains(t, output, "5/9")
}

func TestRenderAnalysis_ListsLeastCoveredFiles(t *testing.T) {
	output := tui.RenderAnalysis(sampleAnalysis(), 2)
	assert.Contains(t, output, "Least covered files")
	assert.Contains(t, output, "2 of 3")
	assert.Contains(t, output, "legacy.js")
	assert.Contains(t, output, "strings.js")
	assert.NotContains(t, output, "app.js")
}

func TestRenderAnalysis_HidesFilesWhenZero(t *testing.T) {
	output := tui.RenderAnalysis(sampleAnalysis(), 0)
	assert.NotContains(t, output, "Least covered files")
}

func TestRenderAnalysis_SummaryReportHasNoFileTable(t *testing.T) {
	summary := domain.CoverageSummary{Statements: domain.Metric{Total: 2000, Covered: 1234}}
	a := &domain.Analysis{
		Source: "-",
		Format: domain.FormatSummary,
		Result: coverage.Normalize(domain.SummaryReport{Total: summary}),
		Score:  scoring.Evaluate(summary),
	}

	output := tui.RenderAnalysis(a, 10)
	assert.Contains(t, output, "stdin")
	assert.Contains(t, output, "1,234/2,000")
	assert.NotContains(t, output, "Least covered files")
}
