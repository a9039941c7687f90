// Package coverage turns either report format into one canonical summary.
package coverage

import (
	"strings"

	"github.com/covscore/covscore/internal/domain"
)

// Normalize builds the AnalysisResult for a decoded report.
// Summary reports are copied as-is and carry no files. Detailed reports are
// summarized per file, in input order, and summed into the overall summary.
func Normalize(report domain.Report) domain.AnalysisResult {
	switch r := report.(type) {
	case domain.SummaryReport:
		return domain.AnalysisResult{
			Files:   []domain.FileCoverage{},
			Summary: r.Total,
		}
	case domain.DetailedReport:
		return normalizeDetailed(r)
	default:
		return domain.AnalysisResult{Files: []domain.FileCoverage{}}
	}
}

func normalizeDetailed(r domain.DetailedReport) domain.AnalysisResult {
	result := domain.AnalysisResult{
		Files: make([]domain.FileCoverage, 0, len(r.Files)),
	}

	for _, entry := range r.Files {
		fc := SummarizeFile(entry)
		result.Files = append(result.Files, fc)
		result.Summary = result.Summary.Add(fc.CoverageSummary)
	}

	return result
}

// SummarizeFile computes the four metrics of a single file record.
// Lines are taken from the record's pre-aggregated numbers, never derived
// from hit counts.
func SummarizeFile(entry domain.FileEntry) domain.FileCoverage {
	rec := entry.Record

	fc := domain.FileCoverage{
		Name: DisplayName(entry.Path),
		Path: entry.Path,
	}
	fc.Statements = countHits(rec.Statements)
	fc.Functions = countHits(rec.Functions)
	for _, paths := range rec.Branches {
		fc.Branches = fc.Branches.Add(countHits(paths))
	}
	if rec.Lines != nil {
		fc.Lines = *rec.Lines
	}

	return fc
}

// DisplayName returns the last "/"-separated segment of path, or path itself
// when that segment is empty.
func DisplayName(path string) string {
	name := path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		name = path[i+1:]
	}
	if name == "" {
		return path
	}
	return name
}

func countHits(hits []float64) domain.Metric {
	m := domain.Metric{Total: len(hits)}
	for _, h := range hits {
		if h > 0 {
			m.Covered++
		}
	}
	return m
}
