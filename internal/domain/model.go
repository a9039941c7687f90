package domain

import (
	"cmp"
	"slices"
)

// MetricKind names one of the four coverage metrics.
type MetricKind string

const (
	MetricStatements MetricKind = "statements"
	MetricBranches   MetricKind = "branches"
	MetricFunctions  MetricKind = "functions"
	MetricLines      MetricKind = "lines"
)

// MetricKinds lists the metrics in display order.
var MetricKinds = []MetricKind{
	MetricStatements,
	MetricBranches,
	MetricFunctions,
	MetricLines,
}

// Metric is a covered/total pair. Upstream data may violate covered <= total;
// nothing here relies on it.
type Metric struct {
	Total   int `json:"total"`
	Covered int `json:"covered"`
}

// Percent returns covered/total as a percentage, or 0 when total is not positive.
func (m Metric) Percent() float64 {
	if m.Total <= 0 {
		return 0
	}
	return float64(m.Covered) / float64(m.Total) * 100
}

func (m Metric) Add(o Metric) Metric {
	return Metric{Total: m.Total + o.Total, Covered: m.Covered + o.Covered}
}

// CoverageSummary holds the four metrics of a report or a single file.
type CoverageSummary struct {
	Statements Metric `json:"statements"`
	Branches   Metric `json:"branches"`
	Functions  Metric `json:"functions"`
	Lines      Metric `json:"lines"`
}

// Metric returns the metric of the given kind. Unknown kinds yield a zero Metric.
func (s CoverageSummary) Metric(kind MetricKind) Metric {
	switch kind {
	case MetricStatements:
		return s.Statements
	case MetricBranches:
		return s.Branches
	case MetricFunctions:
		return s.Functions
	case MetricLines:
		return s.Lines
	default:
		return Metric{}
	}
}

// Add returns the metric-wise sum of s and o.
func (s CoverageSummary) Add(o CoverageSummary) CoverageSummary {
	return CoverageSummary{
		Statements: s.Statements.Add(o.Statements),
		Branches:   s.Branches.Add(o.Branches),
		Functions:  s.Functions.Add(o.Functions),
		Lines:      s.Lines.Add(o.Lines),
	}
}

// FileCoverage is the per-file breakdown produced from a detailed report.
type FileCoverage struct {
	Name string `json:"name"`
	Path string `json:"path"`
	CoverageSummary
}

// AnalysisResult is the normalized form of either report format.
type AnalysisResult struct {
	Files   []FileCoverage  `json:"files"`
	Summary CoverageSummary `json:"summary"`
}

// LeastCovered returns up to n files ordered by ascending statement
// coverage. Files with equal coverage keep their input order.
func (r AnalysisResult) LeastCovered(n int) []FileCoverage {
	if n <= 0 || len(r.Files) == 0 {
		return nil
	}
	files := slices.Clone(r.Files)
	slices.SortStableFunc(files, func(a, b FileCoverage) int {
		return cmp.Compare(a.Statements.Percent(), b.Statements.Percent())
	})
	return files[:min(n, len(files))]
}

// ScoreResult is the weighted evaluation of a CoverageSummary.
type ScoreResult struct {
	OverallPercentage float64         `json:"overall_percentage"`
	StarRating        int             `json:"star_rating"`
	RatingLabel       string          `json:"rating_label"`
	RatingColor       string          `json:"rating_color"`
	Breakdown         []BreakdownItem `json:"breakdown"`
}

type BreakdownItem struct {
	Label            string  `json:"label"`
	CoveredOverTotal string  `json:"covered_over_total"`
	Percentage       float64 `json:"percentage"`
	FillColor        string  `json:"fill_color"`
}

// Analysis is everything produced for one report input.
type Analysis struct {
	Source     string         `json:"source"`
	Format     Format         `json:"format"`
	CommitHash string         `json:"commit_hash,omitempty"`
	Result     AnalysisResult `json:"result"`
	Score      ScoreResult    `json:"score"`
}
