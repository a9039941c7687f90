// Package scoring derives the weighted coverage score, star rating and
// rating bucket from a CoverageSummary.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/covscore/covscore/internal/domain"
)

// Weight is the fixed contribution of one metric to the overall percentage.
type Weight struct {
	Kind   domain.MetricKind `json:"kind"`
	Weight float64           `json:"weight"`
}

// Weights sum to 1.0 and are listed in breakdown order.
var Weights = []Weight{
	{Kind: domain.MetricStatements, Weight: 0.4},
	{Kind: domain.MetricBranches, Weight: 0.3},
	{Kind: domain.MetricFunctions, Weight: 0.2},
	{Kind: domain.MetricLines, Weight: 0.1},
}

var titleCaser = cases.Title(language.English)

// Evaluate scores a summary. It never fails: metrics with no total count as 0%.
func Evaluate(summary domain.CoverageSummary) domain.ScoreResult {
	overall := OverallPercentage(summary)
	rating := RatingFor(overall)

	breakdown := make([]domain.BreakdownItem, 0, len(Weights))
	for _, w := range Weights {
		m := summary.Metric(w.Kind)
		pct := m.Percent()
		breakdown = append(breakdown, domain.BreakdownItem{
			Label:            Label(w.Kind),
			CoveredOverTotal: fmt.Sprintf("%d/%d", m.Covered, m.Total),
			Percentage:       pct,
			FillColor:        FillColor(pct),
		})
	}

	return domain.ScoreResult{
		OverallPercentage: overall,
		StarRating:        StarRating(overall),
		RatingLabel:       rating.Label,
		RatingColor:       rating.Color,
		Breakdown:         breakdown,
	}
}

// OverallPercentage is the weighted sum of the four metric percentages.
func OverallPercentage(summary domain.CoverageSummary) float64 {
	var overall float64
	for _, w := range Weights {
		overall += w.Weight * summary.Metric(w.Kind).Percent()
	}
	return overall
}

// StarRating maps a percentage onto 0..5 stars, rounding half away from zero.
func StarRating(overall float64) int {
	stars := int(math.Round(overall / 100 * domain.MaxStars))
	return max(0, min(stars, domain.MaxStars))
}

// Label returns the display label of a metric kind, e.g. "Statements".
func Label(kind domain.MetricKind) string {
	return titleCaser.String(string(kind))
}

// Stars renders a rating as filled and empty stars out of domain.MaxStars.
func Stars(rating int) string {
	rating = max(0, min(rating, domain.MaxStars))
	return strings.Repeat("★", rating) + strings.Repeat("☆", domain.MaxStars-rating)
}
