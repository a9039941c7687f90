package report

import (
	"fmt"
	"strings"

	"github.com/covscore/covscore/internal/domain"
)

const badgeBase = "https://img.shields.io/badge/coverage-"

// BadgeURL returns a shields.io static badge showing the overall percentage
// in the rating color.
func BadgeURL(score domain.ScoreResult) string {
	return fmt.Sprintf("%s%.1f%%25-%s", badgeBase, score.OverallPercentage, strings.TrimPrefix(score.RatingColor, "#"))
}
