package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/covscore/covscore/internal/application"
	"github.com/covscore/covscore/internal/domain"
)

func analysisWith(source string, pct float64, stars int) *domain.Analysis {
	return &domain.Analysis{
		Source: source,
		Score:  domain.ScoreResult{OverallPercentage: pct, StarRating: stars},
	}
}

func ptr[T any](v T) *T { return &v }

func TestGateService_NoThresholds(t *testing.T) {
	report := application.NewGateService(nil).Check(
		[]*domain.Analysis{analysisWith("a", 10, 1)},
		domain.Thresholds{},
	)
	assert.True(t, report.Passed())
	assert.Equal(t, 1, report.Checked)
	assert.NotNil(t, report.Violations)
}

func TestGateService_MinPercentage(t *testing.T) {
	analyses := []*domain.Analysis{
		analysisWith("good.json", 85, 4),
		analysisWith("bad.json", 79.9, 4),
		analysisWith("edge.json", 80, 4),
	}

	report := application.NewGateService(nil).Check(analyses, domain.Thresholds{MinPercentage: ptr(80.0)})

	assert.False(t, report.Passed())
	assert.Equal(t, []domain.GateViolation{{
		Source:   "bad.json",
		Check:    application.CheckOverall,
		Actual:   79.9,
		Required: 80,
	}}, report.Violations)
}

func TestGateService_MinStars(t *testing.T) {
	analyses := []*domain.Analysis{
		analysisWith("a.json", 50, 3),
		analysisWith("b.json", 95, 5),
	}

	report := application.NewGateService(nil).Check(analyses, domain.Thresholds{MinStars: ptr(4)})

	assert.Len(t, report.Violations, 1)
	assert.Equal(t, application.CheckStars, report.Violations[0].Check)
	assert.Equal(t, "a.json", report.Violations[0].Source)
	assert.Equal(t, 3.0, report.Violations[0].Actual)
}

func TestGateService_BothThresholdsFailing(t *testing.T) {
	report := application.NewGateService(nil).Check(
		[]*domain.Analysis{analysisWith("x", 20, 1)},
		domain.Thresholds{MinPercentage: ptr(60.0), MinStars: ptr(3)},
	)
	assert.Len(t, report.Violations, 2)
}
