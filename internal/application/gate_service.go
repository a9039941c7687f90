package application

import (
	"log/slog"

	"github.com/covscore/covscore/internal/domain"
)

// Gate check names.
const (
	CheckOverall = "overall_percentage"
	CheckStars   = "star_rating"
)

// GateService checks analyses against CI thresholds.
type GateService struct {
	logger *slog.Logger
}

func NewGateService(logger *slog.Logger) *GateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GateService{logger: logger}
}

// Check evaluates every analysis against t. Each analysis contributes at most
// one violation per threshold.
func (s *GateService) Check(analyses []*domain.Analysis, t domain.Thresholds) *domain.GateReport {
	report := &domain.GateReport{
		Thresholds: t,
		Checked:    len(analyses),
		Violations: []domain.GateViolation{},
	}

	for _, a := range analyses {
		if t.MinPercentage != nil && a.Score.OverallPercentage < *t.MinPercentage {
			report.Violations = append(report.Violations, domain.GateViolation{
				Source:   a.Source,
				Check:    CheckOverall,
				Actual:   a.Score.OverallPercentage,
				Required: *t.MinPercentage,
			})
		}
		if t.MinStars != nil && a.Score.StarRating < *t.MinStars {
			report.Violations = append(report.Violations, domain.GateViolation{
				Source:   a.Source,
				Check:    CheckStars,
				Actual:   float64(a.Score.StarRating),
				Required: float64(*t.MinStars),
			})
		}
	}

	s.logger.Debug("gate checked",
		"reports", report.Checked,
		"violations", len(report.Violations),
	)
	return report
}
