package domain

// Thresholds are the minimums a report must reach in CI mode. Nil fields are
// not enforced.
type Thresholds struct {
	MinPercentage *float64 `json:"min_percentage,omitempty"`
	MinStars      *int     `json:"min_stars,omitempty"`
}

// Enabled reports whether any threshold is set.
func (t Thresholds) Enabled() bool {
	return t.MinPercentage != nil || t.MinStars != nil
}

// Thresholds returns the CI thresholds configured in c.
func (c ProjectConfig) Thresholds() Thresholds {
	return Thresholds{MinPercentage: c.MinPercentage, MinStars: c.MinStars}
}

// GateViolation is one threshold a report failed to reach.
type GateViolation struct {
	Source   string  `json:"source"`
	Check    string  `json:"check"`
	Actual   float64 `json:"actual"`
	Required float64 `json:"required"`
}

// GateReport is the outcome of checking a set of analyses against Thresholds.
type GateReport struct {
	Thresholds Thresholds      `json:"thresholds"`
	Checked    int             `json:"checked"`
	Violations []GateViolation `json:"violations"`
}

func (r *GateReport) Passed() bool {
	return len(r.Violations) == 0
}
