package scoring

// Rating is a qualitative bucket for an overall percentage.
type Rating struct {
	Min   float64 `json:"min"`
	Label string  `json:"label"`
	Color string  `json:"color"`
}

// RatingScale is checked top-down; the first bucket whose Min is reached wins.
var RatingScale = []Rating{
	{Min: 90, Label: "Excellent Coverage", Color: "#28a745"},
	{Min: 80, Label: "Good Coverage", Color: "#20c997"},
	{Min: 70, Label: "Fair Coverage", Color: "#ffc107"},
	{Min: 60, Label: "Poor Coverage", Color: "#fd7e14"},
}

// CriticalRating applies below the lowest bucket of RatingScale.
var CriticalRating = Rating{Min: 0, Label: "Critical - Needs Attention", Color: "#dc3545"}

// FillThreshold colors a single metric bar.
type FillThreshold struct {
	Min   float64 `json:"min"`
	Color string  `json:"color"`
}

// FillScale uses its own thresholds, independent of RatingScale.
var FillScale = []FillThreshold{
	{Min: 80, Color: "#28a745"},
	{Min: 60, Color: "#ffc107"},
}

// LowFillColor applies below the lowest FillScale threshold.
const LowFillColor = "#dc3545"

func RatingFor(overall float64) Rating {
	for _, r := range RatingScale {
		if overall >= r.Min {
			return r
		}
	}
	return CriticalRating
}

func FillColor(pct float64) string {
	for _, f := range FillScale {
		if pct >= f.Min {
			return f.Color
		}
	}
	return LowFillColor
}
