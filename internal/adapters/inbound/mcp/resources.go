package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/covscore/covscore/internal/domain"
	"github.com/covscore/covscore/internal/domain/scoring"
)

const ratingScaleURI = "covscore://rating-scale"

// ratingScale is the document served at ratingScaleURI.
type ratingScale struct {
	Weights      []scoring.Weight        `json:"weights"`
	Ratings      []scoring.Rating        `json:"ratings"`
	Critical     scoring.Rating          `json:"critical"`
	Fill         []scoring.FillThreshold `json:"fill"`
	LowFillColor string                  `json:"low_fill_color"`
	MaxStars     int                     `json:"max_stars"`
}

// registerResources registers all covscore MCP resources on the given server.
func registerResources(s *server.MCPServer) {
	s.AddResource(
		mcplib.NewResource(
			ratingScaleURI,
			"Rating Scale",
			mcplib.WithResourceDescription("Metric weights, rating buckets and fill color thresholds used to score coverage"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRatingScaleResource,
	)
}

func handleRatingScaleResource(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(ratingScale{
		Weights:      scoring.Weights,
		Ratings:      scoring.RatingScale,
		Critical:     scoring.CriticalRating,
		Fill:         scoring.FillScale,
		LowFillColor: scoring.LowFillColor,
		MaxStars:     domain.MaxStars,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling rating scale: %w", err)
	}

	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      ratingScaleURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
