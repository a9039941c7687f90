package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/covscore/covscore/internal/domain"
	"github.com/covscore/covscore/internal/domain/coverage"
	"github.com/covscore/covscore/internal/domain/scoring"
)

// maxParallelReports bounds concurrent analyses in AnalyzeAll.
const maxParallelReports = 4

// AnalyzeService orchestrates the analysis pipeline:
// read → decode (format detection) → normalize → evaluate.
type AnalyzeService struct {
	source  domain.ReportSource
	decoder domain.ReportDecoder
	finder  domain.ReportFinder
	git     domain.GitInfo
	logger  *slog.Logger
}

// NewAnalyzeService wires the service. finder and git may be nil; directories
// are then rejected and no commit hash is attached.
func NewAnalyzeService(
	source domain.ReportSource,
	decoder domain.ReportDecoder,
	finder domain.ReportFinder,
	git domain.GitInfo,
	logger *slog.Logger,
) *AnalyzeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyzeService{
		source:  source,
		decoder: decoder,
		finder:  finder,
		git:     git,
		logger:  logger,
	}
}

// Analyze decodes, normalizes and scores one report. It performs no work past
// decoding when data is not valid coverage JSON.
func (s *AnalyzeService) Analyze(name string, data []byte) (*domain.Analysis, error) {
	report, err := s.decoder.Decode(data)
	if err != nil {
		return nil, err
	}

	result := coverage.Normalize(report)
	s.logger.Debug("report analyzed",
		"source", name,
		"format", report.Format(),
		"files", len(result.Files),
	)

	return &domain.Analysis{
		Source: name,
		Format: report.Format(),
		Result: result,
		Score:  scoring.Evaluate(result.Summary),
	}, nil
}

// AnalyzeFile reads and analyzes the report at path ("-" for stdin).
func (s *AnalyzeService) AnalyzeFile(ctx context.Context, path string) (*domain.Analysis, error) {
	data, err := s.source.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}

	analysis, err := s.Analyze(path, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if s.git != nil && path != "-" {
		if hash, err := s.git.CommitHash(path); err == nil {
			analysis.CommitHash = hash
		} else {
			s.logger.Debug("no commit for report", "source", path, "error", err)
		}
	}

	return analysis, nil
}

// Expand replaces directory arguments with the reports found below them.
func (s *AnalyzeService) Expand(paths []string, exclude ...string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if p == "-" || err != nil || !info.IsDir() {
			out = append(out, p)
			continue
		}
		if s.finder == nil {
			return nil, fmt.Errorf("%s is a directory", p)
		}

		found, err := s.finder.Find(p, exclude...)
		if err != nil {
			return nil, fmt.Errorf("searching %s: %w", p, err)
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no coverage reports found in %s", p)
		}
		s.logger.Debug("reports discovered", "dir", p, "count", len(found))
		out = append(out, found...)
	}
	return out, nil
}

// AnalyzeAll analyzes every path concurrently. Results keep the order of
// paths; the first failure cancels the rest.
func (s *AnalyzeService) AnalyzeAll(ctx context.Context, paths []string) ([]*domain.Analysis, error) {
	results := make([]*domain.Analysis, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReports)
	for i, p := range paths {
		g.Go(func() error {
			a, err := s.AnalyzeFile(ctx, p)
			if err != nil {
				return err
			}
			results[i] = a
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
