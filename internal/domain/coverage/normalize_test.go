package coverage_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/covscore/covscore/internal/domain"
	"github.com/covscore/covscore/internal/domain/coverage"
)

func TestNormalize_SummaryReportIsCopiedVerbatim(t *testing.T) {
	total := domain.CoverageSummary{
		Statements: domain.Metric{Total: 10, Covered: 8},
		Branches:   domain.Metric{Total: 4, Covered: 2},
		Functions:  domain.Metric{Total: 5, Covered: 5},
		Lines:      domain.Metric{Total: 20, Covered: 18},
	}

	got := coverage.Normalize(domain.SummaryReport{Total: total})

	assert.Equal(t, total, got.Summary)
	assert.NotNil(t, got.Files)
	assert.Empty(t, got.Files)
}

func TestNormalize_SingleDetailedFile(t *testing.T) {
	report := domain.DetailedReport{Files: []domain.FileEntry{{
		Path: "/src/a.js",
		Record: domain.FileRecord{
			Statements: []float64{1, 0, 3},
			Branches:   [][]float64{{1, 0}, {0, 0}},
			Functions:  []float64{2},
			Lines:      &domain.Metric{Total: 5, Covered: 3},
		},
	}}}

	got := coverage.Normalize(report)

	want := domain.CoverageSummary{
		Statements: domain.Metric{Total: 3, Covered: 2},
		Branches:   domain.Metric{Total: 4, Covered: 1},
		Functions:  domain.Metric{Total: 1, Covered: 1},
		Lines:      domain.Metric{Total: 5, Covered: 3},
	}
	wantFiles := []domain.FileCoverage{{Name: "a.js", Path: "/src/a.js", CoverageSummary: want}}

	if diff := cmp.Diff(wantFiles, got.Files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, want, got.Summary)
}

func TestNormalize_SumsFilesInInputOrder(t *testing.T) {
	report := domain.DetailedReport{Files: []domain.FileEntry{
		{Path: "src/z.ts", Record: domain.FileRecord{Statements: []float64{1, 1}}},
		{Path: "src/a.ts", Record: domain.FileRecord{
			Statements: []float64{0},
			Functions:  []float64{0, 4},
			Lines:      &domain.Metric{Total: 10, Covered: 4},
		}},
		{Path: "m.ts", Record: domain.FileRecord{Branches: [][]float64{{2, 2, 0}}}},
	}}

	got := coverage.Normalize(report)

	names := make([]string, 0, len(got.Files))
	for _, f := range got.Files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"z.ts", "a.ts", "m.ts"}, names)

	assert.Equal(t, domain.CoverageSummary{
		Statements: domain.Metric{Total: 3, Covered: 2},
		Branches:   domain.Metric{Total: 3, Covered: 2},
		Functions:  domain.Metric{Total: 2, Covered: 1},
		Lines:      domain.Metric{Total: 10, Covered: 4},
	}, got.Summary)
}

func TestNormalize_EmptyRecordYieldsZeroMetrics(t *testing.T) {
	report := domain.DetailedReport{Files: []domain.FileEntry{{Path: "lib/empty.js"}}}

	got := coverage.Normalize(report)

	assert.Len(t, got.Files, 1)
	assert.Equal(t, domain.CoverageSummary{}, got.Files[0].CoverageSummary)
	assert.Equal(t, domain.CoverageSummary{}, got.Summary)
}

func TestNormalize_EmptyDetailedReport(t *testing.T) {
	got := coverage.Normalize(domain.DetailedReport{})
	assert.Empty(t, got.Files)
	assert.Equal(t, domain.CoverageSummary{}, got.Summary)
}

func TestNormalize_LinesArePassedThrough(t *testing.T) {
	// Line totals are taken as given even when inconsistent with statements.
	report := domain.DetailedReport{Files: []domain.FileEntry{{
		Path: "x.js",
		Record: domain.FileRecord{
			Statements: []float64{0, 0},
			Lines:      &domain.Metric{Total: 3, Covered: 7},
		},
	}}}

	got := coverage.Normalize(report)
	assert.Equal(t, domain.Metric{Total: 3, Covered: 7}, got.Summary.Lines)
	assert.Equal(t, domain.Metric{Total: 2, Covered: 0}, got.Summary.Statements)
}

func TestDisplayName(t *testing.T) {
	tests := []struct{ path, want string }{
		{"/src/a.js", "a.js"},
		{"src/lib/util.ts", "util.ts"},
		{"plain.js", "plain.js"},
		{"src/dir/", "src/dir/"},
		{"", ""},
		{`C:\repo\win.js`, `C:\repo\win.js`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, coverage.DisplayName(tt.path), "path %q", tt.path)
	}
}
