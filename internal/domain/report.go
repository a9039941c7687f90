package domain

// Format identifies which of the two report shapes an input used.
type Format string

const (
	FormatSummary  Format = "summary"
	FormatDetailed Format = "detailed"
)

// Report is a decoded coverage report: either a SummaryReport or a
// DetailedReport. The format is decided once, when the input is decoded.
type Report interface {
	Format() Format
	isReport()
}

// SummaryReport carries pre-aggregated totals (`{"total": {...}}` input).
type SummaryReport struct {
	Total CoverageSummary
}

func (SummaryReport) Format() Format { return FormatSummary }
func (SummaryReport) isReport()      {}

// DetailedReport carries one record per file, in input order.
type DetailedReport struct {
	Files []FileEntry
}

func (DetailedReport) Format() Format { return FormatDetailed }
func (DetailedReport) isReport()      {}

// FileEntry pairs a report key with its record.
type FileEntry struct {
	Path   string
	Record FileRecord
}

// FileRecord holds the hit counts of one file as found in the input.
type FileRecord struct {
	// Statements has one hit count per statement id.
	Statements []float64
	// Branches has one slice of per-path hit counts per branch id.
	// Entries that were not arrays in the input are absent.
	Branches [][]float64
	// Functions has one hit count per function id.
	Functions []float64
	// Lines is the pre-aggregated line metric, nil when the input had none.
	Lines *Metric
}
