package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/covscore/covscore/internal/adapters/outbound/config"
	"github.com/covscore/covscore/internal/adapters/outbound/decoder"
	"github.com/covscore/covscore/internal/adapters/outbound/gitinfo"
	"github.com/covscore/covscore/internal/adapters/outbound/report"
	"github.com/covscore/covscore/internal/adapters/outbound/scanner"
	"github.com/covscore/covscore/internal/adapters/outbound/source"
	"github.com/covscore/covscore/internal/adapters/outbound/tui"
	"github.com/covscore/covscore/internal/application"
	"github.com/covscore/covscore/internal/domain"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		format     string
		outputPath string
		ciMode     bool
		minPct     float64
		minStars   int
		badge      bool
		lowest     int
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "analyze [report|dir|-]...",
		Short: "Analyze coverage reports",
		Long: `Analyze one or more coverage reports and print their score.

Arguments may be report files, directories (searched for coverage-final.json
and coverage-summary.json, optionally gzipped) or "-" for stdin. With no
arguments the report is read from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("format") {
				cfg.Format = domain.OutputFormat(format)
			}
			if flags.Changed("min") {
				cfg.MinPercentage = &minPct
			}
			if flags.Changed("min-stars") {
				cfg.MinStars = &minStars
			}
			if flags.Changed("lowest") {
				cfg.LowestFiles = &lowest
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}

			if len(args) == 0 {
				if isTerminal(cmd.InOrStdin()) {
					return errors.New("no report given: pass a report file, a directory, or pipe a report to stdin")
				}
				args = []string{source.Stdin}
			}

			logger := slog.Default()
			svc := application.NewAnalyzeService(
				source.NewWithStdin(cmd.InOrStdin()),
				decoder.New(logger),
				scanner.New(),
				gitinfo.New(),
				logger,
			)

			paths, err := svc.Expand(args, cfg.Discovery.Exclude...)
			if err != nil {
				return err
			}

			analyses, err := svc.AnalyzeAll(cmd.Context(), paths)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("creating output: %w", err)
				}
				defer f.Close()
				out = f
			}

			if badge {
				for _, a := range analyses {
					fmt.Fprintln(out, report.BadgeURL(a.Score))
				}
			} else if err := render(out, cfg.EffectiveFormat(), analyses, cfg.EffectiveLowestFiles()); err != nil {
				return err
			}

			if !ciMode {
				return nil
			}
			thresholds := cfg.Thresholds()
			if !thresholds.Enabled() {
				return errors.New("--ci needs --min, --min-stars or thresholds in " + config.FileName)
			}
			gate := application.NewGateService(logger).Check(analyses, thresholds)
			fmt.Fprint(cmd.ErrOrStderr(), tui.RenderGateReport(gate))
			if !gate.Passed() {
				return fmt.Errorf("coverage gate failed: %d violation(s)", len(gate.Violations))
			}
			return nil
		},
	}

	formats := make([]string, 0, len(domain.ValidOutputFormats))
	for _, f := range domain.ValidOutputFormats {
		formats = append(formats, string(f))
	}

	cmd.Flags().StringVar(&format, "format", string(domain.OutputTUI), "Output format ("+strings.Join(formats, ", ")+")")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write output to a file instead of stdout")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if below --min or --min-stars")
	cmd.Flags().Float64Var(&minPct, "min", 0, "Minimum overall percentage for CI mode")
	cmd.Flags().IntVar(&minStars, "min-stars", 0, "Minimum star rating for CI mode")
	cmd.Flags().BoolVar(&badge, "badge", false, "Output shields.io badge URL")
	cmd.Flags().IntVar(&lowest, "lowest", domain.DefaultLowestFiles, "Number of least-covered files to list (0 hides them)")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file (defaults to ./"+config.FileName+")")

	return cmd
}

func loadConfig(path string) (domain.ProjectConfig, error) {
	var loader domain.ConfigLoader = config.New()
	if path != "" {
		cfg, err := loader.LoadFile(path)
		if err != nil {
			return domain.ProjectConfig{}, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := loader.Load(".")
	if err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func render(w io.Writer, format domain.OutputFormat, analyses []*domain.Analysis, lowest int) error {
	switch format {
	case domain.OutputJSON:
		return renderJSON(w, analyses)
	case domain.OutputMarkdown:
		_, err := io.WriteString(w, report.RenderMarkdown(analyses, lowest))
		return err
	case domain.OutputHTML:
		page, err := report.RenderHTML(analyses, lowest)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, page)
		return err
	default:
		for _, a := range analyses {
			fmt.Fprint(w, tui.RenderAnalysis(a, lowest))
		}
		return nil
	}
}

// renderJSON writes a single analysis as an object and several as an array.
func renderJSON(w io.Writer, analyses []*domain.Analysis) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(analyses) == 1 {
		return enc.Encode(analyses[0])
	}
	return enc.Encode(analyses)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
