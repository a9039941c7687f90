package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/covscore/covscore/internal/adapters/outbound/config"
	"github.com/covscore/covscore/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		format   string
		minPct   float64
		minStars int
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Generate a " + config.FileName + " configuration file",
		Long:  "Create a " + config.FileName + " with output and CI gate defaults.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			cfg := domain.ProjectConfig{Format: domain.OutputFormat(format)}
			if cmd.Flags().Changed("min") {
				cfg.MinPercentage = &minPct
			}
			if cmd.Flags().Changed("min-stars") {
				cfg.MinStars = &minStars
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := os.WriteFile(dest, []byte(generateConfig(cfg)), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(domain.OutputTUI), "Default output format")
	cmd.Flags().Float64Var(&minPct, "min", 0, "Minimum overall percentage for CI mode")
	cmd.Flags().IntVar(&minStars, "min-stars", 0, "Minimum star rating for CI mode")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing "+config.FileName)

	return cmd
}

func generateConfig(cfg domain.ProjectConfig) string {
	var b strings.Builder
	b.WriteString("# covscore configuration\n\n")
	fmt.Fprintf(&b, "format: %s\n", cfg.EffectiveFormat())
	fmt.Fprintf(&b, "lowest_files: %d\n\n", cfg.EffectiveLowestFiles())

	if cfg.MinPercentage != nil {
		fmt.Fprintf(&b, "min_percentage: %g\n", *cfg.MinPercentage)
	} else {
		b.WriteString("# min_percentage: 80\n")
	}
	if cfg.MinStars != nil {
		fmt.Fprintf(&b, "min_stars: %d\n", *cfg.MinStars)
	} else {
		b.WriteString("# min_stars: 4\n")
	}

	b.WriteString(`
# discovery:
#   exclude:
#     - fixtures
#     - examples
`)
	return b.String()
}
