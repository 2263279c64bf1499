package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gouniform/adapters/samplefile"
	"gouniform/app"
	domain "gouniform/domain/uniformity"
	"gouniform/internal"
	"gouniform/internal/config"
	"gouniform/internal/errors"
	"gouniform/internal/report"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gouniform-cli",
		Short:         "Run statistical uniformity tests over a sample of pseudo-random numbers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newTestCmd(),
	)
	return rootCmd
}

func newRunCmd() *cobra.Command {
	var format string
	var strict bool

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Run every test and print a report",
		Long: `Run the mean, variance, Kolmogorov-Smirnov, chi-squared and poker tests over the
numbers in a JSON ({"numbers": [...]}), CSV or XLSX file.

Example: gouniform-cli run numbers.json --format markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			battery, err := loadBattery(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			r := battery.Report()
			out, err := report.Render(r, f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if strict && !r.Passed() {
				return fmt.Errorf("sample %s did not pass every test", args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, markdown or html")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero unless every test passes")
	return cmd
}

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test [name] [file]",
		Short: "Run a single test: mean, variance, ks, chi or poker",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := domain.ParseTestName(args[0])
			if err != nil {
				return errors.NotFound("test " + args[0])
			}
			battery, err := loadBattery(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			outcome, err := battery.Run(name)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), outcome)
		},
	}
	return cmd
}

func loadBattery(ctx context.Context, path string) (*app.Battery, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := internal.NewLoggerFor(cfg.Log.Level, cfg.Log.Format)

	sample, err := samplefile.NewReader(path).ReadSample(ctx)
	if err != nil {
		return nil, err
	}

	battery := app.NewBattery(cfg.Stats.TestConfig(), logger)
	battery.SetSample(sample)
	return battery, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
