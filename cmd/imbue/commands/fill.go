package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"imbuesvc/internal/exporter"
	"imbuesvc/internal/imbue"
	"imbuesvc/internal/infrastructure"
	"imbuesvc/internal/services"
)

type fillOptions struct {
	input    string
	output   string
	format   string
	strategy string
	merge    bool
}

func newFillCmd(opts *options) *cobra.Command {
	fo := &fillOptions{}

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill the gaps of a dataset file",
		Long: `Read a dataset from a CSV, XLSX or JSON file, fill its gaps and write the
result. Without --merge only the synthesized points are written.

Examples:
  imbue fill --input prices.csv --strategy average
  imbue fill --input prices.xlsx --strategy last_known --merge --output filled.xlsx
  imbue fill --input series.json --format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFill(cmd, opts, fo)
		},
	}

	cmd.Flags().StringVarP(&fo.input, "input", "i", "", "dataset file (.csv, .xlsx or .json)")
	cmd.Flags().StringVarP(&fo.output, "output", "o", "", "output file; format follows the extension (default: stdout)")
	cmd.Flags().StringVarP(&fo.format, "format", "f", string(exporter.FormatJSON), "stdout format: json, csv or xlsx")
	cmd.Flags().StringVarP(&fo.strategy, "strategy", "s", "", "average, zeroed or last_known (default: imbue.default_strategy)")
	cmd.Flags().BoolVar(&fo.merge, "merge", false, "include the original points in the output")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runFill(cmd *cobra.Command, opts *options, fo *fillOptions) error {
	ctx := infrastructure.EnsureTraceID(cmd.Context())
	logger := opts.cliLogger(cmd)

	strategy := opts.cfg.Imbue.Strategy()
	if fo.strategy != "" {
		parsed, err := imbue.ParseStrategy(fo.strategy)
		if err != nil {
			return err
		}
		strategy = parsed
	}

	stdoutFormat := exporter.FormatJSON
	if fo.output == "" {
		parsed, err := exporter.ParseFormat(fo.format)
		if err != nil {
			return err
		}
		stdoutFormat = parsed
	}

	points, err := exporter.ReadFile(fo.input)
	if err != nil {
		return err
	}

	service := services.NewImbueService(opts.cfg.Imbue, nil, nil, logger)
	result, err := service.Fill(ctx, points, strategy)
	if err != nil {
		return fmt.Errorf("fill %s: %w", fo.input, err)
	}

	rows := exporter.BuildRows(points, result.Synthesized, fo.merge)

	if fo.output != "" {
		if err := exporter.WriteFile(fo.output, rows); err != nil {
			return err
		}
	} else if err := exporter.Write(cmd.OutOrStdout(), stdoutFormat, rows); err != nil {
		return err
	}

	logger.InfoContext(ctx, "dataset filled",
		slog.String("input", fo.input),
		slog.String("output", fo.output),
		slog.String("strategy", strategy.String()),
		slog.Int64("imbue_count", result.ImbueCount),
		slog.Int64("total_count", result.TotalCount),
		slog.Bool("merge", fo.merge))
	return nil
}
