package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inferloop/perfintel/internal/intelligence"
)

type ReplayOptions struct {
	InputFile    string
	Interval     time.Duration
	StartTime    string
	OutputFormat string
}

// NewReplayCmd feeds a CSV of telemetry samples into an in-process
// engine and prints what it found.
//
// Expected CSV layout: a header row naming the metrics, optionally with
// a leading "timestamp" column (RFC3339). Each following row is one
// sample batch. Rows without a timestamp column are spaced --interval
// apart from --start.
func NewReplayCmd() *cobra.Command {
	opts := &ReplayOptions{}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a CSV of telemetry samples through the engine",
		Long: `Replay historical telemetry through an in-process intelligence engine
and report the anomalies, predictions and patterns it derives.`,
		Example: `  # Replay samples recorded every 5 minutes
  perfintel replay --input samples.csv

  # Replay hourly samples starting from a fixed time
  perfintel replay --input samples.csv --interval 1h --start 2026-01-01T00:00:00Z

  # Machine-readable output
  perfintel replay --input samples.csv --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts)
		},
	}

	// Add flags
	cmd.Flags().StringVarP(&opts.InputFile, "input", "i", "", "Input CSV file (required)")
	cmd.Flags().DurationVar(&opts.Interval, "interval", 5*time.Minute, "Sample spacing when the CSV has no timestamp column")
	cmd.Flags().StringVar(&opts.StartTime, "start", "", "Timestamp of the first row, RFC3339 (default: now minus rows*interval)")
	cmd.Flags().StringVar(&opts.OutputFormat, "format", "text", "Output format (text, json)")

	cmd.MarkFlagRequired("input")

	return cmd
}

func runReplay(opts *ReplayOptions) error {
	file, err := os.Open(opts.InputFile)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return fmt.Errorf("input needs a header row and at least one sample row")
	}

	header := records[0]
	rows := records[1:]

	hasTimestamps := len(header) > 0 && header[0] == "timestamp"
	metricStart := 0
	if hasTimestamps {
		metricStart = 1
	}
	if len(header) <= metricStart {
		return fmt.Errorf("header row names no metrics")
	}

	start := time.Now().Add(-time.Duration(len(rows)) * opts.Interval)
	if opts.StartTime != "" {
		start, err = time.Parse(time.RFC3339, opts.StartTime)
		if err != nil {
			return fmt.Errorf("parse start time: %w", err)
		}
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	engine := intelligence.New(&intelligence.Config{
		Forecast: intelligence.ForecastConfig{SampleInterval: opts.Interval},
	}, logger)

	for i, row := range rows {
		ts := start.Add(time.Duration(i) * opts.Interval)
		if hasTimestamps {
			ts, err = time.Parse(time.RFC3339, row[0])
			if err != nil {
				return fmt.Errorf("row %d: parse timestamp: %w", i+2, err)
			}
		}

		samples := make(map[string]float64, len(header)-metricStart)
		for col := metricStart; col < len(header) && col < len(row); col++ {
			if row[col] == "" {
				continue
			}
			value, err := strconv.ParseFloat(row[col], 64)
			if err != nil {
				return fmt.Errorf("row %d, column %s: %w", i+2, header[col], err)
			}
			samples[header[col]] = value
		}

		engine.AddMetrics(samples, ts)
	}

	anomalies := engine.GetAnomalies(intelligence.AnomalyFilter{})
	predictions := engine.GetAllPredictions()
	patterns := engine.GetPatterns(intelligence.PatternFilter{})
	summary := engine.GetIntelligenceSummary()

	if opts.OutputFormat == "json" {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"anomalies":   anomalies,
			"predictions": predictions,
			"patterns":    patterns,
			"summary":     summary,
		})
	}

	fmt.Printf("Replayed %d rows across %d metrics\n", len(rows), len(header)-metricStart)
	fmt.Printf("\nHealth: %s (score %.0f)\n", summary.Health.Status, summary.Health.Score)
	for _, issue := range summary.Health.Issues {
		fmt.Printf("  - %s\n", issue)
	}

	fmt.Printf("\nAnomalies (%d):\n", len(anomalies))
	for _, a := range anomalies {
		fmt.Printf("  %s  %-8s %-8s %-24s value=%.2f expected=%.2f\n",
			a.Timestamp.Format(time.RFC3339), a.Severity, a.Type, a.Metric, a.Value, a.ExpectedValue)
	}

	fmt.Printf("\nPredictions (%d):\n", len(predictions))
	for _, p := range predictions {
		fmt.Printf("  %-24s trend=%-9s accuracy=%.1f%%\n", p.Metric, p.Trend, p.Accuracy)
		for _, point := range p.Predictions {
			fmt.Printf("    %s  %.2f [%.2f, %.2f]\n",
				point.Timestamp.Format(time.RFC3339), point.Value, point.LowerBound, point.UpperBound)
		}
	}

	fmt.Printf("\nPatterns (%d):\n", len(patterns))
	for _, p := range patterns {
		fmt.Printf("  %-24s %-9s %-8s strength=%.2f\n", p.Name, p.Type, p.Periodicity, p.Strength)
	}

	return nil
}
