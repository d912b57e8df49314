package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inferloop/perfintel/internal/intelligence"
)

type ReportOptions struct {
	ServerURL    string
	View         string
	Metric       string
	Severity     string
	Hours        int
	OutputFormat string
}

// NewReportCmd queries a running intelligence server and renders one of
// its result views.
func NewReportCmd() *cobra.Command {
	opts := &ReportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report results from a running intelligence server",
		Long: `Query a running performance intelligence server and render its
summary, anomalies, predictions or patterns.`,
		Example: `  # Overall summary
  perfintel report

  # Critical anomalies from the last 24 hours
  perfintel report --view anomalies --severity critical --hours 24

  # Predictions for one metric, as JSON
  perfintel report --view predictions --metric api_latency --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.ServerURL == "" {
				opts.ServerURL = viper.GetString("server")
			}
			if opts.ServerURL == "" {
				opts.ServerURL = "http://localhost:8080"
			}
			return runReport(opts)
		},
	}

	// Add flags
	cmd.Flags().StringVarP(&opts.ServerURL, "server", "s", "", "Server base URL (default http://localhost:8080)")
	cmd.Flags().StringVar(&opts.View, "view", "summary", "View to report (summary, anomalies, predictions, patterns)")
	cmd.Flags().StringVarP(&opts.Metric, "metric", "m", "", "Filter by metric name")
	cmd.Flags().StringVar(&opts.Severity, "severity", "", "Filter anomalies by severity (low, medium, high, critical)")
	cmd.Flags().IntVar(&opts.Hours, "hours", 0, "Limit anomalies to the last N hours")
	cmd.Flags().StringVar(&opts.OutputFormat, "format", "text", "Output format (text, json)")

	return cmd
}

func runReport(opts *ReportOptions) error {
	switch opts.View {
	case "summary":
		return reportSummary(opts)
	case "anomalies":
		return reportAnomalies(opts)
	case "predictions":
		return reportPredictions(opts)
	case "patterns":
		return reportPatterns(opts)
	default:
		return fmt.Errorf("unknown view %q", opts.View)
	}
}

func fetch(opts *ReportOptions, path string, query url.Values, out interface{}) error {
	endpoint := opts.ServerURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(endpoint)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s: %s", resp.Status, string(body))
	}

	return json.Unmarshal(body, out)
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func reportSummary(opts *ReportOptions) error {
	var summary intelligence.Summary
	if err := fetch(opts, "/api/v1/summary", nil, &summary); err != nil {
		return err
	}

	if opts.OutputFormat == "json" {
		return printJSON(summary)
	}

	fmt.Printf("Health: %s (score %.0f)\n", summary.Health.Status, summary.Health.Score)
	for _, issue := range summary.Health.Issues {
		fmt.Printf("  - %s\n", issue)
	}
	fmt.Printf("\nAnomalies:   %d total, %d critical, %d in the last hour\n",
		summary.Anomalies.Total, summary.Anomalies.Critical, summary.Anomalies.RecentCount)
	fmt.Printf("Predictions: %d total, %d accurate, avg confidence %.2f\n",
		summary.Predictions.Total, summary.Predictions.Accurate, summary.Predictions.AvgConfidence)
	fmt.Printf("Patterns:    %d total, %d seasonal, %d cyclical\n",
		summary.Patterns.Total, summary.Patterns.Seasonal, summary.Patterns.Cyclical)
	return nil
}

func reportAnomalies(opts *ReportOptions) error {
	query := url.Values{}
	if opts.Metric != "" {
		query.Set("metric", opts.Metric)
	}
	if opts.Severity != "" {
		query.Set("severity", opts.Severity)
	}
	if opts.Hours > 0 {
		query.Set("hours", fmt.Sprintf("%d", opts.Hours))
	}

	var payload struct {
		Anomalies []intelligence.Anomaly `json:"anomalies"`
		Count     int                    `json:"count"`
	}
	if err := fetch(opts, "/api/v1/anomalies", query, &payload); err != nil {
		return err
	}

	if opts.OutputFormat == "json" {
		return printJSON(payload)
	}

	fmt.Printf("Anomalies (%d):\n", payload.Count)
	for _, a := range payload.Anomalies {
		fmt.Printf("  %s  %-8s %-8s %-24s value=%.2f expected=%.2f confidence=%.2f\n",
			a.Timestamp.Format(time.RFC3339), a.Severity, a.Type, a.Metric, a.Value, a.ExpectedValue, a.Confidence)
		for _, rec := range a.Recommendations {
			fmt.Printf("      %s\n", rec)
		}
	}
	return nil
}

func reportPredictions(opts *ReportOptions) error {
	var predictions []intelligence.Prediction

	if opts.Metric != "" {
		var prediction intelligence.Prediction
		if err := fetch(opts, "/api/v1/predictions/"+url.PathEscape(opts.Metric), nil, &prediction); err != nil {
			return err
		}
		predictions = []intelligence.Prediction{prediction}
	} else {
		var payload struct {
			Predictions []intelligence.Prediction `json:"predictions"`
		}
		if err := fetch(opts, "/api/v1/predictions", nil, &payload); err != nil {
			return err
		}
		predictions = payload.Predictions
	}

	if opts.OutputFormat == "json" {
		return printJSON(predictions)
	}

	fmt.Printf("Predictions (%d):\n", len(predictions))
	for _, p := range predictions {
		fmt.Printf("  %-24s trend=%-9s accuracy=%.1f%%\n", p.Metric, p.Trend, p.Accuracy)
		for _, point := range p.Predictions {
			fmt.Printf("    %s  %.2f [%.2f, %.2f] confidence=%.2f\n",
				point.Timestamp.Format(time.RFC3339), point.Value, point.LowerBound, point.UpperBound, point.Confidence)
		}
		for _, risk := range p.RiskFactors {
			fmt.Printf("    risk: %s\n", risk)
		}
	}
	return nil
}

func reportPatterns(opts *ReportOptions) error {
	query := url.Values{}
	if opts.Metric != "" {
		query.Set("metric", opts.Metric)
	}

	var payload struct {
		Patterns []intelligence.Pattern `json:"patterns"`
		Count    int                    `json:"count"`
	}
	if err := fetch(opts, "/api/v1/patterns", query, &payload); err != nil {
		return err
	}

	if opts.OutputFormat == "json" {
		return printJSON(payload)
	}

	fmt.Printf("Patterns (%d):\n", payload.Count)
	for _, p := range payload.Patterns {
		fmt.Printf("  %-24s %-9s %-8s strength=%.2f significance=%.2f\n",
			p.Name, p.Type, p.Periodicity, p.Strength, p.Significance)
		fmt.Printf("      %s\n", p.Description)
	}
	return nil
}
