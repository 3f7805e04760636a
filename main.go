package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/mrab54/sleeper-db/internal/api"
	"github.com/mrab54/sleeper-db/internal/config"
	"github.com/mrab54/sleeper-db/internal/errors"
	"github.com/mrab54/sleeper-db/internal/report"
	"github.com/mrab54/sleeper-db/internal/stats"
	"github.com/mrab54/sleeper-db/internal/survey"
)

// CLI defines the command-line interface
var CLI struct {
	League   string `help:"Sleeper league ID to survey." short:"l"`
	Config   string `help:"Path to YAML config file." short:"c" type:"path"`
	Output   string `help:"Directory for the report and JSON samples." short:"o" type:"path"`
	BaseURL  string `help:"Sleeper API base URL." name:"base-url"`
	MaxDepth int    `help:"Structure probe depth limit." default:"-1"`
	Weeks    []int  `help:"Matchup weeks to sample." short:"w"`
	TxWeeks  []int  `help:"Transaction weeks to sample." name:"transaction-weeks"`
	Quiet    bool   `help:"Suppress per-call progress output." short:"q"`
	Version  bool   `help:"Show version information." short:"v"`
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("sleeper-survey"),
		kong.Description("Surveys the Sleeper fantasy API and documents response timing and shape."),
		kong.UsageOnError(),
	)

	_, err := parser.Parse(os.Args[1:])
	if err != nil {
		// Usage is already shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("sleeper-survey version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err == nil {
		err = run(cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: config file (explicit
// or discovered) first, then flag overrides.
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}

	var cfg *config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.NewConfig()
	}

	if CLI.League != "" {
		cfg.LeagueID = CLI.League
	}
	if CLI.Output != "" {
		cfg.OutputDir = CLI.Output
	}
	if CLI.BaseURL != "" {
		cfg.BaseURL = CLI.BaseURL
	}
	if CLI.MaxDepth >= 0 {
		cfg.MaxDepth = CLI.MaxDepth
	}
	if len(CLI.Weeks) > 0 {
		cfg.MatchupWeeks = CLI.Weeks
	}
	if len(CLI.TxWeeks) > 0 {
		cfg.TransactionWeeks = CLI.TxWeeks
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.LeagueID == "" {
		return nil, errors.NewInputError("league id is required", errors.ErrNoLeague)
	}
	return cfg, nil
}

// run executes the survey and writes the report artifacts
func run(cfg *config.Config) error {
	ctx := context.Background()

	progress := io.Writer(os.Stdout)
	if CLI.Quiet {
		progress = io.Discard
	}

	line := strings.Repeat("=", 80)
	fmt.Fprintf(progress, "%s\nSLEEPER API SURVEY\n%s\n", line, line)
	fmt.Fprintf(progress, "League ID: %s\n", cfg.LeagueID)
	fmt.Fprintf(progress, "Start Time: %s\n", time.Now().Format(time.RFC3339))

	client := api.NewClient(api.Options{
		BaseURL: cfg.BaseURL,
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	})
	runner := survey.NewRunner(client, survey.Options{
		LeagueID:         cfg.LeagueID,
		MatchupWeeks:     cfg.MatchupWeeks,
		TransactionWeeks: cfg.TransactionWeeks,
		MaxDepth:         cfg.MaxDepth,
		SampleSize:       cfg.SampleSize,
		FallbackSport:    cfg.FallbackSport,
		FallbackSeason:   cfg.FallbackSeason,
		Progress:         progress,
	})

	results, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	summary := stats.Analyze(results.Calls)
	printCallSummary(progress, results.Calls, summary)

	writer, err := report.NewWriter(cfg.OutputDir)
	if err != nil {
		return err
	}

	var sampleFiles []string
	for _, sample := range results.Samples {
		name := report.SampleFileName(sample.Name)
		if err := writer.WriteJSON(name, sample.Data); err != nil {
			return err
		}
		sampleFiles = append(sampleFiles, name)
	}

	markdown, err := report.Markdown(report.Document{
		LeagueID:  cfg.LeagueID,
		Generated: time.Now(),
		RateLimit: summary,
		Results:   results.Endpoints,
		Samples:   sampleFiles,
	})
	if err != nil {
		return err
	}
	if err := writer.WriteText(report.ReportFile, markdown); err != nil {
		return err
	}
	if err := writer.WriteJSON(report.RawFile, report.Raw(results, summary)); err != nil {
		return err
	}

	fmt.Fprintf(progress, "\n%s\nSURVEY COMPLETE\n%s\n", line, line)
	fmt.Fprintf(progress, "End Time: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(progress, "\nDocumentation written to: %s\n", writer.Path(report.ReportFile))
	fmt.Fprintf(progress, "Raw data saved to: %s\n", writer.Path(report.RawFile))
	fmt.Fprintf(progress, "Sample responses saved to: %s\n", writer.Path("sample_*.json"))
	return nil
}

// printCallSummary renders the call log table and the aggregate figures.
func printCallSummary(w io.Writer, calls []api.CallRecord, summary stats.Summary) {
	line := strings.Repeat("=", 80)
	fmt.Fprintf(w, "\n%s\nRATE LIMIT ANALYSIS\n%s\n", line, line)

	if len(calls) == 0 {
		fmt.Fprintln(w, "No API calls recorded")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Endpoint", "Status", "Time", "Size"})
	for _, call := range calls {
		status := strconv.Itoa(call.StatusCode)
		if call.Error != "" {
			status = "ERR"
		}
		t.AppendRow(table.Row{call.Endpoint, status, fmt.Sprintf("%.3fs", call.Elapsed), call.ResponseSize})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Fprintf(w, "Total API Calls: %d\n", summary.TotalCalls)
	fmt.Fprintf(w, "Successful: %d\n", summary.SuccessfulCalls)
	fmt.Fprintf(w, "Failed: %d\n", summary.FailedCalls)
	fmt.Fprintf(w, "Rate Limit Errors (429): %d\n", summary.RateLimitErrors)
	fmt.Fprintf(w, "Avg Response Time: %.3fs\n", summary.AvgResponseTime)
	fmt.Fprintf(w, "Max Response Time: %.3fs\n", summary.MaxResponseTime)
	fmt.Fprintf(w, "Min Response Time: %.3fs\n", summary.MinResponseTime)
}
