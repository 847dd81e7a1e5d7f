package research

import (
	"fmt"
	"log/slog"

	"finch/internal/agent"
	"finch/internal/app"
	"finch/internal/config"
	"finch/internal/trace"

	"github.com/spf13/cobra"
)

var (
	pdf     bool
	verbose bool
)

var Cmd = &cobra.Command{
	Use:   "research <symbol>",
	Short: "Run the research pipeline for a stock symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		ctx := cmd.Context()
		if cfg.Trace.Enabled {
			shutdown, err := trace.Init(ctx, trace.Config{
				Endpoint: cfg.Trace.Endpoint,
				URLPath:  cfg.Trace.URLPath,
				APIKey:   cfg.Trace.APIKey,
			})
			if err != nil {
				return fmt.Errorf("initializing tracing: %w", err)
			}
			defer shutdown(ctx)
		}

		a, err := app.New(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Pipeline.Run(ctx, args[0], pdf, printEvent)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(res.Report)
		fmt.Printf("\nrecommendation: %s (%s)\n", res.Recommendation.Recommendation, res.Recommendation.Ticker)
		fmt.Printf("report: %s\n", res.ReportPath)
		if res.PDFPath != "" {
			fmt.Printf("pdf: %s\n", res.PDFPath)
		}
		return nil
	},
}

func init() {
	Cmd.Flags().BoolVar(&pdf, "pdf", false, "also store the report as a PDF")
	Cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "stream tokens while agents run")
}

func printEvent(ev agent.Event) {
	switch ev.Type {
	case agent.EventToken:
		if verbose {
			fmt.Print(ev.Data)
		}
	case agent.EventToolCall:
		slog.Debug("tool call", "agent", ev.Agent, "data", ev.Data)
	case agent.EventDone:
		slog.Info("agent done", "agent", ev.Agent)
	case agent.EventError:
		slog.Error("agent error", "agent", ev.Agent, "error", ev.Data)
	}
}
