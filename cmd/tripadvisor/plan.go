package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/alfredang/trip-advisor/internal/config"
	"github.com/alfredang/trip-advisor/internal/gateway/app"
	"github.com/alfredang/trip-advisor/internal/llm"
	"github.com/alfredang/trip-advisor/internal/logging"
	"github.com/alfredang/trip-advisor/internal/pipeline"
	"github.com/alfredang/trip-advisor/internal/search"
	"github.com/alfredang/trip-advisor/internal/trip"
)

var planFlags struct {
	destination string
	days        int
	budget      float64
	preferences string
	research    string
	out         string
	raw         bool
}

// cliObserver logs per-agent progress while the sequence runs.
type cliObserver struct {
	logger *slog.Logger
	starts map[trip.Agent]time.Time
}

func (o *cliObserver) AgentStarted(agent trip.Agent) {
	o.starts[agent] = time.Now()
	o.logger.Info("agent started", "agent", string(agent))
}

func (o *cliObserver) AgentFinished(agent trip.Agent, out trip.Output, err error) {
	elapsed := time.Since(o.starts[agent]).Round(time.Millisecond)
	if err != nil {
		o.logger.Error("agent failed", "agent", string(agent), "elapsed", elapsed, "error", err)
		return
	}
	o.logger.Info("agent finished", "agent", string(agent), "elapsed", elapsed, "chars", len(out.Text))
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate one trip plan from the command line",
	RunE: func(cmd *cobra.Command, args []string) error {
		if planFlags.research != "" {
			// The research flag mirrors RESEARCH_MODE so `--research off`
			// works without a search credential.
			os.Setenv("RESEARCH_MODE", planFlags.research)
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		req := trip.Request{
			Destination: planFlags.destination,
			Days:        planFlags.days,
			Budget:      planFlags.budget,
			Preferences: planFlags.preferences,
		}
		if err := req.Validate(); err != nil {
			return err
		}

		ctx := cmd.Context()
		llmClient, err := llm.NewGeminiClient(ctx, llm.GeminiOptions{
			APIKey: cfg.LLM.APIKey,
			Model:  cfg.LLM.Model,
			RPS:    cfg.LLM.RPS,
			Burst:  cfg.LLM.Burst,
		})
		if err != nil {
			return fmt.Errorf("failed to init llm client: %w", err)
		}
		defer llmClient.Close()

		seq := &pipeline.Sequence{LLM: llmClient}
		if cfg.Search.Enabled() {
			seq.Search = search.NewTavily(cfg.Search.APIKey, cfg.Search.Depth)
			seq.Research = app.ResearchPolicyFor(cfg.Search)
		}

		logger := logging.New(slog.LevelInfo)
		obs := &cliObserver{logger: logger, starts: make(map[trip.Agent]time.Time)}

		plan, err := seq.Run(ctx, req, obs)
		if err != nil {
			return err
		}
		markdown := plan.Render()

		if planFlags.out != "" {
			path := planFlags.out
			if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
				return fmt.Errorf("write plan: %w", err)
			}
			logger.Info("plan written", "path", path)
		}

		if planFlags.raw {
			fmt.Fprintln(cmd.OutOrStdout(), markdown)
			return nil
		}
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), markdown)
			return nil
		}
		rendered, err := r.Render(markdown)
		if err != nil {
			rendered = markdown
		}
		fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func init() {
	planCmd.Flags().StringVar(&planFlags.destination, "destination", "Tokyo", "travel destination")
	planCmd.Flags().IntVar(&planFlags.days, "days", 5, "trip duration in days")
	planCmd.Flags().Float64Var(&planFlags.budget, "budget", 2000, "total budget in USD")
	planCmd.Flags().StringVar(&planFlags.preferences, "preferences", "", "special preferences, free text")
	planCmd.Flags().StringVar(&planFlags.research, "research", "", "research mode: auto, always, or off")
	planCmd.Flags().StringVar(&planFlags.out, "out", "", "also write the markdown plan to this file")
	planCmd.Flags().BoolVar(&planFlags.raw, "raw", false, "print raw markdown without terminal styling")
	rootCmd.AddCommand(planCmd)
}
