package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/neves/zen-council/internal/config"
	"github.com/neves/zen-council/internal/council"
	"github.com/neves/zen-council/internal/logging"
	"github.com/neves/zen-council/internal/providers"
	"github.com/neves/zen-council/internal/rank"
	"github.com/neves/zen-council/internal/ratelimit"
)

func newDeliberateCmd() *cobra.Command {
	var (
		models     []string
		chairman   string
		outputMode string
		noReview   bool
		noAnon     bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "deliberate [task]",
		Short: "Run one deliberation from the command line",
		Long: `Run a full deliberation: parallel answers, pairwise peer review, three
rank aggregations, and a chairman synthesis.

Roles come from the config file; --model overrides them with ad-hoc seats.

Examples:
  zen-council deliberate "Design a rate limiter for a public API"
  zen-council deliberate --model gpt-4o --model claude-sonnet "Compare B-trees and LSM trees"
  cat question.md | zen-council deliberate`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task := ""
			if len(args) > 0 {
				task = args[0]
			} else {
				stat, _ := os.Stdin.Stat()
				if (stat.Mode() & os.ModeCharDevice) == 0 {
					data, err := os.ReadFile("/dev/stdin")
					if err == nil {
						task = strings.TrimSpace(string(data))
					}
				}
			}
			if task == "" {
				return fmt.Errorf("provide a task as an argument or via stdin")
			}

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return runDeliberate(cfg, task, models, chairman, outputMode, noReview, noAnon, verbose)
		},
	}

	cmd.Flags().StringArrayVar(&models, "model", nil, "Ad-hoc role model id (repeatable, overrides configured roles)")
	cmd.Flags().StringVar(&chairman, "chairman", "", "Chairman model for the synthesis")
	cmd.Flags().StringVar(&outputMode, "output", "", "Output mode: perspectives, synthesis, both")
	cmd.Flags().BoolVar(&noReview, "no-review", false, "Skip peer review and aggregation")
	cmd.Flags().BoolVar(&noAnon, "no-anonymize", false, "Show real role names to judges")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Print every perspective in full")

	return cmd
}

func runDeliberate(cfg *config.Config, task string, models []string, chairman, outputMode string, noReview, noAnon, verbose bool) error {
	apiKey := cfg.APIKey()
	if apiKey == "" {
		return fmt.Errorf("no API key: set %s", cfg.Gateway.APIKeyEnv)
	}

	log := logging.NewSimpleLogger(logging.Config{Level: cfg.Logging.Level})

	provider, err := providers.NewGatewayProvider(providers.Config{
		APIKey:         apiKey,
		BaseURL:        cfg.Gateway.BaseURL,
		RequestTimeout: time.Duration(cfg.Gateway.TimeoutSeconds) * time.Second,
		MaxInFlight:    cfg.Gateway.MaxInFlight,
		RateLimit: ratelimit.Config{
			RequestsPerSecond: cfg.Gateway.RequestsPerSecond,
			BurstSize:         cfg.Gateway.Burst,
		},
	})
	if err != nil {
		return err
	}
	defer provider.Close()

	roles := cfg.CouncilRoles()
	if len(models) > 0 {
		roles = nil
		for i, m := range models {
			roles = append(roles, council.Role{
				Name:   fmt.Sprintf("R%d", i+1),
				Model:  m,
				Weight: 1,
			})
		}
	}

	opts := cfg.Options()
	if chairman != "" {
		opts.ChairmanModel = chairman
	}
	if outputMode != "" {
		opts.OutputMode = outputMode
	}
	if noReview {
		opts.Review = false
	}
	if noAnon {
		opts.Anonymize = false
	}

	engine := council.NewEngine(provider, council.EngineConfig{
		Logger:   log,
		Deadline: cfg.Deadline(),
	})

	fmt.Printf("Deliberating with %d roles...\n\n", len(roles))

	out, err := engine.Deliberate(context.Background(), council.Request{
		Task:    task,
		Roles:   roles,
		Options: opts,
		Events: func(ev council.Event) {
			switch ev.Type {
			case council.EventGenerationCompleted:
				fmt.Printf("  answer received: %s\n", ev.Role)
			case council.EventReviewProgress:
				fmt.Printf("\r  peer review %d/%d", ev.Done, ev.Total)
				if ev.Done == ev.Total {
					fmt.Println()
				}
			}
		},
	})
	if err != nil {
		return err
	}

	printOutput(out, verbose)
	return nil
}

func printOutput(out *council.CouncilOutput, verbose bool) {
	fmt.Println()
	for _, a := range out.Results {
		status := "ok"
		if !a.OK {
			status = "FAILED: " + a.Error
		}
		fmt.Printf("%-12s %-28s %s\n", a.Role, a.Model, status)
		if verbose && a.OK {
			fmt.Println(indent(a.Text))
			fmt.Println()
		}
	}

	if len(out.AggregationScores) > 0 {
		fmt.Println("\nScores:")
		methods := make([]string, 0, len(out.AggregationScores))
		for m := range out.AggregationScores {
			methods = append(methods, m)
		}
		sort.Strings(methods)
		for _, m := range methods {
			fmt.Printf("  %s:\n", m)
			printScores(out.AggregationScores[m])
		}
	}

	if out.Synthesis != "" {
		fmt.Println("\nSynthesis:")
		fmt.Println(indent(out.Synthesis))
	}

	fmt.Printf("\n%d verdicts (%d unparseable, %d failed calls) in %v\n",
		out.Meta.VerdictCount, out.Meta.Unparseable, out.Meta.FailedCalls,
		(out.Meta.GenerationTime + out.Meta.ReviewTime + out.Meta.SynthesisTime).Round(time.Millisecond))
}

func printScores(s rank.Scores) {
	names := make([]string, 0, len(s.Scores))
	for name := range s.Scores {
		names = append(names, name)
	}
	sort.Slice(names, func(a, b int) bool { return s.Scores[names[a]] > s.Scores[names[b]] })
	for _, name := range names {
		line := fmt.Sprintf("    %-12s %8.2f", name, s.Scores[name])
		if ci, ok := s.ConfidenceIntervals[name]; ok {
			line += fmt.Sprintf("  [%.0f, %.0f]", ci.Low, ci.High)
		}
		fmt.Println(line)
	}
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
