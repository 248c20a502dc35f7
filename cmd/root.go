package cmd

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "zen-council",
	Short: "Multi-model deliberation: parallel answers, peer review, ranked synthesis",
	Long: `Zen Council - multi-model LLM deliberation.

Several models answer your task independently, critique one another through
pairwise comparisons, and three rank aggregations (Borda, Bradley-Terry, ELO)
score the critiques before a chairman model writes the final synthesis.

Quick start:
  zen-council deliberate "Should we shard this database?"
  zen-council serve                 # HTTP + WebSocket gateway

Configuration: ~/.zen/zen-council/config.yaml (roles, gateway, defaults)`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.AddCommand(newDeliberateCmd())
	rootCmd.AddCommand(newServeCmd())
}
