package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/neves/zen-council/internal/ai"
	"github.com/neves/zen-council/internal/config"
	"github.com/neves/zen-council/internal/council"
	"github.com/neves/zen-council/internal/gateway"
	"github.com/neves/zen-council/internal/logging"
	"github.com/neves/zen-council/internal/providers"
	"github.com/neves/zen-council/internal/ratelimit"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the deliberation gateway (HTTP + WebSocket)",
		Long: `Start the HTTP gateway.

Endpoints:
  POST /api/deliberate   synchronous deliberation call
  GET  /ws               streaming variant (progress events + final payload)
  GET  /healthz`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

func runServe(cfg *config.Config) error {
	log := logging.NewSimpleLogger(logging.Config{Level: cfg.Logging.Level})

	providerCfg := providers.Config{
		BaseURL:        cfg.Gateway.BaseURL,
		RequestTimeout: time.Duration(cfg.Gateway.TimeoutSeconds) * time.Second,
		MaxInFlight:    cfg.Gateway.MaxInFlight,
		RateLimit: ratelimit.Config{
			RequestsPerSecond: cfg.Gateway.RequestsPerSecond,
			BurstSize:         cfg.Gateway.Burst,
		},
	}

	newProvider := func(apiKey string) (ai.Provider, error) {
		c := providerCfg
		c.APIKey = apiKey
		return providers.NewGatewayProvider(c)
	}

	engineCfg := council.EngineConfig{
		Logger:   log,
		Deadline: cfg.Deadline(),
	}

	var engine *council.Engine
	if key := cfg.APIKey(); key != "" {
		provider, err := newProvider(key)
		if err != nil {
			return err
		}
		defer provider.Close()
		engine = council.NewEngine(provider, engineCfg)
	} else {
		log.Warn("[Gateway] No %s set; requests must carry api_key", cfg.Gateway.APIKeyEnv)
	}

	server := gateway.NewServer(engine, cfg.Options(), newProvider, engineCfg, log)

	log.Info("[Gateway] Listening on %s", cfg.Server.Addr)
	return http.ListenAndServe(cfg.Server.Addr, server.Handler())
}
