// Package gateway is the thin HTTP/WebSocket front door for the deliberation
// engine. It owns request envelopes and nothing else; all engine logic stays
// in internal/council.
package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/neves/zen-council/internal/ai"
	"github.com/neves/zen-council/internal/council"
	"github.com/neves/zen-council/internal/logging"
)

// ProviderFactory builds a provider for a request-supplied API key. An empty
// key means the server's configured provider.
type ProviderFactory func(apiKey string) (ai.Provider, error)

// Server serves the synchronous deliberation call and its streaming variant.
type Server struct {
	engine      *council.Engine
	newProvider ProviderFactory
	engineCfg   council.EngineConfig
	defaults    council.Options
	log         logging.Logger
}

// NewServer creates a gateway server around a default engine. newProvider is
// consulted when a request carries its own api_key; nil disables that.
func NewServer(engine *council.Engine, defaults council.Options, newProvider ProviderFactory, engineCfg council.EngineConfig, log logging.Logger) *Server {
	if log == nil {
		log = logging.NewLogger()
	}
	return &Server{
		engine:      engine,
		newProvider: newProvider,
		engineCfg:   engineCfg,
		defaults:    defaults,
		log:         log,
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/deliberate", s.handleDeliberate)
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// DeliberateRequest is the inbound envelope.
type DeliberateRequest struct {
	Task    string         `json:"task"`
	Roles   []council.Role `json:"roles"`
	Options OptionsPayload `json:"options"`
	APIKey  string         `json:"api_key,omitempty"`
}

// OptionsPayload mirrors council.Options with pointer booleans so omitted
// fields fall back to the server defaults.
type OptionsPayload struct {
	OutputMode    string   `json:"output_mode,omitempty"`
	Anonymize     *bool    `json:"anonymize,omitempty"`
	Review        *bool    `json:"review,omitempty"`
	Reviewers     []string `json:"reviewers,omitempty"`
	Aggregation   string   `json:"aggregation,omitempty"`
	ChairmanModel string   `json:"chairman_model,omitempty"`
}

func (p OptionsPayload) resolve(defaults council.Options) council.Options {
	opts := defaults
	if p.OutputMode != "" {
		opts.OutputMode = p.OutputMode
	}
	if p.Anonymize != nil {
		opts.Anonymize = *p.Anonymize
	}
	if p.Review != nil {
		opts.Review = *p.Review
	}
	if len(p.Reviewers) > 0 {
		opts.Reviewers = p.Reviewers
	}
	if p.Aggregation != "" {
		opts.Aggregation = p.Aggregation
	}
	if p.ChairmanModel != "" {
		opts.ChairmanModel = p.ChairmanModel
	}
	return opts
}

// engineFor picks the default engine or builds a one-off for a request key.
func (s *Server) engineFor(req DeliberateRequest) (*council.Engine, func(), error) {
	if req.APIKey == "" || s.newProvider == nil {
		if s.engine == nil {
			return nil, nil, errors.New("no server API key configured; request must carry api_key")
		}
		return s.engine, func() {}, nil
	}
	provider, err := s.newProvider(req.APIKey)
	if err != nil {
		return nil, nil, err
	}
	return council.NewEngine(provider, s.engineCfg), func() { _ = provider.Close() }, nil
}

func (s *Server) handleDeliberate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req DeliberateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	engine, release, err := s.engineFor(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	defer release()

	out, err := engine.Deliberate(r.Context(), council.Request{
		Task:    req.Task,
		Roles:   req.Roles,
		Options: req.Options.resolve(s.defaults),
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, council.ErrInvalidRequest):
			status = http.StatusBadRequest
		case errors.Is(err, council.ErrCancelled):
			status = http.StatusRequestTimeout
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.log.Error("[Gateway] Encode response: %v", err)
	}
}
