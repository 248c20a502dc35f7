package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/neves/zen-council/internal/council"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// WSMessage frames everything sent over the streaming variant.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// handleWS runs the streaming variant: the client sends one
// DeliberateRequest, receives progress events in stage order, then the final
// CouncilOutput under type "complete" (or "error").
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("[Gateway] WS upgrade: %v", err)
		return
	}
	defer conn.Close()

	var req DeliberateRequest
	if err := conn.ReadJSON(&req); err != nil {
		_ = writeWS(conn, "error", map[string]string{"error": "bad request: " + err.Error()})
		return
	}

	engine, release, err := s.engineFor(req)
	if err != nil {
		_ = writeWS(conn, "error", map[string]string{"error": err.Error()})
		return
	}
	defer release()

	// Events arrive from worker goroutines; a single writer drains them so
	// the connection never sees concurrent writes.
	events := make(chan council.Event, 64)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for ev := range events {
			if err := writeWS(conn, ev.Type, ev); err != nil {
				return
			}
		}
	}()

	out, err := engine.Deliberate(r.Context(), council.Request{
		Task:    req.Task,
		Roles:   req.Roles,
		Options: req.Options.resolve(s.defaults),
		Events: func(ev council.Event) {
			select {
			case events <- ev:
			default: // Slow consumer; drop rather than stall the pipeline.
			}
		},
	})
	close(events)
	<-writerDone

	if err != nil {
		_ = writeWS(conn, "error", map[string]string{"error": err.Error()})
		return
	}
	_ = writeWS(conn, "complete", out)
}

func writeWS(conn *websocket.Conn, msgType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return conn.WriteJSON(WSMessage{Type: msgType, Data: data})
}
