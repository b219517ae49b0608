package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/radutopala/knowledge-mcp/internal/tools"
)

// DefaultHeartbeatInterval is the streaming-channel heartbeat period.
const DefaultHeartbeatInterval = 30 * time.Second

// Server is the protocol front end: a JSON-RPC endpoint, a streaming
// notification channel, and a health check, all over one shared tool
// registry.
type Server struct {
	registry          *tools.Registry
	logger            *slog.Logger
	heartbeatInterval time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithHeartbeatInterval overrides the streaming heartbeat period.
func WithHeartbeatInterval(d time.Duration) Option {
	return func(s *Server) {
		s.heartbeatInterval = d
	}
}

// New creates a front end over registry.
func New(registry *tools.Registry, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		registry:          registry,
		logger:            logger,
		heartbeatInterval: DefaultHeartbeatInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler serving /rpc, /sse and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/rpc", s.handleRPC)
	mux.HandleFunc("/sse", s.handleSSE)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("Malformed RPC body", "error", err)
		writeJSON(w, http.StatusOK, rpcResponse{
			JSONRPC: protocolVersion,
			Error:   &rpcError{Code: codeParseError, Message: "Parse error"},
			ID:      nullID,
		})
		return
	}

	id := req.ID
	if len(id) == 0 {
		id = nullID
	}

	result, rpcErr := s.dispatch(r, &req)
	if rpcErr != nil {
		writeJSON(w, http.StatusOK, rpcResponse{JSONRPC: protocolVersion, Error: rpcErr, ID: id})
		return
	}
	writeJSON(w, http.StatusOK, rpcResponse{JSONRPC: protocolVersion, Result: result, ID: id})
}

// dispatch routes a decoded request to its method. Tool-tier failures come
// back as result values; only protocol-tier faults produce an rpcError.
func (s *Server) dispatch(r *http.Request, req *rpcRequest) (any, *rpcError) {
	s.logger.Info("RPC request", "method", req.Method)

	switch req.Method {
	case "initialize":
		return capabilities(), nil

	case "tools/list":
		return s.listTools(), nil

	case "tools/call":
		var params struct {
			Name      string         `json:"name"`
			Arguments map[string]any `json:"arguments"`
		}
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &params); err != nil {
				return tools.Failure(tools.ErrTypeValidation, "params must be an object with name and arguments"), nil
			}
		}
		if params.Name == "" {
			return tools.MissingParameter("name"), nil
		}
		if params.Arguments == nil {
			return tools.MissingParameter("arguments"), nil
		}
		return s.registry.Execute(r.Context(), params.Name, params.Arguments), nil

	default:
		return nil, &rpcError{Code: codeMethodNotFound, Message: fmt.Sprintf("Method not found: %s", req.Method)}
	}
}

// listTools returns the full descriptor catalog. It has no side effects and
// is safe to call repeatedly for discovery.
func (s *Server) listTools() map[string]any {
	catalog := make([]map[string]any, 0, s.registry.Len())
	for _, tool := range s.registry.List() {
		catalog = append(catalog, map[string]any{
			"name":        tool.Name,
			"description": tool.Description,
			"inputSchema": tool.InputSchema,
		})
	}
	return map[string]any{"tools": catalog}
}

func capabilities() map[string]any {
	return map[string]any{
		"protocolVersion": "1.0.0",
		"capabilities": map[string]any{
			"tools": map[string]any{
				"listTools": true,
			},
		},
	}
}

// handleSSE serves the streaming notification channel: one initialized
// notification carrying the initialize capabilities, then a heartbeat per
// interval until the client disconnects.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSONError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	initialized := map[string]any{
		"jsonrpc": protocolVersion,
		"method":  "initialized",
		"params":  capabilities(),
	}
	if err := writeEvent(w, flusher, initialized); err != nil {
		return
	}

	s.logger.Info("Streaming channel opened")
	defer s.logger.Info("Streaming channel closed")

	ticker := time.NewTicker(s.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if err := writeEvent(w, flusher, map[string]any{"ping": true}); err != nil {
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
