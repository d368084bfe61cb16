package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/rewind"
	"github.com/aretw0/rewind/internal/logging"
	"github.com/aretw0/rewind/internal/presentation/graph"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/fsm"
	"github.com/aretw0/rewind/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DefinitionURI is the resource holding the loaded definition as JSON.
const DefinitionURI = "rewind://definition"

// SessionView aligns with the HTTP Session schema so both adapters answer alike.
type SessionView struct {
	ID              string   `json:"id"`
	Current         string   `json:"current"`
	History         []string `json:"history"`
	Cursor          int      `json:"cursor"`
	CanUndo         bool     `json:"can_undo"`
	CanRedo         bool     `json:"can_redo"`
	PermittedEvents []string `json:"permitted_events"`
	// Moved is set by undo and redo only.
	Moved *bool `json:"moved,omitempty"`
}

// Server exposes a session.Manager as MCP tools.
type Server struct {
	manager   *session.Manager
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger used for tool calls and the SSE listener.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(manager *session.Manager, opts ...Option) *Server {
	s := &Server{
		manager:   manager,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("rewind-mcp", strings.TrimSpace(rewind.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func sessionArg() mcp.ToolOption {
	return mcp.WithString("session_id", mcp.Required(), mcp.Description("ID of the session"))
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("start_session",
		mcp.WithDescription("Start a session at the initial state. An existing session is returned untouched."),
		sessionArg(),
	), s.handleStartSession)

	s.mcpServer.AddTool(mcp.NewTool("list_sessions",
		mcp.WithDescription("List the IDs of all stored sessions."),
	), s.handleListSessions)

	s.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Describe a session: current state, history, cursor and permitted events."),
		sessionArg(),
	), s.handleGetSession)

	s.mcpServer.AddTool(mcp.NewTool("trigger",
		mcp.WithDescription("Fire an event. Follows the transition table and discards any redo branch."),
		sessionArg(),
		mcp.WithString("event", mcp.Required(), mcp.Description("Event name")),
	), s.handleTrigger)

	s.mcpServer.AddTool(mcp.NewTool("change_state",
		mcp.WithDescription("Jump to any defined state without consulting the transition table."),
		sessionArg(),
		mcp.WithString("state", mcp.Required(), mcp.Description("Target state")),
	), s.handleChangeState)

	s.mcpServer.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Step back one entry in the session history."),
		sessionArg(),
	), s.handleUndo)

	s.mcpServer.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Step forward one entry in the session history."),
		sessionArg(),
	), s.handleRedo)

	s.mcpServer.AddTool(mcp.NewTool("reset",
		mcp.WithDescription("Return the session to the initial state and drop its history."),
		sessionArg(),
	), s.handleReset)

	s.mcpServer.AddTool(mcp.NewTool("clear_history",
		mcp.WithDescription("Drop the session history but keep the current state."),
		sessionArg(),
	), s.handleClearHistory)

	s.mcpServer.AddTool(mcp.NewTool("get_states",
		mcp.WithDescription("List the states of the definition. With an event, only states that handle it."),
		mcp.WithString("event", mcp.Description("Optional event filter")),
	), s.handleGetStates)

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Render the definition as a Mermaid diagram. With a session, its path is highlighted."),
		mcp.WithString("session_id", mcp.Description("Optional session to overlay")),
	), s.handleGetGraph)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(DefinitionURI, "State machine definition",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(s.manager.Definition())
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      DefinitionURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}

func (s *Server) handleStartSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := s.manager.Start(ctx, id); err != nil {
		return s.toolError("start_session", err)
	}
	return s.describe(ctx, id, nil)
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := s.manager.List(ctx)
	if err != nil {
		return s.toolError("list_sessions", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return jsonResult(map[string][]string{"sessions": ids})
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.describe(ctx, id, nil)
}

func (s *Server) handleTrigger(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	event, err := request.RequireString("event")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := s.manager.Trigger(ctx, id, event); err != nil {
		return s.toolError("trigger", err)
	}
	return s.describe(ctx, id, nil)
}

func (s *Server) handleChangeState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	state, err := request.RequireString("state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := s.manager.ChangeState(ctx, id, state); err != nil {
		return s.toolError("change_state", err)
	}
	return s.describe(ctx, id, nil)
}

func (s *Server) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.step(ctx, request, "undo", s.manager.Undo)
}

func (s *Server) handleRedo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.step(ctx, request, "redo", s.manager.Redo)
}

func (s *Server) step(ctx context.Context, request mcp.CallToolRequest, tool string,
	move func(context.Context, string) (bool, domain.Snapshot, error)) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	moved, _, err := move(ctx, id)
	if err != nil {
		return s.toolError(tool, err)
	}
	return s.describe(ctx, id, &moved)
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := s.manager.Reset(ctx, id); err != nil {
		return s.toolError("reset", err)
	}
	return s.describe(ctx, id, nil)
}

func (s *Server) handleClearHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := s.manager.ClearHistory(ctx, id); err != nil {
		return s.toolError("clear_history", err)
	}
	return s.describe(ctx, id, nil)
}

func (s *Server) handleGetStates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	machine := fsm.New(s.manager.Definition())

	states := machine.States()
	if event := request.GetString("event", ""); event != "" {
		states = machine.StatesWithEvent(event)
	}
	return jsonResult(map[string][]string{"states": states})
}

func (s *Server) handleGetGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var overlay *graph.Overlay
	if id := request.GetString("session_id", ""); id != "" {
		snap, err := s.manager.Load(ctx, id)
		if err != nil {
			return s.toolError("get_graph", err)
		}
		overlay = graph.OverlayFromSnapshot(snap)
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(s.manager.Definition(), overlay)), nil
}

func (s *Server) describe(ctx context.Context, id string, moved *bool) (*mcp.CallToolResult, error) {
	machine, err := s.manager.Machine(ctx, id)
	if err != nil {
		return s.toolError("get_session", err)
	}
	snap := machine.Snapshot()
	return jsonResult(SessionView{
		ID:              id,
		Current:         snap.Current,
		History:         snap.History,
		Cursor:          snap.Cursor,
		CanUndo:         machine.CanUndo(),
		CanRedo:         machine.CanRedo(),
		PermittedEvents: machine.PermittedEvents(),
		Moved:           moved,
	})
}

// toolError turns rejections into tool-level errors the agent can read.
// Only failures of the store surface as protocol errors.
func (s *Server) toolError(tool string, err error) (*mcp.CallToolResult, error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrInvalidTransition):
		s.logger.Debug("tool call rejected", "tool", tool, "err", err)
		return mcp.NewToolResultError(err.Error()), nil
	default:
		s.logger.Error("tool call failed", "tool", tool, "err", err)
		return nil, fmt.Errorf("%s: %w", tool, err)
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
