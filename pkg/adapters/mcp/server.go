package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/aretw0/digits"
	"github.com/aretw0/digits/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// Engine defines the interface required by the MCP server to run queries.
type Engine interface {
	Solve(ctx context.Context, target int, operands []int, all bool) (*domain.Result, error)
	Targets(ctx context.Context, operands []int) (*domain.Result, error)
}

// SolveArgs are the decoded arguments of the solve tool.
type SolveArgs struct {
	Target   int   `mapstructure:"target"`
	Operands []int `mapstructure:"operands"`
	All      bool  `mapstructure:"all"`
}

// TargetsArgs are the decoded arguments of the targets tool.
type TargetsArgs struct {
	Operands []int `mapstructure:"operands"`
}

// Server wraps the digits Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("digits-mcp", strings.TrimSpace(digits.Version)),
	}
	s.registerTools()
	return s
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

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, stopping MCP server")
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

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	solveTool := mcp.NewTool("solve",
		mcp.WithDescription("Find the shortest sequences of + - * / operations that combine the operands into the target. Division must be exact and zero results are never produced."),
		mcp.WithNumber("target", mcp.Required(), mcp.Description("The integer value to reach")),
		mcp.WithArray("operands", mcp.Required(),
			mcp.Description("Integer operands, each usable at most once"),
			mcp.Items(map[string]any{"type": "integer"}),
		),
		mcp.WithBoolean("all", mcp.Description("Return every solution instead of the first (shortest) one")),
		mcp.WithOutputSchema[domain.Result](),
	)
	s.mcpServer.AddTool(solveTool, mcp.NewStructuredToolHandler(s.handleSolve))

	targetsTool := mcp.NewTool("targets",
		mcp.WithDescription("List every value reachable from the operands, sorted ascending."),
		mcp.WithArray("operands", mcp.Required(),
			mcp.Description("Integer operands, each usable at most once"),
			mcp.Items(map[string]any{"type": "integer"}),
		),
		mcp.WithOutputSchema[domain.Result](),
	)
	s.mcpServer.AddTool(targetsTool, mcp.NewStructuredToolHandler(s.handleTargets))
}

func (s *Server) handleSolve(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Result, error) {
	if _, ok := args["target"]; !ok {
		return domain.Result{}, errors.New("missing required argument: target")
	}
	var in SolveArgs
	if err := decodeArgs(args, &in); err != nil {
		return domain.Result{}, err
	}

	res, err := s.engine.Solve(ctx, in.Target, in.Operands, in.All)
	if err != nil {
		slog.Warn("MCP Solve: query rejected", "error", err)
		return domain.Result{}, fmt.Errorf("solve failed: %w", err)
	}
	return *res, nil
}

func (s *Server) handleTargets(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Result, error) {
	var in TargetsArgs
	if err := decodeArgs(args, &in); err != nil {
		return domain.Result{}, err
	}

	res, err := s.engine.Targets(ctx, in.Operands)
	if err != nil {
		slog.Warn("MCP Targets: query rejected", "error", err)
		return domain.Result{}, fmt.Errorf("targets failed: %w", err)
	}
	return *res, nil
}

// decodeArgs maps raw tool arguments onto out. JSON numbers arrive as
// float64; any with a fractional part are rejected.
func decodeArgs(args map[string]interface{}, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  integralHook,
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func integralHook(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
	if to != reflect.Int {
		return data, nil
	}
	switch from {
	case reflect.Float32, reflect.Float64:
		f := reflect.ValueOf(data).Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%v is not an integer", data)
		}
		return int(f), nil
	}
	return data, nil
}
