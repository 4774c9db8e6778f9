package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("RepCoach", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("RepCoach training autoregulation server. Query daily readiness, readiness-adjusted training plans, progression state, and logged training data. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetReadiness, Handler: h.getReadiness},
		server.ServerTool{Tool: toolGetAdjustedPlan, Handler: h.getAdjustedPlan},
		server.ServerTool{Tool: toolEvaluateProgression, Handler: h.evaluateProgression},
		server.ServerTool{Tool: toolGetBiometrics, Handler: h.getBiometrics},
		server.ServerTool{Tool: toolGetTargets, Handler: h.getTargets},
		server.ServerTool{Tool: toolGetLoggedSets, Handler: h.getLoggedSets},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resReadinessToday, Handler: h.readinessToday},
		server.ServerResource{Resource: resCurrentProgram, Handler: h.currentProgram},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resReadinessToday = mcp.NewResource(
	"repcoach://readiness_today",
	"Today's Readiness",
	mcp.WithResourceDescription("Today's readiness snapshot: score, band, load multiplier, and the biometric deltas behind them"),
	mcp.WithMIMEType("application/json"),
)

var resCurrentProgram = mcp.NewResource(
	"repcoach://current_program",
	"Current Program",
	mcp.WithResourceDescription("All stored exercise targets plus the active progression rule"),
	mcp.WithMIMEType("application/json"),
)
