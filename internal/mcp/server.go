package mcp

import (
	"context"
	"log/slog"
	"net/http"

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
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftLog strength training server. Query logged workouts, volume and calorie totals, streaks, goals and progression plans, and ask what to lift next. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolGetPeriodStats, Handler: h.getPeriodStats},
		server.ServerTool{Tool: toolGetTrainingSummary, Handler: h.getTrainingSummary},
		server.ServerTool{Tool: toolGetStreak, Handler: h.getStreak},
		server.ServerTool{Tool: toolGetGoals, Handler: h.getGoals},
		server.ServerTool{Tool: toolGetProgressionPlans, Handler: h.getProgressionPlans},
		server.ServerTool{Tool: toolGetNextWeight, Handler: h.getNextWeight},
		server.ServerTool{Tool: toolSuggestWeight, Handler: h.suggestWeight},
		server.ServerTool{Tool: toolForecastProgress, Handler: h.forecastProgress},
	)

	s.AddResources(
		server.ServerResource{Resource: resWeeklySummary, Handler: h.weeklySummary},
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
	)

	return s
}

// HTTPHandler serves s over the streamable HTTP transport. userID resolves
// the caller of each request.
func HTTPHandler(s *server.MCPServer, userID func(*http.Request) int) http.Handler {
	return server.NewStreamableHTTPServer(s,
		server.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			return WithUserID(ctx, userID(r))
		}),
	)
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

var resWeeklySummary = mcp.NewResource(
	"liftlog://weekly_summary",
	"Weekly Summary",
	mcp.WithResourceDescription("Sessions, volume and calories of the last 7 days with the current streak and open goals"),
	mcp.WithMIMEType("application/json"),
)

var resRecentWorkouts = mcp.NewResource(
	"liftlog://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Workouts from the last 14 days"),
	mcp.WithMIMEType("application/json"),
)
