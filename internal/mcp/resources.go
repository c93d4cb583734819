package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) weeklySummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	stats, err := h.ds.PeriodStats(ctx, uid, "week")
	if err != nil {
		return nil, err
	}

	streak, err := h.ds.GetStreak(ctx, uid)
	if err != nil {
		h.log.Warn("weekly_summary: streak query failed", "error", err)
	}

	goals, err := h.ds.ListGoals(ctx, uid, "")
	if err != nil {
		h.log.Warn("weekly_summary: goal query failed", "error", err)
	}
	open := goals[:0]
	for _, g := range goals {
		if !g.Completed {
			open = append(open, g)
		}
	}

	return jsonContents(req.Params.URI, map[string]any{
		"date":       time.Now().Format("2006-01-02"),
		"stats":      stats,
		"streak":     streak,
		"open_goals": open,
	})
}

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	end := time.Now()
	workouts, err := h.ds.ListWorkouts(ctx, UserIDFromContext(ctx), end.AddDate(0, 0, -14), end)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, workouts)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
