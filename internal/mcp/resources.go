package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claude/repcoach/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) readinessToday(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)
	today := models.FloorDay(time.Now())

	snap, _, err := h.snapshotForDay(ctx, today, uid)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) currentProgram(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	targets, err := h.ds.GetPlannedTargets(ctx, uid)
	if err != nil {
		return nil, err
	}

	rule, err := h.ds.GetProgressionRule(ctx, uid)
	if err != nil {
		return nil, err
	}

	program := map[string]any{
		"targets": targets,
		"rule":    rule,
	}

	data, err := json.Marshal(program)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
