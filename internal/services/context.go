package services

import "context"

type contextKey string

const (
	runIDKey contextKey = "run_id"
	toolKey  contextKey = "tool"
)

// WithRunID annotates context with the invocation identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the invocation identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithTool annotates context with the tool being run.
func WithTool(ctx context.Context, tool string) context.Context {
	if tool == "" {
		return ctx
	}
	return context.WithValue(ctx, toolKey, tool)
}

// ToolFromContext returns the tool name if present.
func ToolFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(toolKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
