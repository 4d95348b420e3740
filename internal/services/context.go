package services

import "context"

type contextKey string

const (
	screenplayIDKey contextKey = "screenplay_id"
	sceneNumberKey  contextKey = "scene_number"
	requestIDKey    contextKey = "request_id"
)

// WithScreenplayID annotates context with the active screenplay identifier.
func WithScreenplayID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, screenplayIDKey, id)
}

// ScreenplayIDFromContext extracts the screenplay identifier if present.
func ScreenplayIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(screenplayIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithSceneNumber annotates context with the scene number being worked on.
func WithSceneNumber(ctx context.Context, number string) context.Context {
	if number == "" {
		return ctx
	}
	return context.WithValue(ctx, sceneNumberKey, number)
}

// SceneNumberFromContext returns the scene number if present.
func SceneNumberFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(sceneNumberKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
