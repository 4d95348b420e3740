package logging

import (
	"context"
	"log/slog"

	"mythus/internal/services"
)

const (
	// FieldComponent is the structured logging key for component names.
	FieldComponent = "component"
	// FieldScreenplayID is the structured logging key for screenplay identifiers.
	FieldScreenplayID = "screenplay_id"
	// FieldSceneNumber is the structured logging key for scene numbers.
	FieldSceneNumber = "scene_number"
	// FieldCorrelationID is the structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
	// FieldStep is the structured logging key for workflow step names.
	FieldStep = "step"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.ScreenplayIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldScreenplayID, id))
	}
	if number, ok := services.SceneNumberFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldSceneNumber, number))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	return fields
}

// WithContext returns a logger augmented with fields derived from the
// supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	args := make([]any, 0, len(fields)*2)
	for _, field := range fields {
		args = append(args, field.Key, field.Value)
	}
	return logger.With(args...)
}
