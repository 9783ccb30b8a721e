package logging

import (
	"context"
	"maps"
)

type fieldsKey struct{}

// ContextWithFields stores fields on ctx, merged over any stored earlier.
// Loggers that honour it add these fields to entries logged WithContext(ctx).
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}
	merged := make(map[string]any, len(fields))
	if existing, ok := ctx.Value(fieldsKey{}).(map[string]any); ok {
		maps.Copy(merged, existing)
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, fieldsKey{}, merged)
}

// ContextFields returns a copy of the fields stored on ctx, or nil.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(fieldsKey{}).(map[string]any)
	if len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}
