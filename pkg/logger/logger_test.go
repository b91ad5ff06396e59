package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLogger_BeforeInitIsNop(t *testing.T) {
	assert.NotNil(t, GetLogger())
}

func TestInitAndWithContext(t *testing.T) {
	Init("development")
	assert.NotNil(t, GetLogger())

	// no request id in context
	assert.NotNil(t, WithContext(context.Background()))

	ctx := context.WithValue(context.Background(), "request_id", "req-123")
	l := WithContext(ctx)
	assert.NotNil(t, l)

	typedCtx := context.WithValue(context.Background(), RequestIDKey, "req-456")
	assert.NotNil(t, WithContext(typedCtx))

	// must not panic
	Info(ctx, "info message")
	Warn(ctx, "warn message")
	Debug(ctx, "debug message")
	Error(ctx, "error message")
	LogRequest(ctx, "GET", "/api/v1/warranty", 200, 0, "127.0.0.1")
}

func TestWithContext_NilContext(t *testing.T) {
	assert.NotNil(t, WithContext(nil))
}
