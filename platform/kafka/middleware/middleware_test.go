package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/you-humble/workshop/platform/kafka"
)

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Info(_ context.Context, msg string, _ ...zap.Field)  { l.messages = append(l.messages, msg) }
func (l *recordingLogger) Error(_ context.Context, msg string, _ ...zap.Field) { l.messages = append(l.messages, msg) }

func TestRecovery(t *testing.T) {
	t.Parallel()

	log := &recordingLogger{}
	handler := kafka.Chain(func(context.Context, kafka.Message) error {
		panic("boom")
	}, Recovery(log))

	err := handler(context.Background(), kafka.Message{Topic: "catalog.changed"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Len(t, log.messages, 1)
}

func TestLoggingPassesErrorThrough(t *testing.T) {
	t.Parallel()

	log := &recordingLogger{}
	want := errors.New("handler failed")
	handler := kafka.Chain(func(context.Context, kafka.Message) error {
		return want
	}, Logging(log))

	err := handler(context.Background(), kafka.Message{})

	assert.ErrorIs(t, err, want)
	assert.Equal(t, []string{"Kafka msg handled"}, log.messages)
}

func TestChainOrder(t *testing.T) {
	t.Parallel()

	var calls []string
	mark := func(name string) kafka.Middleware {
		return func(next kafka.MessageHandler) kafka.MessageHandler {
			return func(ctx context.Context, msg kafka.Message) error {
				calls = append(calls, name)
				return next(ctx, msg)
			}
		}
	}

	handler := kafka.Chain(func(context.Context, kafka.Message) error {
		calls = append(calls, "handler")
		return nil
	}, mark("outer"), mark("inner"))

	require.NoError(t, handler(context.Background(), kafka.Message{}))
	assert.Equal(t, []string{"outer", "inner", "handler"}, calls)
}
