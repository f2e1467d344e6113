package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(pick func(n int) int) *Service {
	svc := NewService(zap.NewNop().Sugar())
	svc.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	if pick != nil {
		svc.pick = pick
	}
	return svc
}

func TestChat_ReturnsCannedResponse(t *testing.T) {
	svc := newTestService(func(n int) int { return 0 })

	reply, err := svc.Chat(context.Background(), "my brakes squeal", "Toyota Corolla 2018")
	require.NoError(t, err)
	assert.Equal(t, cannedResponses[0], reply)
}

func TestChat_CyclesThroughAllResponses(t *testing.T) {
	for i := range cannedResponses {
		svc := newTestService(func(n int) int {
			if n == len(cannedResponses) {
				return i
			}
			return 0
		})
		reply, err := svc.Chat(context.Background(), "engine light is on", "")
		require.NoError(t, err)
		assert.Equal(t, cannedResponses[i], reply)
	}
}

func TestChat_EmptyMessageRejected(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.Chat(context.Background(), "", "")
	require.Error(t, err)
	_, err = svc.Chat(context.Background(), "   ", "")
	require.Error(t, err)
}

func TestChat_HonorsContextCancellation(t *testing.T) {
	svc := NewService(zap.NewNop().Sugar())
	svc.pick = func(n int) int { return n - 1 }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Chat(ctx, "hello", "")
	require.ErrorIs(t, err, context.Canceled)
}

func TestChat_DelayStaysInWindow(t *testing.T) {
	var slept time.Duration
	svc := NewService(zap.NewNop().Sugar())
	svc.sleep = func(ctx context.Context, d time.Duration) error {
		slept = d
		return nil
	}
	svc.pick = func(n int) int { return n - 1 }

	_, err := svc.Chat(context.Background(), "hi", "")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, slept, time.Second)
	assert.Less(t, slept, 3*time.Second)
}
