package assistant

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fatflowers/motorvault/pkg/logctx"
)

// Service is the mocked AI assistant: it returns a canned diagnostic reply
// after a randomized delay, simulating a remote model call. There is no real
// AI backend.
type Service struct {
	log *zap.SugaredLogger

	// overridable in tests
	sleep func(ctx context.Context, d time.Duration) error
	pick  func(n int) int
}

func NewService(log *zap.SugaredLogger) *Service {
	return &Service{
		log:   log,
		sleep: sleepCtx,
		pick:  rand.Intn,
	}
}

var cannedResponses = []string{
	"I understand you're experiencing issues with your vehicle. Can you provide more details about when this problem occurs? For example, does it happen when you start the car, while driving, or when you brake?",
	"Based on what you've described, there could be several potential causes. Let me ask a few follow-up questions to help narrow down the issue: How long has this been happening? Have you noticed any other symptoms?",
	"That's helpful information. To provide the most accurate diagnosis, I'd like to know: What's the mileage on your vehicle? When was the last time you had it serviced? Have you noticed any unusual sounds, smells, or warning lights?",
	"Thank you for those details. Based on the symptoms you've described, here are the most likely causes and some initial steps you can take. However, I strongly recommend having a qualified mechanic inspect your vehicle for safety reasons.",
}

// Chat replies to a user message. vehicleContext is logged for debugging but
// has no effect on the canned reply.
func (s *Service) Chat(ctx context.Context, message, vehicleContext string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("message cannot be empty")
	}
	logctx.FromCtx(ctx, s.log).Debugw("assistant chat", "message_len", len(message), "vehicle_context", vehicleContext)

	// Simulated API latency: 1-3s.
	delay := time.Second + time.Duration(s.pick(2000))*time.Millisecond
	if err := s.sleep(ctx, delay); err != nil {
		return "", err
	}

	return cannedResponses[s.pick(len(cannedResponses))], nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
