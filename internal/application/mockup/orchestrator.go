package mockup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/podstore/backend/internal/domain/provider"
	"github.com/podstore/backend/internal/domain/shared"
)

// Polling defaults for mockup render tasks
const (
	DefaultPollInterval = 2 * time.Second
	DefaultMaxAttempts  = 30
)

// Orchestrator drives a mockup render task from submission to a usable
// image URL. Rendering is asynchronous on the provider side, so the
// orchestrator polls the task until it completes, fails, or the attempt
// budget runs out.
type Orchestrator struct {
	gateway      provider.Gateway
	logger       *zap.Logger
	pollInterval time.Duration
	maxAttempts  int
}

// NewOrchestrator creates a mockup orchestrator. Zero pollInterval or
// maxAttempts fall back to the defaults.
func NewOrchestrator(gateway provider.Gateway, logger *zap.Logger, pollInterval time.Duration, maxAttempts int) *Orchestrator {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Orchestrator{
		gateway:      gateway,
		logger:       logger,
		pollInterval: pollInterval,
		maxAttempts:  maxAttempts,
	}
}

// Generate submits a render task for the artwork and blocks until the
// provider reports a result. It returns the first rendered mockup URL.
// Cancelling ctx aborts the wait between polls immediately.
func (o *Orchestrator) Generate(ctx context.Context, imageURL string, productID, variantID int64) (string, error) {
	taskKey, err := o.gateway.CreateMockupTask(ctx, imageURL, productID, variantID)
	if err != nil {
		return "", err
	}
	if taskKey == "" {
		return "", shared.NewDomainError("PROVIDER_FAILED", "Mockup task was not accepted by the provider")
	}

	o.logger.Info("mockup task created",
		zap.String("task_key", taskKey),
		zap.Int64("product_id", productID),
		zap.Int64("variant_id", variantID))

	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		if err := o.wait(ctx); err != nil {
			return "", err
		}

		task, err := o.gateway.GetMockupTask(ctx, taskKey)
		if err != nil {
			return "", err
		}

		switch task.Status {
		case provider.MockupTaskCompleted:
			url := task.FirstMockupURL()
			if url == "" {
				return "", shared.NewDomainError("PROVIDER_FAILED", "Mockup task completed without a mockup image")
			}
			o.logger.Info("mockup task completed",
				zap.String("task_key", taskKey),
				zap.Int("attempts", attempt))
			return url, nil
		case provider.MockupTaskFailed:
			message := task.Error
			if message == "" {
				message = "Mockup generation failed"
			}
			o.logger.Warn("mockup task failed",
				zap.String("task_key", taskKey),
				zap.String("status", task.Status),
				zap.Int("attempt", attempt),
				zap.String("provider_error", message))
			return "", shared.NewDomainError("PROVIDER_FAILED", message)
		default:
			o.logger.Debug("mockup task not ready",
				zap.String("task_key", taskKey),
				zap.String("status", task.Status),
				zap.Int("attempt", attempt))
		}
	}

	return "", shared.NewDomainError("TIMEOUT",
		fmt.Sprintf("Mockup generation did not complete after %d attempts (%s)",
			o.maxAttempts, time.Duration(o.maxAttempts)*o.pollInterval))
}

func (o *Orchestrator) wait(ctx context.Context) error {
	timer := time.NewTimer(o.pollInterval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
