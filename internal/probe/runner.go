// Package probe exercises a running finals service and verifies every
// answer against the compiled-in dataset.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/finals/internal/domain/dataset"
	"github.com/okian/finals/pkg/logger"
)

// Worker configuration constants.
const (
	workerChannelMultiplier = 2
	percentageMultiplier    = 100
)

// Run executes the complete probe. It returns the run statistics and an
// error wrapping ErrMismatch when any check failed.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{
		RunID:     uuid.NewString(),
		StartTime: time.Now(),
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	baseURL := strings.TrimRight(config.BaseURL, "/")
	log := logger.Get().Named("probe")

	log.Info(ctx, "starting finals probe",
		logger.String("runID", stats.RunID),
		logger.String("baseURL", baseURL),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Bool("verbose", config.Verbose))

	client := newHTTPClient(config.Timeout, stats.RunID)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client, baseURL); err != nil {
		return stats, err
	}

	// Step 2: Run every check concurrently
	plan := buildPlan(dataset.Finals())
	stats.Checks = len(plan)
	failures := runChecks(ctx, client, baseURL, config, plan, log)

	stats.Failures = failures
	stats.Failed = len(failures)
	stats.Passed = stats.Checks - stats.Failed
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(ctx, log, stats)

	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d checks failed", ErrMismatch, stats.Failed, stats.Checks)
	}
	log.Info(ctx, "probe completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, baseURL string) error {
	status, _, err := client.Get(ctx, baseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	// Any 200 is healthy; the body is Prometheus metrics.
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, status)
	}
	return nil
}

// runChecks feeds the plan to a worker pool and collects failures.
func runChecks(ctx context.Context, client *HTTPClient, baseURL string, config *Config, plan []check, log logger.Logger) []Failure {
	var (
		mu       sync.Mutex
		failures []Failure
		wg       sync.WaitGroup
	)
	checkChan := make(chan check, config.Workers*workerChannelMultiplier)

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range checkChan {
				err := runCheck(ctx, client, baseURL, c)
				if config.Verbose {
					log.Debug(ctx, "check", logger.String("check", c.name), logger.Bool("ok", err == nil))
				}
				if err == nil {
					continue
				}
				log.Warn(ctx, "check failed", logger.String("check", c.name), logger.Error(err))
				mu.Lock()
				failures = append(failures, Failure{Check: c.name, Path: c.path, Err: err.Error()})
				mu.Unlock()
			}
		}()
	}

	go func() {
		defer close(checkChan)
		for _, c := range plan {
			select {
			case <-ctx.Done():
				return
			case checkChan <- c:
			}
		}
	}()

	wg.Wait()
	return failures
}

func runCheck(ctx context.Context, client *HTTPClient, baseURL string, c check) error {
	status, body, err := client.Get(ctx, baseURL+c.path)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("status %d", status)
	}
	return c.verify(body)
}

// displayFinalStats logs the final probe statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var passRate float64
	if stats.Checks > 0 {
		passRate = float64(stats.Passed) / float64(stats.Checks) * percentageMultiplier
	}
	log.Info(ctx, "final statistics",
		logger.String("runID", stats.RunID),
		logger.Int("checks", stats.Checks),
		logger.Int("passed", stats.Passed),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("passRate", passRate))
}
