package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fixpoint/fixpoint/internal/domain/model"
)

// StaleSource exposes the subset of application functionality required by the
// monitor.
type StaleSource interface {
	StalePending(ctx context.Context, before time.Time, limit int) ([]model.Order, error)
}

// StaleOrderMonitor periodically reports pending orders no technician has
// taken within the threshold, so operators notice a starving queue.
type StaleOrderMonitor struct {
	source    StaleSource
	interval  time.Duration
	threshold time.Duration
	batchSize int
	logger    *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewStaleOrderMonitor constructs the monitor.
func NewStaleOrderMonitor(source StaleSource, interval, threshold time.Duration, batchSize int, logger *slog.Logger) *StaleOrderMonitor {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &StaleOrderMonitor{
		source:    source,
		interval:  interval,
		threshold: threshold,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Start launches the background loop.
func (m *StaleOrderMonitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	m.wg.Add(1)
	go m.loop(runCtx)
}

// Stop waits for the loop to finish.
func (m *StaleOrderMonitor) Stop() {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.mu.Unlock()

	m.wg.Wait()
}

func (m *StaleOrderMonitor) loop(ctx context.Context) {
	defer m.wg.Done()
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

func (m *StaleOrderMonitor) check(ctx context.Context) {
	before := time.Now().Add(-m.threshold)
	orders, err := m.source.StalePending(ctx, before, m.batchSize)
	if err != nil {
		m.logger.Error("stale order check failed", slog.String("error", err.Error()))
		return
	}

	for _, order := range orders {
		m.logger.Warn("order waiting for a technician",
			slog.String("order_no", order.OrderNo),
			slog.Int64("order_id", order.ID),
			slog.Duration("waiting", time.Since(order.CreatedAt).Round(time.Second)),
		)
	}
}
