package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"warranty-register.backend/pkg/logger"
)

// WarrantyRetirer retires warranties whose expiry date has passed
type WarrantyRetirer interface {
	RetireExpired(ctx context.Context, now time.Time) (int64, error)
}

// WarrantyExpiryJob periodically flips Active warranties past their expiry
// date to Retired, so listings reflect coverage status without a write on the
// read path.
type WarrantyExpiryJob struct {
	repo     WarrantyRetirer
	interval time.Duration
	stop     chan struct{}
}

func NewWarrantyExpiryJob(repo WarrantyRetirer) *WarrantyExpiryJob {
	return &WarrantyExpiryJob{
		repo:     repo,
		interval: time.Hour,
		stop:     make(chan struct{}),
	}
}

func (j *WarrantyExpiryJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting warranty expiry job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "warranty expiry job stopped")
			return
		case <-j.stop:
			logger.Info(ctx, "warranty expiry job stopped")
			return
		case <-ticker.C:
			j.retireExpired(ctx)
		}
	}
}

func (j *WarrantyExpiryJob) Stop() {
	close(j.stop)
}

func (j *WarrantyExpiryJob) retireExpired(ctx context.Context) {
	retired, err := j.repo.RetireExpired(ctx, time.Now().UTC())
	if err != nil {
		logger.Error(ctx, "failed to retire expired warranties", zap.Error(err))
		return
	}
	if retired > 0 {
		logger.Info(ctx, "retired expired warranties", zap.Int64("count", retired))
	}
}
