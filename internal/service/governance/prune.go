package governance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"group-manager/internal/domain"
)

// DefaultPruneSchedule runs the pruner once a day at midnight.
const DefaultPruneSchedule = "@daily"

// AuditPruner deletes audit entries older than the retention window on a
// cron schedule.
type AuditPruner struct {
	repo      domain.AuditRepository
	retention time.Duration
	schedule  string
	logger    *slog.Logger
	cron      *cron.Cron
	now       func() time.Time
}

// NewAuditPruner creates a pruner. retentionDays <= 0 disables pruning.
func NewAuditPruner(repo domain.AuditRepository, retentionDays int, schedule string, logger *slog.Logger) *AuditPruner {
	if schedule == "" {
		schedule = DefaultPruneSchedule
	}
	return &AuditPruner{
		repo:      repo,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		schedule:  schedule,
		logger:    logger,
		cron:      cron.New(cron.WithLocation(time.UTC)),
		now:       time.Now,
	}
}

// Enabled reports whether a retention window is configured.
func (p *AuditPruner) Enabled() bool { return p.retention > 0 }

// PruneOnce deletes entries created before now minus the retention window.
func (p *AuditPruner) PruneOnce(ctx context.Context) (int64, error) {
	if !p.Enabled() {
		return 0, nil
	}
	cutoff := p.now().Add(-p.retention)
	n, err := p.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune audit log: %w", err)
	}
	return n, nil
}

// Run schedules the pruner and blocks until ctx is done, then waits for a
// running prune to finish.
func (p *AuditPruner) Run(ctx context.Context) error {
	if !p.Enabled() {
		p.logger.Info("audit pruning disabled")
		return nil
	}

	_, err := p.cron.AddFunc(p.schedule, func() {
		n, err := p.PruneOnce(ctx)
		if err != nil {
			p.logger.Warn("scheduled audit prune failed", "error", err)
			return
		}
		p.logger.Info("audit log pruned", "deleted", n)
	})
	if err != nil {
		return fmt.Errorf("invalid audit prune schedule %q: %w", p.schedule, err)
	}

	p.cron.Start()
	p.logger.Info("audit pruner started", "schedule", p.schedule, "retention", p.retention)

	<-ctx.Done()
	<-p.cron.Stop().Done()
	p.logger.Info("audit pruner stopped")
	return nil
}
