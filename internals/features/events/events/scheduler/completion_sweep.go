package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

type completionSweeper interface {
	SweepCompleted(ctx context.Context) (int64, error)
}

// RegisterCompletionSweep flags past events as completed on spec (default "10 0 * * *").
func RegisterCompletionSweep(c *cron.Cron, spec string, svc completionSweeper) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := svc.SweepCompleted(ctx)
		if err != nil {
			log.Printf("[CRON ERROR] completion sweep failed: %v", err)
			return
		}
		log.Printf("[CRON] completion sweep: %d events marked completed", n)
	})
}
