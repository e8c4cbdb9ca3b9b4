package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

type tokenPurger interface {
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

// RegisterBlacklistCleanup adds the expired-token purge to c on spec (e.g. "@every 6h").
func RegisterBlacklistCleanup(c *cron.Cron, spec string, svc tokenPurger) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := svc.PurgeExpiredTokens(ctx)
		if err != nil {
			log.Printf("[CLEANUP ERROR] token_blacklist purge failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[CLEANUP] %d expired blacklisted tokens removed", n)
		}
	})
}
