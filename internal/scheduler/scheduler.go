// Package scheduler runs the recurring local-midnight maintenance task
package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"
)

// DailyResetter is the operation the scheduler fires at each local midnight
type DailyResetter interface {
	ResetDailyWater() error
}

// DailyReset owns the cron instance behind the midnight reset
type DailyReset struct {
	c *cron.Cron
}

// StartDailyReset arms the daily-water reset at every local midnight. The
// reset itself is idempotent, so a redundant firing is harmless.
func StartDailyReset(resetter DailyResetter) (*DailyReset, error) {
	c := cron.New()
	_, err := c.AddFunc("0 0 * * *", func() {
		if err := resetter.ResetDailyWater(); err != nil {
			log.Printf("Scheduled daily water reset failed: %v", err)
			return
		}
		log.Println("Daily water amounts reset")
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	log.Println("Daily water reset scheduled for local midnight")
	return &DailyReset{c: c}, nil
}

// Stop tears the scheduler down; a pending firing is abandoned with no side
// effects.
func (d *DailyReset) Stop() {
	if d.c != nil {
		d.c.Stop()
	}
}
