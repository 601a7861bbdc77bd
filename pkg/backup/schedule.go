package backup

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartSchedule runs periodic backups of the configured sources until
// the context ends. A blank schedule disables it.
func (e *Engine) StartSchedule(ctx context.Context) error {
	spec := e.Config.BackupSchedule
	if spec == "" {
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		sources := e.Config.SourcePaths
		if len(sources) == 0 {
			logrus.Warnf("Skipping scheduled backup, no sources configured")
			return
		}
		if _, err := e.Backup(ctx, BackupOptions{Sources: sources}); err != nil {
			logrus.Errorf("Scheduled backup failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", spec, err)
	}

	c.Start()
	go func() {
		<-ctx.Done()
		c.Stop()
	}()

	logrus.Infof("Scheduled backups enabled (%s)", spec)
	return nil
}
