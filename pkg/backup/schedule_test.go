package backup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyrionz/SafeArchive/pkg/config"
)

func TestStartScheduleDisabled(t *testing.T) {
	e := newTestEngine(t, nil)
	require.NoError(t, e.StartSchedule(context.Background()))
}

func TestStartScheduleInvalid(t *testing.T) {
	e := newTestEngine(t, &config.Config{BackupSchedule: "not a cron line"})
	err := e.StartSchedule(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid backup schedule "not a cron line"`)
}

func TestStartScheduleStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	e := newTestEngine(t, &config.Config{BackupSchedule: "@hourly"})
	require.NoError(t, e.StartSchedule(ctx))
	cancel()
}
