package scheduler

import (
	"context"
	"testing"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct{ calls int }

func (s *countingSweeper) SweepCompleted(context.Context) (int64, error) {
	s.calls++
	return 3, nil
}

func TestRegisterCompletionSweep(t *testing.T) {
	c := cron.New()
	sweeper := &countingSweeper{}

	id, err := RegisterCompletionSweep(c, "10 0 * * *", sweeper)
	require.NoError(t, err)

	entry := c.Entry(id)
	require.True(t, entry.Valid())
	entry.Job.Run()
	assert.Equal(t, 1, sweeper.calls)

	_, err = RegisterCompletionSweep(c, "not a schedule", sweeper)
	assert.Error(t, err)
}
