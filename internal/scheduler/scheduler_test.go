package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/weekplan/internal/logging"
)

func TestNext(t *testing.T) {
	wednesday := time.Date(2026, 2, 18, 10, 0, 0, 0, time.UTC)
	next, err := Next("0 0 1 * * 1", wednesday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 23, 1, 0, 0, 0, time.UTC), next)

	_, err = Next("not a schedule", wednesday)
	assert.Error(t, err)
}

func TestAddRejectsBadSpec(t *testing.T) {
	s := New(time.UTC, logging.Discard())
	err := s.Add("rollover", "61 * * * * *", func(context.Context) error { return nil })
	assert.Error(t, err)
}

func TestRunExecutesJobs(t *testing.T) {
	s := New(time.UTC, logging.Discard())
	ran := make(chan struct{}, 4)
	require.NoError(t, s.Add("tick", "* * * * * *", func(context.Context) error {
		ran <- struct{}{}
		return errors.New("logged, not fatal")
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
