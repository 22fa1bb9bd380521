package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type countingPruner struct {
	calls atomic.Int32
	err   error
}

func (p *countingPruner) Prune(context.Context) (int64, error) {
	p.calls.Add(1)
	return 1, p.err
}

func TestRun_PrunesUntilCancelled(t *testing.T) {
	p := &countingPruner{}
	s := New(p, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	assert.Eventually(t, func() bool { return p.calls.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestRun_KeepsGoingAfterErrors(t *testing.T) {
	p := &countingPruner{err: errors.New("database is locked")}
	s := New(p, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	assert.Eventually(t, func() bool { return p.calls.Load() >= 3 }, time.Second, time.Millisecond)
}

func TestNew_DefaultInterval(t *testing.T) {
	s := New(&countingPruner{}, 0, zerolog.Nop())
	assert.Equal(t, time.Hour, s.interval)
}
