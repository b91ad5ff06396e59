package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type retirerStub struct {
	calls   atomic.Int32
	retired int64
	err     error
}

func (s *retirerStub) RetireExpired(_ context.Context, now time.Time) (int64, error) {
	s.calls.Add(1)
	if now.IsZero() {
		return 0, errors.New("zero now")
	}
	return s.retired, s.err
}

func TestWarrantyExpiryJob_RetiresOnTick(t *testing.T) {
	stub := &retirerStub{retired: 3}
	job := NewWarrantyExpiryJob(stub)
	job.interval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return stub.calls.Load() >= 2
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not stop on context cancel")
	}
}

func TestWarrantyExpiryJob_Stop(t *testing.T) {
	job := NewWarrantyExpiryJob(&retirerStub{})
	job.interval = time.Hour

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()

	job.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not stop")
	}
}

func TestWarrantyExpiryJob_SurvivesStoreErrors(t *testing.T) {
	stub := &retirerStub{err: errors.New("connection refused")}
	job := NewWarrantyExpiryJob(stub)
	job.interval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go job.Start(ctx)

	// keeps ticking despite repeated failures
	require.Eventually(t, func() bool {
		return stub.calls.Load() >= 3
	}, time.Second, time.Millisecond)
	assert.GreaterOrEqual(t, stub.calls.Load(), int32(3))
}
