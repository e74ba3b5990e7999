package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futebadosparcas/matchday/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
	err      error
}

func (j *testJob) Name() string { return "test" }

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return j.err
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(TestWorkerCount, TestQueueSize, 0)
	pool.Start()
	defer pool.Stop()

	job := &testJob{executed: &executed}
	require.True(t, pool.Enqueue(job))
	require.True(t, pool.Enqueue(&testJob{executed: &executed, err: errors.New("boom")}))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&executed) == TestExpectedJobCount
	}, TestWaitTimeout*time.Millisecond, 10*time.Millisecond)
}

type deadlineJob struct {
	hadDeadline chan bool
}

func (j *deadlineJob) Process(ctx context.Context) error {
	_, ok := ctx.Deadline()
	j.hadDeadline <- ok
	return nil
}

func TestPool_JobTimeout(t *testing.T) {
	pool := NewPool(1, 1, time.Minute)
	pool.Start()
	defer pool.Stop()

	job := &deadlineJob{hadDeadline: make(chan bool, 1)}
	require.True(t, pool.Enqueue(job))

	select {
	case ok := <-job.hadDeadline:
		assert.True(t, ok)
	case <-time.After(TestWaitTimeout * time.Millisecond):
		t.Fatal("job did not run")
	}
}

func TestPool_EnqueueFullOrStopped(t *testing.T) {
	var executed int32
	pool := NewPool(1, 1, 0)

	// not started, so the single slot stays occupied
	assert.True(t, pool.Enqueue(&testJob{executed: &executed}))
	assert.False(t, pool.Enqueue(&testJob{executed: &executed}))

	pool.Stop()
	assert.False(t, pool.Enqueue(&testJob{executed: &executed}))
}

func TestPool_StopReleasesWorkers(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		var executed int32
		pool := NewPool(TestWorkerCount, TestQueueSize, 0)
		pool.Start()
		require.True(t, pool.Enqueue(&testJob{executed: &executed}))
		assert.Eventually(t, func() bool {
			return atomic.LoadInt32(&executed) == 1
		}, TestWaitTimeout*time.Millisecond, 10*time.Millisecond)
		pool.Stop()
	})
}
