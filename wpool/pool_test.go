package wpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPoolExecutesAllSubmittedTasks(t *testing.T) {
	p := New(4)
	defer p.Stop()

	const n = 2000
	var count atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		p.Submit(func() {
			count.Add(1)
			wg.Done()
		})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("not all tasks completed in time")
	}
	require.Equal(t, int64(n), count.Load())
}

func TestPoolReportsConfiguredSize(t *testing.T) {
	p := New(8)
	defer p.Stop()
	require.Equal(t, 8, p.Size())
}

func TestPoolStopWaitsForRunningTasks(t *testing.T) {
	p := New(2)
	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool

	p.Submit(func() {
		close(started)
		<-release
		finished.Store(true)
	})
	<-started
	close(release)
	p.Stop()
	require.True(t, finished.Load())
}
