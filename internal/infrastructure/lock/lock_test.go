package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLocker_Exclusive(t *testing.T) {
	locker := NewMemoryLocker()
	ctx := context.Background()

	release, err := locker.TryLock(ctx, "shop-1", time.Minute)
	require.NoError(t, err)

	_, err = locker.TryLock(ctx, "shop-1", time.Minute)
	assert.ErrorIs(t, err, ErrLocked)

	other, err := locker.TryLock(ctx, "shop-2", time.Minute)
	require.NoError(t, err, "keys are independent")
	require.NoError(t, other(ctx))

	require.NoError(t, release(ctx))
	again, err := locker.TryLock(ctx, "shop-1", time.Minute)
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}

func TestMemoryLocker_ExpiredLeaseIsReplaced(t *testing.T) {
	locker := NewMemoryLocker()
	ctx := context.Background()

	stale, err := locker.TryLock(ctx, "shop-1", time.Millisecond)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	fresh, err := locker.TryLock(ctx, "shop-1", time.Minute)
	require.NoError(t, err)

	// the stale holder must not free the new lease
	require.NoError(t, stale(ctx))
	_, err = locker.TryLock(ctx, "shop-1", time.Minute)
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, fresh(ctx))
}

func TestMemoryLocker_Concurrent(t *testing.T) {
	locker := NewMemoryLocker()
	ctx := context.Background()

	var acquired atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := locker.TryLock(ctx, "shop-1", time.Minute); err == nil {
				acquired.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), acquired.Load())
}
