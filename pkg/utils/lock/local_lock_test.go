package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLock(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLock()

	ok, err := l.Acquire(ctx, "donate:0xabc", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = l.Acquire(ctx, "donate:0xabc", time.Minute)
	assert.False(t, ok, "持有期间不能重复获取")

	ok, _ = l.Acquire(ctx, "donate:0xdef", time.Minute)
	assert.True(t, ok, "不同 key 互不影响")

	require.NoError(t, l.Release(ctx, "donate:0xabc"))
	ok, _ = l.Acquire(ctx, "donate:0xabc", time.Minute)
	assert.True(t, ok)
}

func TestLocalLockExpires(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLock()
	now := time.Unix(1700000000, 0)
	l.now = func() time.Time { return now }

	ok, _ := l.Acquire(ctx, "k", 10*time.Second)
	assert.True(t, ok)

	now = now.Add(11 * time.Second)
	ok, _ = l.Acquire(ctx, "k", 10*time.Second)
	assert.True(t, ok, "过期后可以重新获取")
}
