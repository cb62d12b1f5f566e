package concurrency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLock_SameKeySameMutex(t *testing.T) {
	lm := NewLockManager()
	assert.Same(t, lm.GetLock("a"), lm.GetLock("a"))
	assert.NotSame(t, lm.GetLock("a"), lm.GetLock("b"))
}

func TestLock_SerializesPerKey(t *testing.T) {
	lm := NewLockManager()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := lm.Lock("user")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestTryLock(t *testing.T) {
	lm := NewLockManager()

	unlock, ok := lm.TryLock("user")
	require.True(t, ok)

	_, ok = lm.TryLock("user")
	assert.False(t, ok, "Held key should not be acquired twice")

	_, ok = lm.TryLock("other")
	assert.True(t, ok, "Other keys are independent")

	unlock()
	_, ok = lm.TryLock("user")
	assert.True(t, ok)
}
