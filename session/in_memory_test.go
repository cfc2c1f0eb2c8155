package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_CreatesLazily(t *testing.T) {
	s := NewInMemoryStore()
	assert.Equal(t, 0, s.Len())

	record, err := s.Get("s1")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "s1", record.ID)
	assert.Equal(t, 1, s.Len())
}

func TestGet_ReturnsSameRecord(t *testing.T) {
	s := NewInMemoryStore()

	first, err := s.Get("s1")
	require.NoError(t, err)
	first.Set("color", "blue")

	second, err := s.Get("s1")
	require.NoError(t, err)
	assert.Same(t, first, second)

	v, ok := second.Get("color")
	require.True(t, ok)
	assert.Equal(t, "blue", v)
}

func TestClear(t *testing.T) {
	s := NewInMemoryStore()
	_, err := s.Get("s1")
	require.NoError(t, err)

	require.NoError(t, s.Clear("s1"))
	assert.Equal(t, 0, s.Len())

	// Clearing an unknown id is a no-op.
	require.NoError(t, s.Clear("never-seen"))
}

func TestGet_ConcurrentSameID(t *testing.T) {
	s := NewInMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Get("shared")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, s.Len())
}

func TestGet_ConcurrentDistinctIDs(t *testing.T) {
	s := NewInMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _ = s.Get(fmt.Sprintf("s%d", n))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, s.Len())
}
