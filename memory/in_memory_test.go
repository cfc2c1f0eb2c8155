package memory

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capmesh/capmesh/core"
)

func TestContext_EmptySession(t *testing.T) {
	m := NewInMemoryStore()

	got, err := m.Context("nope", 5)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestContext_RendersTurns(t *testing.T) {
	m := NewInMemoryStore()
	require.NoError(t, m.Append("s1", core.UserEntry("echo hello")))
	require.NoError(t, m.Append("s1", core.AssistantEntry("echo", true, "hello")))

	got, err := m.Context("s1", 5)
	require.NoError(t, err)
	assert.Equal(t, "User: echo hello\nAssistant ran echo; result: hello", got)
}

func TestContext_MaxTurnsBoundary(t *testing.T) {
	m := NewInMemoryStore(func(o *Options) { o.MaxEntries = 100 })
	for i := 0; i < 8; i++ {
		require.NoError(t, m.Append("s1", core.UserEntry(fmt.Sprintf("msg %d", i))))
		require.NoError(t, m.Append("s1", core.AssistantEntry("echo", true, fmt.Sprintf("out %d", i))))
	}

	got, err := m.Context("s1", 3)
	require.NoError(t, err)
	lines := strings.Split(got, "\n")
	// 3 turns = 6 entries, oldest first.
	require.Len(t, lines, 6)
	assert.Equal(t, "User: msg 5", lines[0])
	assert.Equal(t, "Assistant ran echo; result: out 7", lines[5])
}

func TestContext_ZeroMaxTurnsRendersAll(t *testing.T) {
	m := NewInMemoryStore()
	for i := 0; i < 4; i++ {
		require.NoError(t, m.Append("s1", core.UserEntry(fmt.Sprintf("msg %d", i))))
	}

	got, err := m.Context("s1", 0)
	require.NoError(t, err)
	assert.Len(t, strings.Split(got, "\n"), 4)
}

func TestAppend_SessionIsolation(t *testing.T) {
	m := NewInMemoryStore()
	require.NoError(t, m.Append("a", core.UserEntry("for a")))
	require.NoError(t, m.Append("b", core.UserEntry("for b")))

	gotA, err := m.Context("a", 0)
	require.NoError(t, err)
	gotB, err := m.Context("b", 0)
	require.NoError(t, err)
	assert.Equal(t, "User: for a", gotA)
	assert.Equal(t, "User: for b", gotB)
}

func TestAppend_EvictsOldestBeyondCap(t *testing.T) {
	m := NewInMemoryStore(func(o *Options) { o.MaxEntries = 4 })
	for i := 0; i < 6; i++ {
		require.NoError(t, m.Append("s1", core.UserEntry(fmt.Sprintf("msg %d", i))))
	}

	assert.Equal(t, 4, m.Len("s1"))

	got, err := m.Context("s1", 0)
	require.NoError(t, err)
	lines := strings.Split(got, "\n")
	assert.Equal(t, "User: msg 2", lines[0])
	assert.Equal(t, "User: msg 5", lines[3])
}

func TestAppend_ConcurrentNoLostEntries(t *testing.T) {
	m := NewInMemoryStore(func(o *Options) { o.MaxEntries = 1000 })

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_ = m.Append("s1", core.UserEntry(fmt.Sprintf("w%d-%d", n, j)))
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 200, m.Len("s1"))
}

func TestRenderEntry_UnknownRole(t *testing.T) {
	m := NewInMemoryStore()
	require.NoError(t, m.Append("s1", core.MemoryEntry{Role: "system", Content: "note"}))

	got, err := m.Context("s1", 0)
	require.NoError(t, err)
	assert.Equal(t, "system: note", got)
}
