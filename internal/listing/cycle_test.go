package listing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/five82/tally/internal/search"
)

func TestCycle_LoadingShowsSkeleton(t *testing.T) {
	var c Cycle[string]
	require.Equal(t, PhaseIdle, c.Phase())
	require.Zero(t, c.Skeleton())

	tk := c.Begin(10)
	require.True(t, c.Loading())
	require.Equal(t, 10, c.Skeleton())

	require.True(t, c.Resolve(tk, search.Result[string]{Data: []string{"a", "b"}, TotalRecords: 2}))
	require.False(t, c.Loading())
	require.Zero(t, c.Skeleton())
	require.Equal(t, []string{"a", "b"}, c.Rows())
	require.Equal(t, 2, c.Total())
}

func TestCycle_FailureClearsRows(t *testing.T) {
	var c Cycle[string]
	tk := c.Begin(5)
	c.Resolve(tk, search.Result[string]{Data: []string{"a"}, TotalRecords: 1})

	tk = c.Begin(5)
	boom := errors.New("boom")
	require.True(t, c.Fail(tk, boom))
	require.Equal(t, PhaseError, c.Phase())
	require.Empty(t, c.Rows())
	require.Zero(t, c.Total())
	require.False(t, c.Loading())
	require.ErrorIs(t, c.Err(), boom)
}

func TestCycle_StaleTicketIgnored(t *testing.T) {
	var c Cycle[string]
	old := c.Begin(10)
	latest := c.Begin(10)

	require.True(t, c.Resolve(latest, search.Result[string]{Data: []string{"new"}, TotalRecords: 1}))
	require.False(t, c.Resolve(old, search.Result[string]{Data: []string{"old"}, TotalRecords: 1}))
	require.False(t, c.Fail(old, errors.New("late")))
	require.Equal(t, []string{"new"}, c.Rows())
	require.Equal(t, PhaseSuccess, c.Phase())
}

func TestCycle_DisposedIgnoresResponses(t *testing.T) {
	var c Cycle[string]
	tk := c.Begin(10)
	c.Dispose()
	require.False(t, c.Resolve(tk, search.Result[string]{Data: []string{"a"}, TotalRecords: 1}))
	require.Empty(t, c.Rows())
	require.True(t, c.Disposed())
}

func TestCycle_InconsistentPageFails(t *testing.T) {
	var c Cycle[string]
	tk := c.Begin(1)
	require.True(t, c.Resolve(tk, search.Result[string]{Data: []string{"a", "b"}, TotalRecords: 2}))
	require.Equal(t, PhaseError, c.Phase())
	require.Error(t, c.Err())
	require.Empty(t, c.Rows())
}
