package runlock

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smalirename/internal/faults"
)

func TestAcquireIsExclusivePerRoot(t *testing.T) {
	state := filepath.Join(t.TempDir(), "state")
	root := t.TempDir()

	first, err := Acquire(state, root)
	require.NoError(t, err)
	assert.FileExists(t, first.Path())

	_, err = Acquire(state, root)
	require.Error(t, err)
	assert.ErrorIs(t, err, faults.ErrPrecondition)

	other, err := Acquire(state, t.TempDir())
	require.NoError(t, err)
	require.NoError(t, other.Release())

	require.NoError(t, first.Release())
	again, err := Acquire(state, root)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestPathForIsStable(t *testing.T) {
	assert.Equal(t, PathFor("/s", "/a/b"), PathFor("/s", "/a/b/"))
	assert.NotEqual(t, PathFor("/s", "/a/b"), PathFor("/s", "/a/c"))
	assert.Equal(t, ".lock", filepath.Ext(PathFor("/s", "/a")))
}

func TestReleaseNil(t *testing.T) {
	var l *Lock
	assert.NoError(t, l.Release())
}
