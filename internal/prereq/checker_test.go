package prereq

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLookPath(known ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, k := range known {
			if k == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
}

func TestChecker_AllFound(t *testing.T) {
	std := filepath.Join(t.TempDir(), "std.ixx")
	require.NoError(t, os.WriteFile(std, []byte("export module std;"), 0644))

	c := NewChecker().
		WithLookPath(fakeLookPath("cl", "link")).
		RequireCommand("cl", "install the build tools").
		RequireCommand("link", "").
		RequireFile("std module", std, "")

	results, err := c.Check()
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "/usr/bin/cl", results[0].Path)
	assert.True(t, results[2].Found)
	assert.True(t, c.AllPassed())
	assert.Empty(t, c.FailedChecks())
}

func TestChecker_MissingCommandAndFile(t *testing.T) {
	c := NewChecker().
		WithLookPath(fakeLookPath("link")).
		RequireCommand("cl", "run vcvars64.bat").
		RequireCommand("link", "").
		RequireFile("std module", filepath.Join(t.TempDir(), "missing.ixx"), "set toolchain_root")

	results, err := c.Check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cl")
	require.Len(t, results, 3)

	failed := c.FailedChecks()
	require.Len(t, failed, 2)
	assert.Equal(t, "run vcvars64.bat", failed[0].Suggestion)
	assert.Equal(t, "set toolchain_root", failed[1].Suggestion)
	assert.False(t, c.AllPassed())
}

func TestChecker_DirectoryIsNotAFile(t *testing.T) {
	c := NewChecker().RequireFile("std module", t.TempDir(), "")
	_, err := c.Check()
	assert.Error(t, err)
}
