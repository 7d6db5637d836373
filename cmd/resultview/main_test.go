package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ExitCodes(t *testing.T) {
	t.Setenv("RESULTVIEW_DEBUG", "")
	t.Setenv("RESULTVIEW_ROOTS", "")
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("needle"), 0o644))

	assert.Equal(t, 0, run([]string{"resultview", "search", "-q", "needle", "-r", root}))
	assert.Equal(t, 1, run([]string{"resultview", "search", "-r", root}), "missing --query")
	assert.Equal(t, 1, run([]string{"resultview", "search", "-q", "needle"}), "no roots")
}
