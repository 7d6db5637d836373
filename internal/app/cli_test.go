package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resultview/internal/search"
)

func TestRunSearch_PrintsThroughAdapter(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("order 7781 shipped"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.md"), []byte("re: order 7781"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "c.txt"), []byte("unrelated"), 0o644))
	exportPath := filepath.Join(t.TempDir(), "out.csv")

	var out bytes.Buffer
	err := RunSearch(context.Background(), SearchOptions{
		Roots:      []string{root},
		Query:      "7781",
		ContextLen: 2,
		Export:     exportPath,
	}, &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "#\tPath\tExt\tContext\tSize\tModified", lines[0])

	first := strings.Split(lines[1], "\t")
	require.Len(t, first, 6)
	assert.Equal(t, "1", first[0])
	assert.Equal(t, filepath.Join(root, "a.txt"), first[1])
	assert.Equal(t, ".txt", first[2])
	assert.Equal(t, "r 【7781】 s", first[3])
	assert.Equal(t, "18 B", first[4])

	second := strings.Split(lines[2], "\t")
	assert.Equal(t, "2", second[0])
	assert.Equal(t, filepath.Join(root, "b.md"), second[1])

	assert.True(t, strings.HasPrefix(lines[3], "Exported 2 rows to "))
	_, err = os.Stat(exportPath)
	assert.NoError(t, err)
}

func TestRunSearch_NoMatches(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("nothing"), 0o644))

	var out bytes.Buffer
	require.NoError(t, RunSearch(context.Background(), SearchOptions{Roots: []string{root}, Query: "zzz"}, &out))
	assert.Equal(t, "No matches.\n", out.String())
}

func TestRunSearch_Errors(t *testing.T) {
	var out bytes.Buffer
	err := RunSearch(context.Background(), SearchOptions{Roots: []string{" ; "}, Query: "q"}, &out)
	assert.True(t, errors.Is(err, search.ErrNoRoots))

	err = RunSearch(context.Background(), SearchOptions{Roots: []string{t.TempDir()}, Query: ""}, &out)
	assert.True(t, errors.Is(err, search.ErrEmptyQuery))
}

func TestParseRoots(t *testing.T) {
	assert.Equal(t, []string{`C:\a`, `D:\b`, "/tmp"}, ParseRoots(`C:\a; D:\b;`, " /tmp "))
	assert.Nil(t, ParseRoots("", " ; "))
}

func TestRunSearch_OpenOutOfRange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("needle"), 0o644))

	var out bytes.Buffer
	err := RunSearch(context.Background(), SearchOptions{Roots: []string{root}, Query: "needle", Open: 2}, &out)
	assert.True(t, errors.Is(err, ErrNoSuchResult))
	assert.Contains(t, out.String(), "needle")
}
