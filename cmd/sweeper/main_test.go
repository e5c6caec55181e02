package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-core/internal/mines"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenRoundTrip(t *testing.T) {
	out, err := run(t, "gen", "-n", "4", "--rows", "5", "--cols", "7", "--bombs", "6", "--sampler", "selection")
	require.NoError(t, err)

	fixtures, err := mines.ReadFixtures(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, fixtures, 4)

	for _, f := range fixtures {
		assert.Equal(t, 5, f.Rows)
		assert.Equal(t, 7, f.Cols)
		assert.Len(t, f.Bombs, 6)

		b, err := f.Board()
		require.NoError(t, err)
		assert.True(t, f.Matches(b))
	}
}

func TestGenToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boards.txt")

	_, err := run(t, "gen", "-n", "2", "-r", "3", "-c", "3", "-b", "9", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	fixtures, err := mines.ReadFixtures(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, fixtures, 2)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, fixtures[1].Bombs)
}

func TestGenRejectsBadInput(t *testing.T) {
	_, err := run(t, "gen", "--sampler", "bogus")
	assert.ErrorIs(t, err, mines.ErrUnknownSampler)

	_, err = run(t, "gen", "--rows", "-2")
	assert.ErrorIs(t, err, mines.ErrInvalidArgument)
}

type failingCloser struct {
	bytes.Buffer
	err error
}

func (c *failingCloser) Close() error { return c.err }

func TestGenReportsCloseError(t *testing.T) {
	errClose := errors.New("disk full")
	b, err := mines.NewBoard(2, 2, 1, mines.NewSelectionSampler(mines.NewRand()))
	require.NoError(t, err)
	boards := []*mines.Board{b}

	wc := &failingCloser{err: errClose}
	err = writeFixturesAndClose(wc, "; header", boards)
	assert.ErrorIs(t, err, errClose)
	assert.True(t, strings.HasPrefix(wc.String(), "; header\n\n"))

	wc = &failingCloser{}
	require.NoError(t, writeFixturesAndClose(wc, "; header", boards))
	fixtures, err := mines.ReadFixtures(&wc.Buffer)
	require.NoError(t, err)
	assert.Len(t, fixtures, 1)
}

func TestGenToMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "boards.txt")

	_, err := run(t, "gen", "-n", "1", "-o", path)
	assert.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestShow(t *testing.T) {
	out, err := run(t, "show", "-r", "2", "-c", "3", "-b", "6", "--counts")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "***", lines[0])
	assert.Equal(t, "***", lines[1])
	assert.Equal(t, "bombs:  [0 1 2 3 4 5]", lines[2])
	assert.Equal(t, "coords: []", lines[3])
}

func TestShowBlank(t *testing.T) {
	out, err := run(t, "show", "-r", "1", "-c", "4", "-b", "0", "--blank", ".")
	require.NoError(t, err)
	assert.Equal(t, "....\n", out)

	_, err = run(t, "show", "--blank", "")
	assert.Error(t, err)
}
