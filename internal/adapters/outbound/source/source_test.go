package source_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covscore/covscore/internal/adapters/outbound/source"
)

const report = `{"total":{"statements":{"total":1,"covered":1}}}`

func TestFileSource_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coverage-summary.json")
	require.NoError(t, os.WriteFile(path, []byte(report), 0644))

	data, err := source.New().Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, report, string(data))
}

func TestFileSource_ReadsGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coverage-final.json.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(report))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	data, err := source.New().Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, report, string(data))
}

func TestFileSource_ReadsStdin(t *testing.T) {
	src := source.NewWithStdin(strings.NewReader(report))

	data, err := src.Read(context.Background(), source.Stdin)
	require.NoError(t, err)
	assert.Equal(t, report, string(data))
}

func TestFileSource_ShortInput(t *testing.T) {
	src := source.NewWithStdin(strings.NewReader("{"))

	data, err := src.Read(context.Background(), source.Stdin)
	require.NoError(t, err)
	assert.Equal(t, "{", string(data))
}

func TestFileSource_MissingFile(t *testing.T) {
	_, err := source.New().Read(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := source.NewWithStdin(strings.NewReader(report)).Read(ctx, source.Stdin)
	assert.ErrorIs(t, err, context.Canceled)
}
