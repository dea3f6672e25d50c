package serverhttp

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ja7ad/heartbeat/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersister_FlushAppendsNDJSONLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.ndjson")

	p := NewPersister(path, time.Hour, nil)
	require.NoError(t, p.Open())

	p.Append(metrics.Sample{SystemMetrics: metrics.SystemMetrics{Timestamp: 1}})
	p.Append(metrics.Sample{SystemMetrics: metrics.SystemMetrics{Timestamp: 2}})
	p.Flush()
	assert.Equal(t, 0, p.Len())

	require.NoError(t, p.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	sc := bufio.NewScanner(f)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	assert.Len(t, lines, 2)
}

func TestPersister_AppendAcrossFlushesAccumulates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.ndjson")

	p := NewPersister(path, time.Hour, nil)
	require.NoError(t, p.Open())
	defer p.Close()

	p.Append(metrics.Sample{SystemMetrics: metrics.SystemMetrics{Timestamp: 1}})
	p.Flush()
	p.Append(metrics.Sample{SystemMetrics: metrics.SystemMetrics{Timestamp: 2}})
	p.Flush()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	sc := bufio.NewScanner(f)
	var n int
	for sc.Scan() {
		n++
	}
	assert.Equal(t, 2, n)
}

// TestPersister_FlushFailurePreservesBuffer is Testable Property 6: a
// flush against an unopened (no backing file) persister
// must not silently drop buffered samples.
func TestPersister_FlushFailurePreservesBuffer(t *testing.T) {
	p := NewPersister("/nonexistent/dir/out.ndjson", time.Hour, nil)
	p.Append(metrics.Sample{SystemMetrics: metrics.SystemMetrics{Timestamp: 1}})
	p.Flush()
	assert.Equal(t, 1, p.Len(), "flush with no open file must not drop the buffer")
}

// TestPersister_RunFlushesOnTickerCadence is scenario S6: samples
// appended within one flush interval land together as whole NDJSON
// lines, never partial.
func TestPersister_RunFlushesOnTickerCadence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.ndjson")

	p := NewPersister(path, 20*time.Millisecond, nil)
	require.NoError(t, p.Open())

	done := make(chan struct{})
	go p.Run(done)

	p.Append(metrics.Sample{SystemMetrics: metrics.SystemMetrics{Timestamp: 0}})
	p.Append(metrics.Sample{SystemMetrics: metrics.SystemMetrics{Timestamp: 1}})
	p.Append(metrics.Sample{SystemMetrics: metrics.SystemMetrics{Timestamp: 2}})
	time.Sleep(60 * time.Millisecond)
	p.Append(metrics.Sample{SystemMetrics: metrics.SystemMetrics{Timestamp: 3}})

	close(done)
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, p.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	sc := bufio.NewScanner(f)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	assert.Len(t, lines, 4)
	for _, l := range lines {
		var got metrics.SystemMetrics
		assert.NoError(t, json.Unmarshal([]byte(l), &got))
	}
}

func TestPersister_RunFlushesOnDoneClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.ndjson")

	p := NewPersister(path, time.Hour, nil)
	require.NoError(t, p.Open())
	p.Append(metrics.Sample{SystemMetrics: metrics.SystemMetrics{Timestamp: 1}})

	done := make(chan struct{})
	runDone := make(chan struct{})
	go func() {
		p.Run(done)
		close(runDone)
	}()
	close(done)

	select {
	case <-runDone:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after done was closed")
	}
	assert.Equal(t, 0, p.Len())
}
