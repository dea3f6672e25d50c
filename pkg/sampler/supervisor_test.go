package sampler

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/heartbeat/pkg/opsmetrics"
)

// script runs a short inline shell program as the "collector", giving
// deterministic, portable stdout/stderr without depending on a real
// native binary.
func script(sh string) Invocation {
	return Invocation{Command: "sh", Args: []string{"-c", sh}}
}

func TestSupervisor_OrderPreservation(t *testing.T) {
	inv := script(`for i in 1 2 3 4 5; do echo "{\"timestamp\":$i,\"cpu_usage_percent\":$i}"; done`)
	s := New(inv, nil, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	samples, exits, err := s.Start(ctx)
	require.NoError(t, err)

	var got []int64
	for sm := range samples {
		got = append(got, sm.Timestamp)
	}
	status := <-exits

	assert.Equal(t, []int64{1, 2, 3, 4, 5}, got)
	assert.Equal(t, 0, status.Code)
	assert.False(t, status.Canceled)
}

func TestSupervisor_ParserToleranceSkipsGarbage(t *testing.T) {
	inv := script(`echo 'not json'; echo '{"timestamp":1}'; echo ''; echo '{"timestamp":2}'`)
	s := New(inv, nil, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	samples, exits, err := s.Start(ctx)
	require.NoError(t, err)

	var got []int64
	for sm := range samples {
		got = append(got, sm.Timestamp)
	}
	<-exits

	assert.Equal(t, []int64{1, 2}, got)
}

func TestSupervisor_NonZeroExitSurfaced(t *testing.T) {
	inv := script(`echo '{"timestamp":1}'; exit 3`)
	s := New(inv, nil, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	samples, exits, err := s.Start(ctx)
	require.NoError(t, err)

	for range samples {
	}
	status := <-exits
	assert.Equal(t, 3, status.Code)
}

func TestSupervisor_ObservesParseOutcomes(t *testing.T) {
	inv := script(`echo 'not json'; echo '{"timestamp":1}'; echo '{"timestamp":2}'`)
	s := New(inv, nil, 0)
	ops := opsmetrics.New()
	s.SetMetrics(ops)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	samples, exits, err := s.Start(ctx)
	require.NoError(t, err)

	for range samples {
	}
	<-exits

	rec := httptest.NewRecorder()
	ops.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/internal/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, "heartbeat_samples_ingested_total 2")
	assert.Contains(t, body, "heartbeat_parse_errors_total 1")
}

func TestSupervisor_SpawnFailureIsFatal(t *testing.T) {
	inv := Invocation{Command: "/nonexistent/collector-binary-xyz"}
	s := New(inv, nil, 0)
	_, _, err := s.Start(context.Background())
	assert.Error(t, err)
}

func TestSupervisor_StderrDoesNotBlockStdout(t *testing.T) {
	inv := script(`echo 'warn line' 1>&2; echo '{"timestamp":1}'`)
	s := New(inv, nil, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	samples, exits, err := s.Start(ctx)
	require.NoError(t, err)

	var got []int64
	for sm := range samples {
		got = append(got, sm.Timestamp)
	}
	<-exits
	assert.Equal(t, []int64{1}, got)
}
