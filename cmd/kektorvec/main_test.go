package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanonone/kektorvec/internal/config"
	"github.com/sanonone/kektorvec/internal/server"
	"github.com/sanonone/kektorvec/pkg/engine"
)

func TestRunServerStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Port = 0
	cfg.LogLevel = "error"
	cfg.ShutdownTimeout = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServer(ctx, cfg) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunServerRejectsInvalidMetric(t *testing.T) {
	cfg := config.Default()
	cfg.Metric = "hamming"
	cfg.LogLevel = "error"

	err := runServer(context.Background(), cfg)
	assert.ErrorContains(t, err, "invalid engine configuration")
}

func TestNamespacesCommand(t *testing.T) {
	eng, err := engine.New(engine.DefaultOptions())
	require.NoError(t, err)
	_, err = eng.Upsert(engine.UpsertRequest{Namespace: "docs", Vectors: []engine.Vector{{ID: "a", Values: []float32{1, 2, 3}}}})
	require.NoError(t, err)

	ts := httptest.NewServer(server.NewServer(eng, server.Options{}).Handler())
	defer ts.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"namespaces", "--addr", ts.URL})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "NAMESPACE")
	assert.Regexp(t, `docs\s+3\s+1\s+16\s+200\s+64`, out.String())
}
