// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(t *testing.T) *Service {
	t.Cleanup(func() { logrus.SetOutput(os.Stderr) })
	return &Service{
		HTTPHost:       "127.0.0.1",
		HTTPPort:       "0",
		LogLevel:       "info",
		LogDestination: "file",
		LogFile:        filepath.Join(t.TempDir(), "infrastructure.log"),
	}
}

func TestRun_Shutdown(t *testing.T) {
	service := testService(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- run(ctx, service) }()
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("service did not shut down")
	}

	data, err := os.ReadFile(service.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "shutting down")
}

func TestRun_Errors(t *testing.T) {
	service := testService(t)
	service.ModelManifests = filepath.Join(t.TempDir(), "missing")
	err := run(context.Background(), service)
	assert.ErrorContains(t, err, "cannot register manifests")

	service = testService(t)
	service.LogLevel = "chatty"
	assert.Error(t, run(context.Background(), service))

	service = testService(t)
	service.LogDestination = "carrier-pigeon"
	assert.Error(t, run(context.Background(), service))
}
