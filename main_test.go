package main

import (
	"testing"

	"github.com/nkust-web/campus/config"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ReturnsStartupErrors(t *testing.T) {
	log, _ := logtest.NewNullLogger()

	cfg, err := config.Load("does-not-exist.yaml")
	require.NoError(t, err)
	cfg.App.Mode = "test"
	cfg.RateLimit.Burst = 0
	err = run(cfg, log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")

	cfg, err = config.Load("does-not-exist.yaml")
	require.NoError(t, err)
	cfg.App.Mode = "test"
	cfg.Database.Host = "127.0.0.1"
	cfg.Database.Port = "1"
	err = run(cfg, log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB connection error")
}
