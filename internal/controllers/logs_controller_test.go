package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"snaplink/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogsEnv(t *testing.T) (*testEnv, *zap.Logger) {
	t.Helper()

	buf := logger.NewRingBuffer(100)
	log := zap.New(buf.Core(zapcore.DebugLevel))

	lc := NewLogsController(buf)
	router := gin.New()
	router.GET("/api/v1/logs", lc.GetLogs)
	router.DELETE("/api/v1/logs", lc.ClearLogs)

	return &testEnv{router: router}, log
}

func TestGetLogs(t *testing.T) {
	env, log := newLogsEnv(t)
	log.Info("created shortened URL")
	log.Error("write skipped")

	w := env.do(http.MethodGet, "/api/v1/logs", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var entries []logger.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "created shortened URL", entries[0].Message)

	// Level filter narrows the result
	w = env.do(http.MethodGet, "/api/v1/logs?level=error", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "write skipped", entries[0].Message)
}

func TestClearLogs(t *testing.T) {
	env, log := newLogsEnv(t)
	log.Info("something")

	w := env.do(http.MethodDelete, "/api/v1/logs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/v1/logs", nil)
	var entries []logger.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	assert.Empty(t, entries)
}
