// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

package api_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/api"
)

func probeHandlers(t *testing.T, deps api.HealthDependencies) (liveness, readiness http.HandlerFunc) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return api.NewHealthHandlers(deps, logger)
}

/*
TestHealth_Liveness verifies the liveness probe answers without consulting
any dependency.
*/
func TestHealth_Liveness(t *testing.T) {
	liveness, _ := probeHandlers(t, api.HealthDependencies{})

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"ok"`)
}

/*
TestHealth_ReadinessReady verifies the readiness probe reports every passing
check in the success envelope.
*/
func TestHealth_ReadinessReady(t *testing.T) {
	_, readiness := probeHandlers(t, api.HealthDependencies{
		CheckDatabase: func() error { return nil },
		CheckCache:    func() error { return nil },
	})

	recorder := httptest.NewRecorder()
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Status string `json:"status"`
			Checks []struct {
				Name string `json:"name"`
				IsOK bool   `json:"ok"`
			} `json:"checks"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "ready", body.Data.Status)
	require.Len(t, body.Data.Checks, 2)
	for _, check := range body.Data.Checks {
		assert.True(t, check.IsOK, check.Name)
	}
}

/*
TestHealth_ReadinessDegraded verifies a failing dependency turns the probe
into a 503 error envelope, naming the failing check in the details.
*/
func TestHealth_ReadinessDegraded(t *testing.T) {
	_, readiness := probeHandlers(t, api.HealthDependencies{
		CheckDatabase: func() error { return nil },
		CheckCache:    func() error { return errors.New("dial tcp: connection refused") },
	})

	recorder := httptest.NewRecorder()
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var body struct {
		Success    bool   `json:"success"`
		Message    string `json:"message"`
		StatusCode int    `json:"statusCode"`
		Details    []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Service not ready", body.Message)
	assert.Equal(t, http.StatusServiceUnavailable, body.StatusCode)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "redis", body.Details[0].Field)
	assert.Contains(t, body.Details[0].Message, "connection refused")
}
