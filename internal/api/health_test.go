// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/emoticam/internal/api"
	"github.com/taibuivan/emoticam/internal/platform/constants"
)

// decodeData unwraps the standard success envelope into a generic map.
func decodeData(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	return envelope.Data
}

/*
TestLiveness verifies the liveness probe reports the service identity without
touching any dependency.
*/
func TestLiveness(t *testing.T) {
	liveness, _ := api.NewHealthHandlers(api.HealthDependencies{}, slog.Default())

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)

	data := decodeData(t, recorder)
	assert.Equal(t, "ok", data[constants.FieldStatus])
	assert.Equal(t, constants.AppName, data[constants.FieldApp])
	assert.Equal(t, constants.AppVersion, data[constants.FieldVersion])
}

/*
TestReadiness verifies the readiness probe aggregates dependency checks and
degrades to 503 when any one of them fails.
*/
func TestReadiness(t *testing.T) {
	healthy := func() error { return nil }
	broken := func() error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		deps       api.HealthDependencies
		wantCode   int
		wantStatus string
	}{
		{
			name:       "all_dependencies_healthy",
			deps:       api.HealthDependencies{CheckDatabase: healthy, CheckCache: healthy},
			wantCode:   http.StatusOK,
			wantStatus: "ready",
		},
		{
			name:       "cache_down_degrades_probe",
			deps:       api.HealthDependencies{CheckDatabase: healthy, CheckCache: broken},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "degraded",
		},
		{
			name:       "nil_checkers_are_skipped",
			deps:       api.HealthDependencies{},
			wantCode:   http.StatusOK,
			wantStatus: "ready",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, readiness := api.NewHealthHandlers(tc.deps, slog.Default())

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tc.wantCode, recorder.Code)

			data := decodeData(t, recorder)
			assert.Equal(t, tc.wantStatus, data[constants.FieldStatus])
		})
	}
}
