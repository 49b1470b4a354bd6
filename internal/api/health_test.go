// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/recursos/internal/api"
)

func TestReadiness(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	broken := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		deps       api.HealthDependencies
		wantStatus int
		wantBody   string
		wantChecks int
	}{
		{"all healthy", api.HealthDependencies{CheckDatabase: healthy, CheckCache: healthy}, http.StatusOK, "ready", 2},
		{"without redis", api.HealthDependencies{CheckDatabase: healthy}, http.StatusOK, "ready", 1},
		{"database down", api.HealthDependencies{CheckDatabase: broken, CheckCache: healthy}, http.StatusServiceUnavailable, "degraded", 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, readiness := api.NewHealthHandlers(tc.deps, discard())

			rec := httptest.NewRecorder()
			readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tc.wantStatus, rec.Code)

			var body struct {
				Status string `json:"status"`
				Checks []struct {
					Name string `json:"name"`
					OK   bool   `json:"ok"`
				} `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantBody, body.Status)
			assert.Len(t, body.Checks, tc.wantChecks)
		})
	}
}
