// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/food-rescue/internal/config"
	"github.com/MKhiriev/food-rescue/internal/logger"
	"github.com/MKhiriev/food-rescue/internal/mock"
	"github.com/MKhiriev/food-rescue/internal/service"
	"github.com/MKhiriev/food-rescue/internal/utils"
	"github.com/MKhiriev/food-rescue/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testToken = "test-token"

type serviceMocks struct {
	auth      *mock.MockAuthService
	inventory *mock.MockInventoryService
	lifecycle *mock.MockLifecycleService
	appInfo   *mock.MockAppInfoService
}

func newTestRouter(t *testing.T) (http.Handler, serviceMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := serviceMocks{
		auth:      mock.NewMockAuthService(ctrl),
		inventory: mock.NewMockInventoryService(ctrl),
		lifecycle: mock.NewMockLifecycleService(ctrl),
		appInfo:   mock.NewMockAppInfoService(ctrl),
	}
	services := &service.Services{
		AuthService:      m.auth,
		InventoryService: m.inventory,
		LifecycleService: m.lifecycle,
		AppInfoService:   m.appInfo,
	}

	h := NewHandler(services, config.Server{RequestTimeout: 5 * time.Second}, logger.Nop())
	return h.Init(), m
}

// authorize makes req carry a token that the auth mock resolves to p.
func (m serviceMocks) authorize(req *http.Request, p models.Principal) {
	req.Header.Set("Authorization", "Bearer "+testToken)
	m.auth.EXPECT().ParseToken(gomock.Any(), testToken).Return(models.Token{
		UserID: p.UserID,
		Login:  p.Login,
		Roles:  p.Roles,
	}, nil)
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func jsonRequest(method, target, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), "body: %s", rr.Body.String())
	return body.Error
}

var (
	donor     = models.Principal{UserID: 1, Login: "bakery", Roles: models.Roles{Donor: true}}
	volunteer = models.Principal{UserID: 2, Login: "alex", Roles: models.Roles{Volunteer: true}}
)

// ── Routing ─────────────────────────────────────────────────────────────────

func TestRoutes_UnsupportedMethodIsNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, tc := range []struct{ method, target string }{
		{http.MethodDelete, "/api/items"},
		{http.MethodPatch, "/api/items/7"},
		{http.MethodGet, "/api/user/register"},
	} {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			rr := serve(router, httptest.NewRequest(tc.method, tc.target, nil))
			assert.Equal(t, http.StatusNotFound, rr.Code)
		})
	}
}

func TestRoutes_UnknownPath(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRoutes_ProtectedRoutesRequireToken(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, tc := range []struct{ method, target string }{
		{http.MethodGet, "/api/items"},
		{http.MethodPost, "/api/items"},
		{http.MethodGet, "/api/items/1"},
		{http.MethodGet, "/api/items/1/claims"},
		{http.MethodPost, "/api/items/1/claims"},
		{http.MethodPost, "/api/claims/1/proof"},
		{http.MethodGet, "/api/claims/proof/proof_x.jpg"},
		{http.MethodPut, "/api/user/password"},
	} {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			rr := serve(router, httptest.NewRequest(tc.method, tc.target, nil))
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestRoutes_TraceIDHeaderOnEveryResponse(t *testing.T) {
	router, m := newTestRouter(t)
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.0.0")

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(traceIDHeader, "trace-42")
	rr := serve(router, req)

	assert.Equal(t, "trace-42", rr.Header().Get(traceIDHeader))
}

// ── Version ─────────────────────────────────────────────────────────────────

func TestGetServerVersion(t *testing.T) {
	router, m := newTestRouter(t)
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.2.3")

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))
	assert.Equal(t, "1.2.3", rr.Body.String())
}

func TestGetVersionInfo(t *testing.T) {
	router, m := newTestRouter(t)
	info := models.VersionInfo{Version: "1.2.3", Build: "v1.2.3", Date: "2026-01-01", Commit: "abc123"}
	m.appInfo.EXPECT().GetVersionInfo(gomock.Any()).Return(info)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/api/version/build", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got models.VersionInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, info, got)
}
