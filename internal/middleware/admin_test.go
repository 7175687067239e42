package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"wadhifa/internal/middleware"
)

func adminProbe(t *testing.T) (http.Handler, *string) {
	t.Helper()
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.AdminEmail(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return middleware.AdminOnly("boss@corp.example", "@corp.example")(next), &seen
}

func TestAdminOnlyExactEmail(t *testing.T) {
	handler, seen := adminProbe(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set(middleware.IdentityHeader, "boss@corp.example")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Result().StatusCode)
	require.Equal(t, "boss@corp.example", *seen)
}

func TestAdminOnlyDomainSuffix(t *testing.T) {
	handler, seen := adminProbe(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set(middleware.IdentityHeader, "ops@corp.example")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Result().StatusCode)
	require.Equal(t, "ops@corp.example", *seen)
}

func TestAdminOnlyForbidden(t *testing.T) {
	handler, _ := adminProbe(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set(middleware.IdentityHeader, "stranger@elsewhere.example")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Result().StatusCode)
}

func TestAdminOnlyMissingHeader(t *testing.T) {
	handler, _ := adminProbe(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Result().StatusCode)
}
