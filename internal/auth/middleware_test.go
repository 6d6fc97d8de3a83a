package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolhub/schoolhub/internal/shared"
)

func decodeError(t *testing.T, res *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	return body["error"]
}

func issueShort(t *testing.T, m *Manager, p *shared.Principal) string {
	t.Helper()
	token, err := m.IssueShortToken(p)
	require.NoError(t, err)
	return token
}

func TestSchoolAdminGateMissingToken(t *testing.T) {
	gates := Gates{Tokens: newTestManager()}
	handler := gates.SchoolAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "unauthorized", decodeError(t, res))
}

func TestSchoolAdminGateInvalidToken(t *testing.T) {
	gates := Gates{Tokens: newTestManager()}
	handler := gates.SchoolAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TokenHeader, "not-a-token")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	// Verification failures are indistinguishable from a missing token.
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "unauthorized", decodeError(t, res))
}

func TestSchoolAdminGateExpiredToken(t *testing.T) {
	expired := NewManager("test-secret", "schoolhub-test", -time.Minute, time.Hour)
	token := issueShort(t, expired, &shared.Principal{UserID: "U1", Role: shared.RoleSchoolAdmin, SchoolID: "S1"})

	gates := Gates{Tokens: newTestManager()}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TokenHeader, token)
	res := httptest.NewRecorder()
	gates.SchoolAdmin(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestSchoolAdminGateRoleFloor(t *testing.T) {
	m := newTestManager()
	gates := Gates{Tokens: m}
	token := issueShort(t, m, &shared.Principal{UserID: "U1", Role: shared.RoleStudent, SchoolID: "S1"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TokenHeader, token)
	res := httptest.NewRecorder()
	gates.SchoolAdmin(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(res, req)

	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Equal(t, "forbidden: school admin access required", decodeError(t, res))
}

func TestSchoolAdminGateForwardsPrincipal(t *testing.T) {
	m := newTestManager()
	gates := Gates{Tokens: m}

	for _, role := range []shared.Role{shared.RoleSchoolAdmin, shared.RoleSuperAdmin} {
		token := issueShort(t, m, &shared.Principal{UserID: "U1", Role: role, SchoolID: "S1"})

		var got *shared.Principal
		handler := gates.SchoolAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = shared.PrincipalFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(TokenHeader, token)
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)

		require.Equal(t, http.StatusOK, res.Code)
		require.NotNil(t, got)
		assert.Equal(t, role, got.Role)
		assert.Equal(t, "U1", got.UserID)
	}
}

func TestSuperAdminGateRejectsSchoolAdmin(t *testing.T) {
	m := newTestManager()
	gates := Gates{Tokens: m}
	token := issueShort(t, m, &shared.Principal{UserID: "U1", Role: shared.RoleSchoolAdmin, SchoolID: "S1"})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(TokenHeader, token)
	res := httptest.NewRecorder()
	gates.SuperAdmin(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(res, req)

	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Equal(t, "forbidden: superadmin access required", decodeError(t, res))
}

func TestSuperAdminGateAdmitsSuperadmin(t *testing.T) {
	m := newTestManager()
	gates := Gates{Tokens: m}
	token := issueShort(t, m, &shared.Principal{UserID: "U9", Role: shared.RoleSuperAdmin})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(TokenHeader, token)
	res := httptest.NewRecorder()
	gates.SuperAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})).ServeHTTP(res, req)

	assert.Equal(t, http.StatusCreated, res.Code)
}
