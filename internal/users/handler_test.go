package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolhub/schoolhub/internal/auth"
	_ "github.com/schoolhub/schoolhub/testing"
)

func newTestRouter(t *testing.T) (chi.Router, *mockRepository) {
	t.Helper()
	repo := newMockRepository()
	tokens := auth.NewManager("test-secret", "schoolhub-test", time.Hour, 24*time.Hour)
	h := NewHandler(nil, NewService(repo, tokens))
	r := chi.NewRouter()
	r.Route("/api/users", h.MountRoutes)
	return r, repo
}

func TestCreateUserEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"username":"jane","email":"jane@s1.test","password":"hunter2hunter2","role":"school_admin","schoolId":"S1"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		User      map[string]any `json:"user"`
		LongToken string         `json:"longToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "jane", resp.User["username"])
	assert.NotEmpty(t, resp.LongToken)
	assert.NotContains(t, resp.User, "password")
	assert.NotContains(t, resp.User, "passwordHash")
}

func TestCreateUserEndpointValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing email", `{"username":"jane","password":"hunter2hunter2"}`, "email is required"},
		{"bad email", `{"username":"jane","email":"nope","password":"hunter2hunter2"}`, "email is invalid"},
		{"short password", `{"username":"jane","email":"jane@s1.test","password":"short"}`, "password is invalid"},
		{"unknown role", `{"username":"jane","email":"jane@s1.test","password":"hunter2hunter2","role":"janitor"}`, "role is invalid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(tc.body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"`+tc.want+`"}`, rec.Body.String())
		})
	}
}

func TestCreateUserEndpointDuplicate(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"username":"jane","email":"jane@s1.test","password":"hunter2hunter2"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body)))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"email already in use"}`, rec.Body.String())
}

func TestLoginEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	create := `{"username":"jane","email":"jane@s1.test","password":"hunter2hunter2","schoolId":"S1"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(create)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users/login",
		strings.NewReader(`{"email":"jane@s1.test","password":"hunter2hunter2"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		User      map[string]any `json:"user"`
		LongToken string         `json:"longToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "jane", resp.User["username"])
	assert.Equal(t, "S1", resp.User["schoolId"])
	assert.NotEmpty(t, resp.LongToken)
	assert.NotContains(t, resp.User, "password")
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users/login",
		strings.NewReader(`{"email":"ghost@s1.test","password":"hunter2hunter2"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, rec.Body.String())
}
