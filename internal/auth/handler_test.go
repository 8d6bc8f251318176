package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/css-society/portal/internal/platform/httpx"
	"github.com/css-society/portal/internal/rbac"
)

type mockActivator struct {
	err      error
	rollNo   string
	email    string
	password string
}

func (m *mockActivator) Activate(ctx context.Context, rollNo, email, password string) error {
	m.rollNo, m.email, m.password = rollNo, email, password
	return m.err
}

func newTestRouter(t *testing.T, service *Service, activator Activator) http.Handler {
	t.Helper()
	if activator == nil {
		activator = &mockActivator{}
	}
	r := chi.NewRouter()
	r.Route("/auth", NewHandler(slog.Default(), service, activator).MountRoutes)
	return r
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestLoginEndpoint(t *testing.T) {
	service, admins, _ := newTestService(t)
	admins.add(&Administrator{ID: 1, Email: "root@org.test", PasswordHash: hashPassword(t, "CorrectPass1")})
	router := newTestRouter(t, service, nil)

	rec := postJSON(t, router, "/auth/login", map[string]string{
		"email": "root@org.test", "password": "CorrectPass1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token   string  `json:"token"`
		Profile Profile `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, rbac.KindAdministrator, resp.Profile.Kind)
	assert.True(t, resp.Profile.Permissions.IsAdmin)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	service, admins, members := newTestService(t)
	admins.add(&Administrator{ID: 1, Email: "root@org.test", PasswordHash: hashPassword(t, "CorrectPass1")})
	members.add(&MemberAccount{
		ID: 7, Email: "a@b.test", Approved: false,
		PasswordHash: hashPassword(t, "SecretPass1"),
	})
	router := newTestRouter(t, service, nil)

	bodies := map[string]map[string]string{
		"unknown email":     {"email": "nobody@org.test", "password": "whatever1"},
		"wrong password":    {"email": "root@org.test", "password": "WrongPass1"},
		"unapproved member": {"email": "a@b.test", "password": "SecretPass1"},
		"not an email":      {"email": "root", "password": "CorrectPass1"},
	}
	var responses []string
	for name, body := range bodies {
		rec := postJSON(t, router, "/auth/login", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
		responses = append(responses, rec.Body.String())
	}
	for _, body := range responses[1:] {
		assert.Equal(t, responses[0], body)
	}
}

func TestActivateEndpoint(t *testing.T) {
	service, _, _ := newTestService(t)
	activator := &mockActivator{}
	router := newTestRouter(t, service, activator)

	rec := postJSON(t, router, "/auth/activate", map[string]string{
		"rollNo": "001-CS-24", "email": "a@b.test", "password": "SecretPass1",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "001-CS-24", activator.rollNo)
	assert.Equal(t, "a@b.test", activator.email)
	assert.Equal(t, "SecretPass1", activator.password)
}

func TestActivateEndpointFailures(t *testing.T) {
	service, _, _ := newTestService(t)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"no matching record", httpx.ErrNotFound, http.StatusNotFound},
		{"short password", httpx.ErrValidation, http.StatusBadRequest},
		{"already activated", httpx.ErrDuplicate, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(t, service, &mockActivator{err: tc.err})
			rec := postJSON(t, router, "/auth/activate", map[string]string{
				"rollNo": "001-CS-24", "email": "a@b.test", "password": "SecretPass1",
			})
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestActivateNotFoundBodyStaysGeneric(t *testing.T) {
	service, _, _ := newTestService(t)
	router := newTestRouter(t, service, &mockActivator{err: httpx.ErrNotFound})

	rec := postJSON(t, router, "/auth/activate", map[string]string{
		"rollNo": "001-CS-24", "email": "a@b.test", "password": "SecretPass1",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "roll")
	assert.NotContains(t, rec.Body.String(), "email")
}
