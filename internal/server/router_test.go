package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taskly-be/internal/auth"
	"taskly-be/internal/jwt"
	"taskly-be/internal/repository"
	"taskly-be/internal/service"
	"taskly-be/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type client struct {
	t      *testing.T
	router http.Handler
}

func newClient(t *testing.T, limits RateLimits) *client {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	tokens := jwt.NewJWTService("0123456789abcdef0123456789abcdef", time.Hour, "taskly-test", testutil.NewMemoryCache())

	router := NewRouter(ctx, Deps{
		AuthService: service.NewAuthService(users, tokens, auth.NewBcryptHasher(bcrypt.MinCost)),
		TaskService: service.NewTaskService(repository.NewTaskRepository(db), service.NewAuthenticator(tokens, users)),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		RateLimits:  limits,
	})
	return &client{t: t, router: router}
}

func defaultLimits() RateLimits {
	return RateLimits{RPS: 1000, Burst: 1000, AuthRPS: 1000, AuthBurst: 1000}
}

func (c *client) do(method, path, token string, body any) (int, map[string]any, string) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	var decoded map[string]any
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &decoded), w.Body.String())
	return w.Code, decoded, w.Body.String()
}

func (c *client) register(name, email string) string {
	c.t.Helper()
	status, body, raw := c.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"full_name": name,
		"email":     email,
		"password":  "password123",
	})
	require.Equal(c.t, http.StatusCreated, status, raw)
	return body["token"].(string)
}

func TestHealth(t *testing.T) {
	c := newClient(t, defaultLimits())
	status, body, _ := c.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestRegisterAndLogin(t *testing.T) {
	c := newClient(t, defaultLimits())

	status, body, raw := c.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"full_name":    "Ada Lovelace",
		"email":        "ada@example.com",
		"phone_number": "555-0100",
		"password":     "password123",
	})
	require.Equal(t, http.StatusCreated, status, raw)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User registered", body["message"])
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.NotEmpty(t, user["id"])
	assert.Equal(t, "555-0100", user["phone_number"])
	assert.NotContains(t, raw, "password")

	status, body, raw = c.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "ada@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, status, raw)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, map[string]any{
		"full_name":    "Ada Lovelace",
		"phone_number": "555-0100",
		"email":        "ada@example.com",
		"address":      nil,
		"image":        nil,
	}, body["user"])

	status, body, raw = c.do(http.MethodGet, "/api/user", body["token"].(string), nil)
	require.Equal(t, http.StatusOK, status, raw)
	assert.Equal(t, "Ada Lovelace", body["user"].(map[string]any)["full_name"])
	assert.NotContains(t, raw, "password")
}

func TestRegisterValidationErrors(t *testing.T) {
	c := newClient(t, defaultLimits())
	c.register("Ada Lovelace", "ada@example.com")

	status, body, _ := c.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"full_name": "Ada Again",
		"email":     "ada@example.com",
		"password":  "password123",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "The email has already been taken.", body["errors"].(map[string]any)["email"])

	status, body, _ = c.do(http.MethodPost, "/api/auth/register", "", map[string]any{"email": "nope"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "full_name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	c := newClient(t, defaultLimits())
	c.register("Ada Lovelace", "ada@example.com")

	wrongStatus, _, wrongBody := c.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "ada@example.com", "password": "not-the-password",
	})
	unknownStatus, _, unknownBody := c.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "nobody@example.com", "password": "password123",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongStatus)
	assert.Equal(t, wrongStatus, unknownStatus)
	assert.JSONEq(t, `{"success":false,"message":"email or password invalid"}`, wrongBody)
	assert.JSONEq(t, wrongBody, unknownBody)
}

func TestTaskLifecycle(t *testing.T) {
	c := newClient(t, defaultLimits())
	token := c.register("Ada Lovelace", "ada@example.com")

	status, body, raw := c.do(http.MethodPost, "/api/tasks", token, map[string]any{"title": "x"})
	require.Equal(t, http.StatusCreated, status, raw)
	assert.Equal(t, "Task created success", body["message"])
	task := body["data"].(map[string]any)
	id := task["id"].(string)
	assert.Equal(t, "pending", task["status"])

	status, body, _ = c.do(http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ada Lovelace", body["user"].(map[string]any)["full_name"])
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "x", data[0].(map[string]any)["title"])

	status, body, _ = c.do(http.MethodPut, "/api/tasks/"+id, token, map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Task updated success", body["message"])
	assert.Equal(t, "completed", body["data"].(map[string]any)["status"])

	status, body, _ = c.do(http.MethodPatch, "/api/tasks/"+id, token, map[string]any{"title": "y"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "y", body["data"].(map[string]any)["title"])

	status, body, _ = c.do(http.MethodGet, "/api/tasks/"+id, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "completed", body["data"].(map[string]any)["status"])

	status, body, _ = c.do(http.MethodDelete, "/api/tasks/"+id, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Task deleted success", body["message"])

	status, _, _ = c.do(http.MethodDelete, "/api/tasks/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _, _ = c.do(http.MethodPut, "/api/tasks/"+id, token, map[string]any{"title": "z"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestEmptyListRendersArray(t *testing.T) {
	c := newClient(t, defaultLimits())
	token := c.register("Ada Lovelace", "ada@example.com")

	_, _, raw := c.do(http.MethodGet, "/api/tasks", token, nil)
	assert.Contains(t, raw, `"data":[]`)
}

func TestOwnershipOverHTTP(t *testing.T) {
	c := newClient(t, defaultLimits())
	alice := c.register("Alice Smith", "alice@example.com")
	bob := c.register("Bob Jones", "bob@example.com")

	_, body, _ := c.do(http.MethodPost, "/api/tasks", alice, map[string]any{"title": "private"})
	id := body["data"].(map[string]any)["id"].(string)

	status, body, _ := c.do(http.MethodDelete, "/api/tasks/"+id, bob, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "This action is unauthorized.", body["message"])

	status, _, _ = c.do(http.MethodGet, "/api/tasks/"+id, bob, nil)
	assert.Equal(t, http.StatusForbidden, status)

	_, body, _ = c.do(http.MethodGet, "/api/tasks", bob, nil)
	assert.Empty(t, body["data"])
}

func TestUnauthenticatedRequests(t *testing.T) {
	c := newClient(t, defaultLimits())

	status, body, _ := c.do(http.MethodGet, "/api/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "No token provided", body["message"])

	status, body, _ = c.do(http.MethodPost, "/api/tasks", "garbage", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid or expired token", body["message"])

	status, _, _ = c.do(http.MethodGet, "/api/user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLogoutRevokesToken(t *testing.T) {
	c := newClient(t, defaultLimits())
	token := c.register("Ada Lovelace", "ada@example.com")

	for _, tok := range []string{token, token, "", "garbage"} {
		status, body, _ := c.do(http.MethodPost, "/api/auth/logout", tok, nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "logged out", body["message"])
	}

	status, _, _ := c.do(http.MethodGet, "/api/tasks", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuthRoutesAreRateLimited(t *testing.T) {
	c := newClient(t, RateLimits{RPS: 1000, Burst: 1000, AuthRPS: 0.001, AuthBurst: 1})

	status, _, _ := c.do(http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, body, _ := c.do(http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, false, body["success"])

	// Non-auth routes use the general limiter.
	status, _, _ = c.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
}
