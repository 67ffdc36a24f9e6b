package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"goblog/auth"
	"goblog/models"
	"goblog/repositories"
	"goblog/services"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupServer wires the full API container over an in-memory SQLite database,
// mirroring the production wiring in main.
func setupServer(t *testing.T) *restful.Container {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}))

	log := zap.NewNop()
	sessions := auth.NewMemoryStore(24 * time.Hour)
	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)

	controllersToRegister := []interface {
		RegisterRoutes(ws *restful.WebService)
	}{
		NewAuthController(services.NewAuthService(userRepo, sessions), sessions, 24*time.Hour, log),
		NewUserController(services.NewUserService(userRepo), log),
		NewPostController(services.NewPostService(postRepo, userRepo), log),
		NewHealthController(db),
	}

	container := restful.NewContainer()
	for _, ctl := range controllersToRegister {
		ws := new(restful.WebService)
		ctl.RegisterRoutes(ws)
		container.Add(ws)
	}
	return container
}

func doJSON(t *testing.T, container *restful.Container, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)
	return recorder
}

func sessionCookie(t *testing.T, recorder *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range recorder.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestScenario_RegisterPostCascade(t *testing.T) {
	container := setupServer(t)

	// register("Alice","a@x.com","secret1") -> 201, user.id = 1
	resp := doJSON(t, container, "POST", "/api/auth/register", map[string]string{
		"name": "Alice", "email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var registered struct {
		Message string      `json:"message"`
		User    models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &registered))
	assert.Equal(t, "User registered successfully", registered.Message)
	assert.Equal(t, uint(1), registered.User.ID)
	cookie := sessionCookie(t, resp)
	assert.True(t, cookie.HttpOnly)

	// create post {title:"Hi", user_id:1} -> 201, post.user.name = "Alice"
	resp = doJSON(t, container, "POST", "/api/posts", map[string]any{
		"title": "Hi", "user_id": 1,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var post models.Post
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &post))
	require.NotNil(t, post.User)
	assert.Equal(t, "Alice", post.User.Name)

	// The password digest never appears in any payload.
	assert.NotContains(t, resp.Body.String(), "password")

	// delete user 1 -> 200
	resp = doJSON(t, container, "DELETE", "/api/users/1", nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	// GET /api/posts -> empty list, no orphaned posts
	resp = doJSON(t, container, "GET", "/api/posts", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var posts []models.Post
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &posts))
	assert.Empty(t, posts)
}

func TestScenario_ShortPasswordLeavesNoRow(t *testing.T) {
	container := setupServer(t)

	resp := doJSON(t, container, "POST", "/api/auth/register", map[string]string{
		"name": "Bob", "email": "b@x.com", "password": "short",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	assert.Equal(t, "Password must be at least 6 characters long", errResp.Error)

	resp = doJSON(t, container, "GET", "/api/users", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var users []models.User
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &users))
	assert.Empty(t, users)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	container := setupServer(t)

	resp := doJSON(t, container, "POST", "/api/auth/register", map[string]string{
		"name": "Alice", "email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	wrongPassword := doJSON(t, container, "POST", "/api/auth/login", map[string]string{
		"email": "a@x.com", "password": "wrongpass",
	})
	unknownEmail := doJSON(t, container, "POST", "/api/auth/login", map[string]string{
		"email": "nobody@x.com", "password": "whatever",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestAuth_SessionLifecycle(t *testing.T) {
	container := setupServer(t)

	// Anonymous whoami is rejected.
	resp := doJSON(t, container, "GET", "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = doJSON(t, container, "POST", "/api/auth/register", map[string]string{
		"name": "Alice", "email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	cookie := sessionCookie(t, resp)

	// Authenticated whoami returns the user.
	resp = doJSON(t, container, "GET", "/api/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var me struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &me))
	assert.Equal(t, "a@x.com", me.User.Email)

	// Logout destroys the session and clears the cookie.
	resp = doJSON(t, container, "POST", "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doJSON(t, container, "GET", "/api/auth/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// Logout without any session is still a success.
	resp = doJSON(t, container, "POST", "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	container := setupServer(t)

	resp := doJSON(t, container, "POST", "/api/users", map[string]string{"name": "Alice", "email": "a@x.com"})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doJSON(t, container, "POST", "/api/users", map[string]string{"name": "Clone", "email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	assert.Equal(t, "Email already exists", errResp.Error)
}

func TestMissingEntitiesReturn404(t *testing.T) {
	container := setupServer(t)

	for _, path := range []string{"/api/users/42", "/api/posts/42"} {
		resp := doJSON(t, container, "GET", path, nil)
		assert.Equal(t, http.StatusNotFound, resp.Code, path)

		resp = doJSON(t, container, "DELETE", path, nil)
		assert.Equal(t, http.StatusNotFound, resp.Code, path)
	}
}

func TestHealth(t *testing.T) {
	container := setupServer(t)

	resp := doJSON(t, container, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &health))
	assert.Equal(t, "OK", health.Status)
	assert.Equal(t, "Connected", health.Database)
	assert.NotEmpty(t, health.Timestamp)
}
