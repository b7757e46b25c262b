package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/labportal/internal/config"
	"github.com/scienceol/labportal/internal/testutil"
	"github.com/scienceol/labportal/pkg/common/code"
	"github.com/scienceol/labportal/pkg/middleware/auth"
	"github.com/scienceol/labportal/pkg/middleware/session"
	"github.com/scienceol/labportal/pkg/repo/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	user := &model.UserData{ID: 42, Username: "analyst", IsStaff: true}
	token, expires, err := auth.SignToken(secret, user, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	got, err := auth.ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = auth.ParseToken([]byte("other"), token)
	assert.ErrorIs(t, err, code.InvalidToken)

	expired, _, err := auth.SignToken(secret, user, -time.Minute)
	require.NoError(t, err)
	_, err = auth.ParseToken(secret, expired)
	assert.ErrorIs(t, err, code.InvalidToken)

	_, err = auth.ParseToken(secret, "not-a-token")
	assert.ErrorIs(t, err, code.InvalidToken)
}

func TestGetCurrentUser(t *testing.T) {
	assert.Nil(t, auth.GetCurrentUser(context.Background()))

	user := &model.UserData{ID: 1}
	assert.Same(t, user, auth.GetCurrentUser(auth.WithUser(context.Background(), user)))

	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, auth.GetCurrentUser(ctx))
	ctx.Set(auth.USERKEY, user)
	assert.Same(t, user, auth.GetCurrentUser(ctx))
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/records/?page=2", auth.SafeNext("/records/?page=2"))
	assert.Equal(t, "/", auth.SafeNext(""))
	assert.Equal(t, "/", auth.SafeNext("https://evil.example"))
	assert.Equal(t, "/", auth.SafeNext("//evil.example"))
	assert.Equal(t, "/", auth.SafeNext("/\\evil.example"))
}

func newEngine(store session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	whoami := func(ctx *gin.Context) {
		user := auth.GetCurrentUser(ctx)
		ctx.String(http.StatusOK, user.Username)
	}
	g.GET("/records/", auth.RequireLogin(store), whoami)
	g.GET("/api/v1/records", auth.AuthAPI(store), whoami)
	return g
}

func loginCookie(t *testing.T, store session.Store) *http.Cookie {
	t.Helper()
	id, err := store.Create(context.Background(), &session.Data{UserID: 3, Username: "analyst"})
	require.NoError(t, err)
	return &http.Cookie{Name: config.Global().Session.CookieName, Value: id}
}

func TestRequireLogin(t *testing.T) {
	store, _ := testutil.NewSessionStore(t)
	g := newEngine(store)

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/records/?page=2", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login/?next=%2Frecords%2F%3Fpage%3D2", w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/records/", nil)
	req.AddCookie(loginCookie(t, store))
	w = httptest.NewRecorder()
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "analyst", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/records/", nil)
	req.AddCookie(&http.Cookie{Name: config.Global().Session.CookieName, Value: "stale"})
	w = httptest.NewRecorder()
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestAuthAPI(t *testing.T) {
	store, _ := testutil.NewSessionStore(t)
	g := newEngine(store)

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/records", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "not logged in")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/records", nil)
	req.Header.Set("Authorization", "Token abc")
	w = httptest.NewRecorder()
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, _, err := auth.SignToken([]byte(config.Global().Auth.JWTSecret), &model.UserData{ID: 9, Username: "bot"}, time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/v1/records", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bot", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/v1/records", nil)
	req.AddCookie(loginCookie(t, store))
	w = httptest.NewRecorder()
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
