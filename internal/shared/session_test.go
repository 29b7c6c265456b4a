package shared_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmc-console/hmc-console/internal/shared"
)

func newSessionManager(t *testing.T) (*shared.SessionManager, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return shared.NewSessionManager(client, "test_session", "secret", time.Hour, false), mr, client
}

func sessionCookie(t *testing.T, res *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range res.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

func TestSessionLoginRoundTrip(t *testing.T) {
	sm, _, _ := newSessionManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	sess, err := sm.Load(ctx, req)
	require.NoError(t, err)
	assert.False(t, sess.IsAuthenticated())
	anonymousID := sess.ID

	sess.Login("header.payload.sig")
	res := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, res, req, sess))

	cookie := sessionCookie(t, res, "test_session")
	if cookie.Value == anonymousID {
		t.Fatalf("expected session id to rotate on login")
	}

	next := httptest.NewRequest(http.MethodGet, "/companies", nil)
	next.AddCookie(cookie)
	loaded, err := sm.Load(ctx, next)
	require.NoError(t, err)
	assert.True(t, loaded.IsAuthenticated())
	assert.Equal(t, "header.payload.sig", loaded.Token())
}

func TestSessionLoginDeletesPreviousKey(t *testing.T) {
	sm, mr, _ := newSessionManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	sess, err := sm.Load(ctx, req)
	require.NoError(t, err)
	require.NoError(t, sm.Commit(ctx, httptest.NewRecorder(), req, sess))
	oldID := sess.ID
	require.True(t, mr.Exists("hmc:session:"+oldID))

	post := httptest.NewRequest(http.MethodPost, "/login", nil)
	post.AddCookie(&http.Cookie{Name: sm.CookieName(), Value: oldID})
	loaded, err := sm.Load(ctx, post)
	require.NoError(t, err)
	loaded.Login("tok")
	require.NoError(t, sm.Commit(ctx, httptest.NewRecorder(), post, loaded))

	assert.False(t, mr.Exists("hmc:session:"+oldID))
	assert.True(t, mr.Exists("hmc:session:"+loaded.ID))
}

func TestSessionBlankTokenIsAnonymous(t *testing.T) {
	sm, _, _ := newSessionManager(t)
	sess, err := sm.Load(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	sess.Set(shared.TokenKey, "   ")
	assert.False(t, sess.IsAuthenticated())

	var nilSession *shared.Session
	assert.False(t, nilSession.IsAuthenticated())
	assert.Equal(t, "", shared.TokenFromContext(context.Background()))
}

func TestSessionLogoutKeepsFlash(t *testing.T) {
	sm, _, _ := newSessionManager(t)
	ctx := context.Background()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	sess, err := sm.Load(ctx, req)
	require.NoError(t, err)
	sess.Login("tok")

	sess.Logout()
	sess.AddFlash(shared.FlashMessage{Kind: shared.FlashInfo, Message: "Signed out."})
	res := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, res, req, sess))

	next := httptest.NewRequest(http.MethodGet, "/login", nil)
	next.AddCookie(sessionCookie(t, res, "test_session"))
	loaded, err := sm.Load(ctx, next)
	require.NoError(t, err)
	assert.False(t, loaded.IsAuthenticated())
	flash := loaded.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, "Signed out.", flash.Message)
	assert.Nil(t, loaded.PopFlash())
}

func TestSessionFlashSurvivesRedirect(t *testing.T) {
	sm, _, _ := newSessionManager(t)
	ctx := context.Background()
	req := httptest.NewRequest(http.MethodPost, "/companies", nil)
	sess, err := sm.Load(ctx, req)
	require.NoError(t, err)
	sess.AddFlash(shared.FlashMessage{Kind: shared.FlashSuccess, Message: "Company created."})
	res := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, res, req, sess))
	cookie := sessionCookie(t, res, "test_session")

	get := httptest.NewRequest(http.MethodGet, "/companies", nil)
	get.AddCookie(cookie)
	loaded, err := sm.Load(ctx, get)
	require.NoError(t, err)
	flash := loaded.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, shared.FlashSuccess, flash.Kind)
	require.NoError(t, sm.Commit(ctx, httptest.NewRecorder(), get, loaded))

	again := httptest.NewRequest(http.MethodGet, "/companies", nil)
	again.AddCookie(cookie)
	reloaded, err := sm.Load(ctx, again)
	require.NoError(t, err)
	assert.Nil(t, reloaded.PopFlash())
}

func TestSessionUnknownCookieGetsFreshID(t *testing.T) {
	sm, _, _ := newSessionManager(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sm.CookieName(), Value: "attacker-chosen"})
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, "attacker-chosen", sess.ID)
}

func TestSessionDestroyClearsCookie(t *testing.T) {
	sm, mr, _ := newSessionManager(t)
	ctx := context.Background()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	require.NoError(t, err)
	require.NoError(t, sm.Commit(ctx, httptest.NewRecorder(), req, sess))

	sm.Destroy(sess)
	res := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, res, req, sess))
	assert.False(t, mr.Exists("hmc:session:"+sess.ID))
	assert.Equal(t, -1, sessionCookie(t, res, "test_session").MaxAge)
}

func TestSessionFormEchoIsOneShot(t *testing.T) {
	sm, _, _ := newSessionManager(t)
	sess, err := sm.Load(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	sess.StashForm("/companies|create", shared.FormEcho{
		Values: map[string][]string{"name": {"Acme"}},
		Errors: map[string]string{"general": "Company Name and Address are required."},
	})

	echo, ok := sess.PopForm("/companies|create")
	require.True(t, ok)
	assert.Equal(t, "Acme", echo.Values.Get("name"))
	assert.Equal(t, "Company Name and Address are required.", echo.Errors["general"])

	_, ok = sess.PopForm("/companies|create")
	assert.False(t, ok)
	_, ok = sess.PopForm("/companies|edit:c1")
	assert.False(t, ok)
}
