package sessiontransport_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/core/cookie"
	"github.com/dmitrymomot/contactform/core/session"
	"github.com/dmitrymomot/contactform/core/sessiontransport"
)

type testData struct {
	Theme string
}

func newTransport(t *testing.T, ttl time.Duration) (*sessiontransport.Cookie[testData], *session.MemoryStore[testData]) {
	t.Helper()

	store := session.NewMemoryStore[testData]()
	mgr := session.NewManager[testData](store, session.WithTTL(ttl))
	cm, err := cookie.New([]string{strings.Repeat("s", 32)})
	require.NoError(t, err)

	return sessiontransport.NewCookieFromConfig(sessiontransport.CookieConfig{}, mgr, cm), store
}

func requestWithCookies(w *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestCookie_LoadSaveRoundTrip(t *testing.T) {
	t.Parallel()

	transport, _ := newTransport(t, time.Hour)

	sess, err := transport.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.SetData(testData{Theme: "dark"})

	w := httptest.NewRecorder()
	saved, err := transport.Save(w, httptest.NewRequest(http.MethodGet, "/", nil), sess)
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "intake_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Positive(t, cookies[0].MaxAge)

	loaded, err := transport.Load(requestWithCookies(w))
	require.NoError(t, err)
	assert.Equal(t, saved.ID, loaded.ID)
	assert.Equal(t, "dark", loaded.Data.Theme)
}

func TestCookie_LoadFallsBackToFreshSession(t *testing.T) {
	t.Parallel()

	transport, _ := newTransport(t, time.Hour)

	t.Run("tampered cookie", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "intake_session", Value: "Zm9v|bad"})

		sess, err := transport.Load(req)
		require.NoError(t, err)
		assert.True(t, sess.IsModified())
		assert.Equal(t, "192.0.2.1", sess.IP)
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()
		other, _ := newTransport(t, time.Hour)
		sess, err := other.Load(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)

		w := httptest.NewRecorder()
		_, err = other.Save(w, httptest.NewRequest(http.MethodGet, "/", nil), sess)
		require.NoError(t, err)

		loaded, err := transport.Load(requestWithCookies(w))
		require.NoError(t, err)
		assert.NotEqual(t, sess.ID, loaded.ID)
	})
}

func TestCookie_SaveDestroyed(t *testing.T) {
	t.Parallel()

	transport, store := newTransport(t, time.Hour)

	sess, err := transport.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess, err = transport.Save(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), sess)
	require.NoError(t, err)

	sess.Destroy()
	w := httptest.NewRecorder()
	_, err = transport.Save(w, httptest.NewRequest(http.MethodGet, "/", nil), sess)
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)

	_, err = store.GetByToken(t.Context(), sess.Token)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestCookie_SaveExpired(t *testing.T) {
	t.Parallel()

	transport, _ := newTransport(t, -time.Minute)

	sess, err := transport.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	_, err = transport.Save(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), sess)
	assert.ErrorIs(t, err, sessiontransport.ErrExpiredSession)
}
