package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/deutsch-quiz/internal/domain/entities"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeStore struct {
	mu      sync.Mutex
	data    map[string]Data
	saves   int
	loadErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]Data)}
}

func (f *fakeStore) Load(_ context.Context, id string) (*Data, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	d, ok := f.data[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &d, nil
}

func (f *fakeStore) Save(_ context.Context, id string, data *Data, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[id] = *data
	f.saves++
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, id)
	return nil
}

func TestTokenCodec(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec([]byte("secret"), time.Hour)

	token, expiresAt, err := codec.Encode("sid-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	id, decodedExpiry, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", id)
	assert.WithinDuration(t, expiresAt, decodedExpiry, time.Second)

	_, _, err = NewTokenCodec([]byte("other"), time.Hour).Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = codec.Decode(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, _, err := NewTokenCodec([]byte("secret"), -time.Minute).Encode("sid-2")
	require.NoError(t, err)
	_, _, err = codec.Decode(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSession_Accessors(t *testing.T) {
	t.Parallel()

	s := newSession("id", nil, true)

	_, ok := s.UserID()
	assert.False(t, ok)
	s.ClearUser()
	assert.False(t, s.Modified(), "clearing an anonymous session changes nothing")

	s.SetUserID(9)
	id, ok := s.UserID()
	assert.True(t, ok)
	assert.Equal(t, int64(9), id)

	key := &entities.AnswerKey{Topic: "animals"}
	s.SetAnswerKey(key)
	assert.Same(t, key, s.AnswerKey())
	s.ClearAnswerKey()
	assert.Nil(t, s.AnswerKey())

	s.AddFlash("info", "hello")
	assert.Equal(t, []Flash{{Category: "info", Message: "hello"}}, s.Flashes())
	assert.Empty(t, s.Flashes(), "flashes are shown once")
}

func newTestRouter(m *Manager, handler gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(m.Middleware(nil))
	r.GET("/", handler)
	return r
}

func TestManager_RoundTrip(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	m := NewManager(store, []byte("secret"), Options{CookieName: "session", TTL: time.Hour}, zap.NewNop())

	r := newTestRouter(m, func(c *gin.Context) {
		sess := FromContext(c)
		visits, _ := sess.UserID()
		sess.SetUserID(visits + 1)
		require.NoError(t, m.Save(c, sess))
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Len(t, store.data, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Len(t, w.Result().Cookies(), 1, "a changed session gets a fresh cookie")
	require.Len(t, store.data, 1)
	for _, d := range store.data {
		require.NotNil(t, d.UserID)
		assert.Equal(t, int64(2), *d.UserID)
	}
}

func TestManager_UnsavedSessionSetsNoCookie(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	m := NewManager(store, []byte("secret"), Options{CookieName: "session", TTL: time.Hour}, zap.NewNop())
	r := newTestRouter(m, func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, w.Result().Cookies())
	assert.Empty(t, store.data)
}

func TestManager_ForgedCookieStartsFresh(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	m := NewManager(store, []byte("secret"), Options{CookieName: "session", TTL: time.Hour}, zap.NewNop())

	var userSeen bool
	r := newTestRouter(m, func(c *gin.Context) {
		_, userSeen = FromContext(c).UserID()
		c.Status(http.StatusOK)
	})

	forged, _, err := NewTokenCodec([]byte("attacker"), time.Hour).Encode("victim")
	require.NoError(t, err)
	uid := int64(1)
	store.data["victim"] = Data{UserID: &uid}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: forged})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, userSeen)
}

func TestManager_StoreFailure(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.loadErr = errors.New("redis down")
	m := NewManager(store, []byte("secret"), Options{CookieName: "session", TTL: time.Hour}, zap.NewNop())

	called := false
	r := newTestRouter(m, func(c *gin.Context) { called = true })

	token, _, err := m.codec.Encode("abc")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, called)
}

func TestManager_Renew(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	m := NewManager(store, []byte("secret"), Options{CookieName: "session", TTL: time.Hour}, zap.NewNop())
	store.data["old"] = Data{Flashes: []Flash{{Category: "info", Message: "keep"}}}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	data, err := store.Load(context.Background(), "old")
	require.NoError(t, err)
	sess := newSession("old", data, false)

	require.NoError(t, m.Renew(c, sess))
	sess.SetUserID(3)
	require.NoError(t, m.Save(c, sess))

	assert.NotEqual(t, "old", sess.ID())
	_, exists := store.data["old"]
	assert.False(t, exists)
	assert.Equal(t, "keep", store.data[sess.ID()].Flashes[0].Message)
	assert.True(t, strings.HasPrefix(w.Header().Get("Set-Cookie"), "session="))
}

func TestManager_UntouchedNewSessionIsNotStored(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	m := NewManager(store, []byte("secret"), Options{CookieName: "session", TTL: time.Hour}, zap.NewNop())
	r := newTestRouter(m, func(c *gin.Context) {
		require.NoError(t, m.Save(c, FromContext(c)))
		c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Result().Cookies())
	}

	assert.Zero(t, store.saves)
	assert.Empty(t, store.data)
}

func TestManager_RefreshesAgingCookie(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		tokenTTL    time.Duration
		wantRefresh bool
	}{
		{name: "fresh cookie", tokenTTL: time.Hour, wantRefresh: false},
		{name: "cookie past half of its lifetime", tokenTTL: 10 * time.Minute, wantRefresh: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := newFakeStore()
			uid := int64(4)
			store.data["sid"] = Data{UserID: &uid}

			m := NewManager(store, []byte("secret"), Options{CookieName: "session", TTL: time.Hour}, zap.NewNop())
			r := newTestRouter(m, func(c *gin.Context) {
				require.NoError(t, m.Save(c, FromContext(c)))
				c.String(http.StatusOK, "ok")
			})

			token, _, err := NewTokenCodec([]byte("secret"), tt.tokenTTL).Encode("sid")
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: "session", Value: token})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			cookies := w.Result().Cookies()
			if !tt.wantRefresh {
				assert.Empty(t, cookies)
				assert.Zero(t, store.saves)
				return
			}

			require.Len(t, cookies, 1)
			assert.Equal(t, 1, store.saves)

			id, expiresAt, err := m.codec.Decode(cookies[0].Value)
			require.NoError(t, err)
			assert.Equal(t, "sid", id)
			assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)
			assert.Equal(t, int64(4), *store.data["sid"].UserID)
		})
	}
}

func TestManager_StoreFailureUsesErrorHandler(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.loadErr = errors.New("redis down")
	m := NewManager(store, []byte("secret"), Options{CookieName: "session", TTL: time.Hour}, zap.NewNop())

	var handled error
	r := gin.New()
	r.Use(m.Middleware(func(c *gin.Context, err error) {
		handled = err
		c.String(http.StatusInternalServerError, "error page")
	}))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	token, _, err := m.codec.Encode("abc")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "error page", w.Body.String())
	assert.Error(t, handled)
}
