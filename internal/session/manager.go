package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const contextKey = "session"

// Options configures the session cookie.
type Options struct {
	CookieName   string
	TTL          time.Duration
	SecureCookie bool
}

// Manager binds sessions to requests through a signed cookie.
type Manager struct {
	store  Store
	codec  *TokenCodec
	opts   Options
	logger *zap.Logger
}

func NewManager(store Store, secret []byte, opts Options, logger *zap.Logger) *Manager {
	return &Manager{
		store:  store,
		codec:  NewTokenCodec(secret, opts.TTL),
		opts:   opts,
		logger: logger,
	}
}

// ErrorHandler writes the response for a request whose session could not be loaded.
type ErrorHandler func(c *gin.Context, err error)

// Middleware loads the session of the request and makes it available through FromContext.
// A missing, expired or forged cookie starts a fresh session. When the store fails,
// onError writes the response; a nil onError aborts with a bare 500.
func (m *Manager) Middleware(onError ErrorHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := m.load(c)
		if err != nil {
			m.logger.Error("failed to load session", zap.Error(err))
			_ = c.Error(err)
			if onError != nil {
				onError(c, err)
				c.Abort()
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(contextKey, sess)
		c.Next()
	}
}

func (m *Manager) load(c *gin.Context) (*Session, error) {
	cookie, err := c.Cookie(m.opts.CookieName)
	if err != nil || cookie == "" {
		return freshSession()
	}

	id, expiresAt, err := m.codec.Decode(cookie)
	if err != nil {
		m.logger.Debug("discarding session cookie", zap.Error(err))
		return freshSession()
	}

	data, err := m.store.Load(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return freshSession()
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	sess := newSession(id, data, false)
	sess.expiresAt = expiresAt
	return sess, nil
}

func freshSession() (*Session, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}
	return newSession(id, nil, true), nil
}

// FromContext returns the session loaded by Middleware.
func FromContext(c *gin.Context) *Session {
	if v, ok := c.Get(contextKey); ok {
		if sess, ok := v.(*Session); ok {
			return sess
		}
	}
	// Without the middleware every request gets a throwaway session.
	sess, _ := freshSession()
	c.Set(contextKey, sess)
	return sess
}

// Save persists the session and issues a fresh cookie. A new session is
// stored only once something was put into it. An unchanged session is
// stored again when its cookie has used up half of its lifetime, so the
// cookie and the stored data expire together.
// Save must be called before the response body is written.
func (m *Manager) Save(c *gin.Context, sess *Session) error {
	if !sess.modified && !m.needsRefresh(sess) {
		return nil
	}

	if err := m.store.Save(c.Request.Context(), sess.id, sess.snapshot(), m.opts.TTL); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	token, expiresAt, err := m.codec.Encode(sess.id)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.opts.CookieName, token, int(m.opts.TTL.Seconds()), "/", "", m.opts.SecureCookie, true)

	sess.isNew = false
	sess.modified = false
	sess.expiresAt = expiresAt
	return nil
}

func (m *Manager) needsRefresh(sess *Session) bool {
	if sess.isNew {
		return false
	}
	return time.Until(sess.expiresAt) < m.opts.TTL/2
}

// Renew moves the session data to a new ID, so an ID seen before sign-in
// cannot be reused afterwards.
func (m *Manager) Renew(c *gin.Context, sess *Session) error {
	if !sess.isNew {
		if err := m.store.Delete(c.Request.Context(), sess.id); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}

	id, err := newID()
	if err != nil {
		return err
	}

	sess.id = id
	sess.isNew = true
	sess.modified = true
	return nil
}

func newID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
