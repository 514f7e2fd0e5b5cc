// Package session keeps per-browser state between requests: the signed-in
// user, the answer key of the last generated quiz and one-time flash messages.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/aliskhannn/deutsch-quiz/internal/domain/entities"
)

var ErrSessionNotFound = errors.New("session not found")

// Store persists session data by session ID.
type Store interface {
	Load(ctx context.Context, id string) (*Data, error)
	Save(ctx context.Context, id string, data *Data, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// Flash is a message shown once on the next rendered page.
type Flash struct {
	Category string `json:"category"` // "success", "danger" or "info"
	Message  string `json:"message"`
}

// Data is the persisted part of a session.
type Data struct {
	UserID    *int64              `json:"user_id,omitempty"`
	AnswerKey *entities.AnswerKey `json:"answer_key,omitempty"`
	Flashes   []Flash             `json:"flashes,omitempty"`
}

// Session is the state of one browser session during a request.
type Session struct {
	id        string
	data      Data
	isNew     bool // not in the store yet
	modified  bool
	expiresAt time.Time // expiry of the cookie token the request carried
}

func newSession(id string, data *Data, isNew bool) *Session {
	s := &Session{id: id, isNew: isNew}
	if data != nil {
		s.data = *data
	}
	return s
}

func (s *Session) ID() string { return s.id }

// UserID returns the signed-in user, if any.
func (s *Session) UserID() (int64, bool) {
	if s.data.UserID == nil {
		return 0, false
	}
	return *s.data.UserID, true
}

func (s *Session) SetUserID(id int64) {
	s.data.UserID = &id
	s.modified = true
}

// ClearUser signs the user out. Calling it on an anonymous session is a no-op.
func (s *Session) ClearUser() {
	if s.data.UserID == nil {
		return
	}
	s.data.UserID = nil
	s.modified = true
}

// AnswerKey returns the key of the last generated quiz or nil.
func (s *Session) AnswerKey() *entities.AnswerKey {
	return s.data.AnswerKey
}

// SetAnswerKey replaces the stored answer key.
func (s *Session) SetAnswerKey(key *entities.AnswerKey) {
	s.data.AnswerKey = key
	s.modified = true
}

func (s *Session) ClearAnswerKey() {
	if s.data.AnswerKey == nil {
		return
	}
	s.data.AnswerKey = nil
	s.modified = true
}

func (s *Session) AddFlash(category, message string) {
	s.data.Flashes = append(s.data.Flashes, Flash{Category: category, Message: message})
	s.modified = true
}

// Flashes returns pending flash messages and removes them from the session.
func (s *Session) Flashes() []Flash {
	flashes := s.data.Flashes
	if len(flashes) > 0 {
		s.data.Flashes = nil
		s.modified = true
	}
	return flashes
}

// Modified reports whether the session changed since it was loaded.
func (s *Session) Modified() bool { return s.modified }

func (s *Session) snapshot() *Data {
	data := s.data
	return &data
}
