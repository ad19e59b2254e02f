// Package session remembers where a reader left off in the terminal
// navigator.
//
// A [Session] records the focus, style and zoom of one browse session along
// with the trail of people visited, so that reopening the same dataset
// resumes from the same place. Sessions are keyed by dataset hash: a session
// saved against one dataset is never offered for another.
//
//	store, err := session.NewFileStore("") // <user config dir>/kinview/sessions
//	sess, err := store.Get(ctx, datasetHash)
//	if sess == nil {
//	    sess = session.New(datasetHash, g.Meta().InitialPerson, session.DefaultTTL)
//	}
//	sess.Visit("I42")
//	store.Set(ctx, sess)
package session

import (
	"context"
	"errors"
	"slices"
	"time"
)

// ErrNoID is returned when a session without an id is stored.
var ErrNoID = errors.New("session has no id")

// DefaultTTL is how long an untouched session is kept.
const DefaultTTL = 30 * 24 * time.Hour

// MaxHistory bounds the trail of visited people.
const MaxHistory = 50

// Session is one reader's position in one dataset.
type Session struct {
	ID        string    `json:"id"`
	Focus     string    `json:"focus"`
	Style     string    `json:"style,omitempty"`
	Zoom      int       `json:"zoom,omitempty"`
	History   []string  `json:"history,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// New starts a session for the dataset id, focused on focus.
func New(id, focus string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		Focus:     focus,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Visit moves the focus to id, pushing the previous focus onto the history.
// Revisiting the current focus is a no-op.
func (s *Session) Visit(id string) {
	if id == "" || id == s.Focus {
		return
	}
	if s.Focus != "" {
		s.History = append(s.History, s.Focus)
		if len(s.History) > MaxHistory {
			s.History = slices.Clone(s.History[len(s.History)-MaxHistory:])
		}
	}
	s.Focus = id
	s.touch()
}

// Back returns to the previous focus. It reports false when the history is
// empty.
func (s *Session) Back() bool {
	if len(s.History) == 0 {
		return false
	}
	last := len(s.History) - 1
	s.Focus, s.History = s.History[last], s.History[:last]
	s.touch()
	return true
}

// Extend pushes the expiry ttl past now.
func (s *Session) Extend(ttl time.Duration) {
	s.ExpiresAt = time.Now().Add(ttl)
}

func (s *Session) touch() { s.UpdatedAt = time.Now() }

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
}
