package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

var errNoStore = errors.New("session store not configured")

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a one-shot message shown on the next page a visitor loads.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Session is an anonymous visitor session. It only carries pending notices.
type Session struct {
	ID              string    `json:"id"`
	Notices         []Notice  `json:"notices,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	LastRefreshedAt time.Time `json:"last_refreshed_at"`
	ExpiresAt       time.Time `json:"expires_at"`
}

type Store interface {
	Set(ctx context.Context, id string, s Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type Manager struct {
	Store         Store
	TTL           time.Duration
	MaxAge        time.Duration
	RefreshBefore time.Duration
	MaxNotices    int
}

func (m *Manager) ttl() time.Duration {
	if m.TTL <= 0 {
		return 24 * time.Hour
	}
	return m.TTL
}

func (m *Manager) Create(ctx context.Context) (*Session, error) {
	if m.Store == nil {
		return nil, errNoStore
	}

	now := time.Now()
	s := Session{
		ID:              "vis_" + uuid.NewString(),
		CreatedAt:       now,
		LastRefreshedAt: now,
		ExpiresAt:       now.Add(m.ttl()),
	}

	if err := m.Store.Set(ctx, s.ID, s, m.ttl()); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if m.Store == nil {
		return nil, errNoStore
	}
	sess, err := m.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	m.ensureSessionTimestamps(sess, now)
	if m.MaxAge > 0 && now.After(sess.CreatedAt.Add(m.MaxAge)) {
		_ = m.Store.Delete(ctx, id)
		return nil, ErrNotFound
	}

	return sess, nil
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	if m.Store == nil {
		return errNoStore
	}
	return m.Store.Delete(ctx, id)
}

// Refresh slides the expiry forward. It reports whether the cookie needs to
// be rewritten.
func (m *Manager) Refresh(ctx context.Context, sess *Session) (*Session, bool, error) {
	if m.Store == nil {
		return nil, false, errNoStore
	}
	if sess == nil {
		return nil, false, errors.New("session not provided")
	}

	now := time.Now()
	m.ensureSessionTimestamps(sess, now)
	if m.MaxAge > 0 && now.After(sess.CreatedAt.Add(m.MaxAge)) {
		_ = m.Store.Delete(ctx, sess.ID)
		return nil, false, ErrNotFound
	}

	if m.RefreshBefore > 0 && time.Until(sess.ExpiresAt) > m.RefreshBefore {
		return sess, false, nil
	}

	sess.ExpiresAt = now.Add(m.ttl())
	sess.LastRefreshedAt = now

	if err := m.Store.Set(ctx, sess.ID, *sess, m.ttl()); err != nil {
		return nil, false, err
	}
	return sess, true, nil
}

// Push queues a notice for the session. Oldest notices are dropped once
// MaxNotices is reached.
func (m *Manager) Push(ctx context.Context, id string, n Notice) error {
	sess, err := m.Get(ctx, id)
	if err != nil {
		return err
	}

	sess.Notices = append(sess.Notices, n)
	if limit := m.maxNotices(); len(sess.Notices) > limit {
		sess.Notices = sess.Notices[len(sess.Notices)-limit:]
	}
	return m.save(ctx, sess)
}

// Pop returns and clears the pending notices.
func (m *Manager) Pop(ctx context.Context, id string) ([]Notice, error) {
	sess, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(sess.Notices) == 0 {
		return nil, nil
	}

	notices := sess.Notices
	sess.Notices = nil
	if err := m.save(ctx, sess); err != nil {
		return nil, err
	}
	return notices, nil
}

func (m *Manager) save(ctx context.Context, sess *Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return ErrNotFound
	}
	return m.Store.Set(ctx, sess.ID, *sess, ttl)
}

func (m *Manager) maxNotices() int {
	if m.MaxNotices <= 0 {
		return 5
	}
	return m.MaxNotices
}

func (m *Manager) ensureSessionTimestamps(sess *Session, now time.Time) {
	if sess.CreatedAt.IsZero() {
		if !sess.ExpiresAt.IsZero() {
			sess.CreatedAt = sess.ExpiresAt.Add(-m.ttl())
			if sess.CreatedAt.After(now) {
				sess.CreatedAt = now
			}
		} else {
			sess.CreatedAt = now
		}
	}
	if sess.LastRefreshedAt.IsZero() {
		sess.LastRefreshedAt = sess.CreatedAt
	}
}
