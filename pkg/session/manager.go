package session

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Default cookie configuration.
const (
	DefaultCookieName = "afoslt_sid"
	DefaultMaxAge     = 30 * 24 * time.Hour
)

// Manager binds sessions to clients through a cookie.
type Manager struct {
	store      Store
	cookieName string
	domain     string
	path       string
	maxAge     time.Duration
	sameSite   http.SameSite
	secure     bool
	httpOnly   bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithCookieName sets the session cookie name.
func WithCookieName(name string) ManagerOption {
	return func(m *Manager) {
		if name != "" {
			m.cookieName = name
		}
	}
}

// WithMaxAge sets the session lifetime and the cookie max age.
func WithMaxAge(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.maxAge = d
		}
	}
}

// WithDomain sets the session cookie domain.
func WithDomain(domain string) ManagerOption {
	return func(m *Manager) {
		m.domain = domain
	}
}

// WithPath sets the session cookie path.
func WithPath(path string) ManagerOption {
	return func(m *Manager) {
		if path != "" {
			m.path = path
		}
	}
}

// WithSecure sets the session cookie Secure flag.
func WithSecure(secure bool) ManagerOption {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithSameSite sets the session cookie SameSite attribute.
func WithSameSite(sameSite http.SameSite) ManagerOption {
	return func(m *Manager) {
		m.sameSite = sameSite
	}
}

// NewManager creates a Manager over store.
func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:      store,
		cookieName: DefaultCookieName,
		maxAge:     DefaultMaxAge,
		path:       "/",
		httpOnly:   true,
		sameSite:   http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Store returns the underlying store.
func (m *Manager) Store() Store {
	return m.store
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// Start loads the session named by the request cookie, or creates a new
// one and sets the cookie when there is none or it is unknown or expired.
// A new session is persisted by the next Save.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		s, err := m.store.Get(ctx, cookie.Value)
		switch {
		case err == nil:
			return s, nil
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrExpired):
		default:
			return nil, err
		}
	}

	s := New(m.maxAge)
	m.writeCookie(w, s.ID, int(m.maxAge/time.Second))
	return s, nil
}

// Save persists the session if it has unsaved changes.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	if s == nil || !s.IsDirty() {
		return nil
	}
	if err := m.store.Save(ctx, s); err != nil {
		return err
	}
	s.ClearDirty()
	return nil
}

// Destroy deletes the session and expires the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, s *Session) error {
	m.writeCookie(w, "", -1)
	if s == nil {
		return nil
	}
	return m.store.Delete(ctx, s.ID)
}

func (m *Manager) writeCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	})
}
