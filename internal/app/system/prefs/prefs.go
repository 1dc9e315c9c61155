// Package prefs remembers the visitor's last directory selection (profile,
// province and locality) in a signed cookie.
//
// Nothing identifying is stored; the cookie only saves the visitor from
// re-selecting the same filters on their next visit.
package prefs

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	// DefaultName is the cookie name used when none is configured.
	DefaultName = "recursos-prefs"

	// DefaultMaxAge keeps a selection for 30 days.
	DefaultMaxAge = 30 * 24 * time.Hour

	profileKey  = "profile"
	provinceKey = "province"
	localityKey = "locality"
)

// Selection is what gets remembered.
type Selection struct {
	Profile  string
	Province string
	Locality string
}

// IsZero reports whether nothing was remembered.
func (s Selection) IsZero() bool {
	return s == Selection{}
}

// Manager reads and writes the selection cookie. A nil *Manager is valid
// and remembers nothing.
type Manager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewManager builds a Manager signing cookies with sessionKey. The secure
// flag marks cookies Secure and selects SameSite=None; otherwise Lax is
// used so plain-HTTP development works.
func NewManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*Manager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = DefaultName
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("selection cookie configured",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &Manager{store: store, name: name, log: logger}, nil
}

// Name returns the cookie name.
func (m *Manager) Name() string {
	if m == nil {
		return ""
	}
	return m.name
}

// Load returns the remembered selection. A missing, expired or tampered
// cookie yields the zero Selection.
func (m *Manager) Load(r *http.Request) Selection {
	if m == nil {
		return Selection{}
	}
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		var scErr securecookie.Error
		if errors.As(err, &scErr) && scErr.IsDecode() {
			m.log.Debug("ignoring undecodable selection cookie", zap.Error(err))
		} else {
			m.log.Warn("selection cookie read failed", zap.Error(err))
		}
		return Selection{}
	}
	return Selection{
		Profile:  getString(sess, profileKey),
		Province: getString(sess, provinceKey),
		Locality: getString(sess, localityKey),
	}
}

// Save writes sel to the response. Saving the selection already stored is
// a no-op.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, sel Selection) error {
	if m == nil {
		return nil
	}
	if m.Load(r) == sel {
		return nil
	}
	// Get never fails hard; on a decode error it still returns a new session.
	sess, _ := m.store.Get(r, m.name)
	sess.Values[profileKey] = sel.Profile
	sess.Values[provinceKey] = sel.Province
	sess.Values[localityKey] = sel.Locality
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save selection cookie: %w", err)
	}
	return nil
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
