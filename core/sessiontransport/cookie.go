package sessiontransport

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/contactform/core/cookie"
	"github.com/dmitrymomot/contactform/core/session"
	"github.com/dmitrymomot/contactform/pkg/clientip"
)

// Cookie provides HTTP cookie-based session transport.
// It stores Session.Token as the cookie value, signed via cookie.Manager.
type Cookie[Data any] struct {
	manager   *session.Manager[Data]
	cookieMgr *cookie.Manager
	name      string
}

// NewCookie creates a new cookie-based session transport.
func NewCookie[Data any](mgr *session.Manager[Data], cookieMgr *cookie.Manager, name string) *Cookie[Data] {
	return &Cookie[Data]{
		manager:   mgr,
		cookieMgr: cookieMgr,
		name:      name,
	}
}

// Load returns the session referenced by the request cookie. A missing,
// tampered, unknown or expired cookie yields a fresh unsaved session, so the
// caller always gets a usable session.
func (c *Cookie[Data]) Load(r *http.Request) (session.Session[Data], error) {
	token, err := c.cookieMgr.GetSigned(r, c.name)
	if err == nil {
		if sess, err := c.manager.GetByToken(r.Context(), token); err == nil {
			return sess, nil
		}
	}

	return c.manager.New(r.Context(), session.NewSessionParams{
		IP:        clientip.GetIP(r),
		UserAgent: r.UserAgent(),
	})
}

// Save persists the session and refreshes the cookie. Destroyed sessions
// have their cookie removed.
func (c *Cookie[Data]) Save(w http.ResponseWriter, r *http.Request, sess session.Session[Data]) (session.Session[Data], error) {
	sess, err := c.manager.Store(r.Context(), sess)
	if err != nil {
		return sess, err
	}

	if sess.IsDeleted() {
		c.cookieMgr.Delete(w, c.name)
		return sess, nil
	}

	until := time.Until(sess.ExpiresAt)
	if until <= 0 {
		return sess, fmt.Errorf("%w: expired %v ago", ErrExpiredSession, -until)
	}

	return sess, c.cookieMgr.SetSigned(w, c.name, sess.Token,
		cookie.WithMaxAge(int(until.Seconds())),
	)
}
