// Package sessiontransport carries session tokens between client and server.
//
// Cookie keeps the session token in a signed, HttpOnly cookie:
//
//	transport := sessiontransport.NewCookie(mgr, cookieMgr, "intake_session")
//
//	sess, err := transport.Load(r)      // never fails on a bad cookie, starts fresh instead
//	sess.SetData(draft)
//	sess, err = transport.Save(w, r, sess)
//
// Save stores the session through the session.Manager and then writes the
// cookie with a max-age matching the session expiry.
package sessiontransport
