// Package session provides generic, anonymous visitor sessions.
//
// A Session[Data] carries application state between requests. It is
// identified by a random 256-bit token, which a transport (see
// core/sessiontransport) hands to the client, and by a stable UUID used as
// the storage key.
//
//	type Draft struct{ Name string }
//
//	mgr := session.NewManager[Draft](session.NewMemoryStore[Draft](),
//		session.WithTTL(24*time.Hour),
//		session.WithTouchInterval(5*time.Minute),
//	)
//
//	sess, err := mgr.New(ctx, session.NewSessionParams{IP: ip})
//	sess.SetData(Draft{Name: "x"})
//	sess, err = mgr.Store(ctx, sess)
//
// Manager.Store decides what to do from the session state: destroyed
// sessions are deleted, modified ones saved and untouched ones skipped.
// Expiration is extended at most once per touch interval to limit writes.
//
// Store is the persistence contract. MemoryStore keeps sessions in process
// memory; integration/database/redis provides a shared store.
package session
