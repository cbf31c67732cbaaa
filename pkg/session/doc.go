// Package session provides server-side sessions bound to a cookie.
//
// A Manager loads or creates the session for a request and persists it
// when it changes:
//
//	store := session.NewMemoryStore()
//	defer store.Close()
//	mgr := session.NewManager(store, session.WithSecure(true))
//
//	sess, err := mgr.Start(ctx, w, r)
//	if err != nil {
//		return err
//	}
//	sess.Set("visits", session.ValueOr(sess, "visits", 0.0)+1)
//	err = mgr.Save(ctx, sess)
//
// MemoryStore suits a single process; RedisStore shares sessions between
// instances.
package session
