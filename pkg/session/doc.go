// Package session provides server-side sessions and the CSRF form token
// that lives inside them.
//
// A Session is loaded from a cookie by a Manager, mutated during the
// request, and written back when dirty. Persistence is delegated to a Store;
// MemoryStore suits tests and single-process tools, RedisStore suits
// deployments with more than one instance.
//
//	mgr := session.NewManager(session.NewMemoryStore(), session.WithCookieName("sid"))
//	sess, err := mgr.Load(ctx, r)
//	token := sess.GetToken(false) // embed in forms
//	ok := sess.HasToken(r.PostFormValue(token))
package session
