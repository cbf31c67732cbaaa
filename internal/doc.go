// Package internal implements the afoslt application: the per-request
// dispatch cycle, the request Context handed to controller actions, the
// error sink and the HTTP server runtime. The root afoslt package re-exports
// its public surface.
//
// Every request gets a fresh Application that loads the manifest, builds
// the route table from the route files and code-declared routes, reads the
// request, resolves the controller and action names and invokes the action.
// Any failure drops the cycle with one of the error codes (no-manifest,
// no-matching-route, controller-not-found, action-not-found, invalid-route,
// action-failed) and the sink writes the only error response:
//
//	GET /nope
//	404: no-matching-route: no route matches "nope"   (debug build)
//	404: Not Found                                    (release build)
//
// Routes named after a status code ("404") or "app/error" are dispatched
// to render custom error pages.
package internal
