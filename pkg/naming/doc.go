// Package naming converts the terse controller and action names declared in
// route files into fully qualified identifiers.
//
// With the default conventions (root namespace "Controllers", keywords
// "Controller" and "Action", keywords enabled):
//
//	r := naming.New(naming.DefaultConventions(), registry)
//	r.ResolveControllerName("Users/Settings") // "Controllers.Users.SettingsController"
//	r.ResolveActionName("Index")              // "IndexAction"
//
// Both resolutions are idempotent: resolving an already resolved name returns
// it unchanged.
package naming
