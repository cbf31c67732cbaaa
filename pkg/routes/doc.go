// Package routes compiles URL patterns and matches request paths against them.
//
// A pattern is a path with optional {name} placeholders. Leading and
// trailing slashes are ignored, each placeholder matches one or more word
// characters, and the whole normalized path must match:
//
//	table := routes.NewTable()
//	_ = table.Add("/users/{id}/", routes.Target{Controller: "Users", Action: "Show"})
//
//	router := routes.NewRouter(table, routes.WithDefaultLayout("main"))
//	res, ok := router.Match("/users/42?tab=posts")
//	// ok == true, res.Params["id"] == "42", res.Layout == "main"
//
// Routes are tried in table order and the first match wins.
//
// Route files are YAML or JSON documents mapping patterns to targets:
//
//	/:
//	  controller: Home
//	  action: Index
//	users/{id}:
//	  controller: Users
//	  action: Show
//	  layout: profile
//
// LoadDir discovers every route file below a directory of an fs.FS and
// merges them in lexical order.
package routes
