// Package afoslt is a manifest-driven MVC micro-framework.
//
// An application is a filesystem holding a manifest, route files, views and
// layouts, plus a registry of controllers:
//
//	config/manifest.yaml
//	config/routes/main.yaml
//	views/home/index.html
//	layouts/main.html
//
// Route files map patterns to targets. Placeholders such as {id} match one
// word and are exposed through Context.Param; the first matching route wins:
//
//	test/{id}:
//	  controller: Users/Settings   # Controllers.Users.SettingsController
//	  action: Show                 # ShowAction
//	  layout: main
//
// Controllers embed Base and register their public actions:
//
//	func NewSettings() afoslt.Controller {
//	    c := &afoslt.Base{}
//	    c.Action("ShowAction", func(c afoslt.Context) error {
//	        return c.Render(http.StatusOK, "users/settings", c.Param("id"))
//	    })
//	    return c
//	}
//
//	app := afoslt.New(
//	    afoslt.WithFS(appFS),
//	    afoslt.WithController("Controllers.Users.SettingsController", NewSettings),
//	)
//	err := app.Run(afoslt.Address(":8080"))
//
// Failures end the request with a terminal error code and a single error
// response; the manifest build option decides whether details are shown.
package afoslt
