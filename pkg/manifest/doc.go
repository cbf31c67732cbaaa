// Package manifest loads the application manifest: the single source of
// naming and behavior options for the framework.
//
// The manifest is a YAML (or JSON) file. Every recognized key that is absent
// from the file receives its default:
//
//	name: My application
//	build: debug            # debug | release (or 0 | 1)
//	routesDirectory: config/routes
//	readGetPost: true
//	addKeywords: true
//	controllersKeyword: Controller
//	actionsKeyword: Action
//	controllersNamespace: Controllers
//	startupSession: true
//	defaultLayout: main     # optional, no default
//	viewsDirectory: views
//	layoutsDirectory: layouts
//
// Load it from any fs.FS:
//
//	m, err := manifest.Load(os.DirFS("."), "config/manifest.yaml")
//	if errors.Is(err, manifest.ErrNotFound) {
//	    // no manifest
//	}
package manifest
