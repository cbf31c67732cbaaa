// Package controller provides the controller model: units with public
// actions and non-public helpers, and a registry that maps
// fully-qualified names to controller factories.
//
// The package is generic over the request context type so that it does not
// depend on the HTTP layer:
//
//	reg := controller.NewRegistry[afoslt.Context]()
//	reg.MustRegister("Controllers.HomeController", NewHome)
//
//	c, err := reg.New("Controllers.HomeController")
//	if err != nil {
//		return err
//	}
//	if public, ok := c.Member("IndexAction"); ok && public {
//		return c.Invoke(ctx, "IndexAction")
//	}
//
// A fresh controller is created for every dispatch.
package controller
