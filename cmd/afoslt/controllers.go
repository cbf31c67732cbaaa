package main

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/afoslt"
	"github.com/dmitrymomot/afoslt/pkg/session"
)

func registerControllers(reg *afoslt.Registry) {
	reg.MustRegister("Controllers.HomeController", newHome)
	reg.MustRegister("Controllers.HelloController", newHello)
	reg.MustRegister("Controllers.VisitsController", newVisits)
	reg.MustRegister("Controllers.ErrorsController", newErrors)
}

func newHome() afoslt.Controller {
	c := &afoslt.Base{}
	c.Action("IndexAction", func(c afoslt.Context) error {
		return c.Render(http.StatusOK, "home/index", c.Manifest())
	})
	c.Action("AboutAction", func(c afoslt.Context) error {
		return c.Render(http.StatusOK, "about", time.Now().Format(time.RFC1123))
	})
	return c
}

func newHello() afoslt.Controller {
	c := &afoslt.Base{}
	c.Action("GreetAction", func(c afoslt.Context) error {
		return c.Component(http.StatusOK, greeting(c.Param("name")))
	})
	return c
}

func greeting(name string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<h1>Hello, %s!</h1>", html.EscapeString(name))
		return err
	})
}

func newVisits() afoslt.Controller {
	c := &afoslt.Base{}
	c.Action("CountAction", func(c afoslt.Context) error {
		s := c.Session()
		if s == nil {
			return c.JSON(http.StatusOK, map[string]any{"visits": nil})
		}
		// JSON-backed stores return numbers as float64.
		n := session.ValueOr(s, "visits", float64(0)) + 1
		s.Set("visits", n)
		return c.JSON(http.StatusOK, map[string]any{"visits": n, "session": s.ID})
	})
	return c
}

func newErrors() afoslt.Controller {
	c := &afoslt.Base{}
	c.Action("NotFoundAction", func(c afoslt.Context) error {
		return c.Render(http.StatusNotFound, "errors/404", c.Request().URL.Path)
	})
	c.Action("InternalAction", func(c afoslt.Context) error {
		status := http.StatusInternalServerError
		if e := c.Error(); e != nil {
			status = e.Status
		}
		return c.Render(status, "errors/500", c.RequestID())
	})
	return c
}
