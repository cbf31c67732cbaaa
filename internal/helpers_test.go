package internal_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/afoslt/internal"
	"github.com/dmitrymomot/afoslt/pkg/controller"
	"github.com/dmitrymomot/afoslt/pkg/routes"
)

type userKey struct{}

func TestTypedHelpers(t *testing.T) {
	t.Parallel()

	typed := func() internal.Controller {
		c := &controller.Base[internal.Context]{}
		c.Action("ShowAction", func(c internal.Context) error {
			c.Set(userKey{}, "alice")
			return c.String(http.StatusOK, fmt.Sprintf("%d|%v|%v|%d|%s|%s",
				internal.Param[int](c, "id"),
				internal.Arg[bool](c, "draft"),
				internal.Arg[float64](c, "ratio"),
				internal.ArgDefault(c, "page", 1),
				internal.ArgDefault(c, "sort", "name"),
				internal.ContextValue[string](c, userKey{}),
			))
		})
		return c
	}

	app := internal.New(
		internal.WithFS(appFS("name: Demo\n")),
		internal.WithController("Controllers.TypedController", typed),
		internal.WithRoute("typed/{id}", routes.Target{Controller: "Typed", Action: "Show"}),
	)

	tests := []struct {
		target string
		want   string
	}{
		{"/typed/42?draft=true&ratio=0.5&page=3&sort=date", "42|true|0.5|3|date|alice"},
		{"/typed/7", "7|false|0|1|name|alice"},
		{"/typed/abc?page=x", "0|false|0|1|name|alice"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()
			rec := get(app, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestContextAccessors(t *testing.T) {
	t.Parallel()

	var (
		params, args map[string]string
		layout       string
		name         string
		reqID        string
	)
	probe := func() internal.Controller {
		c := &controller.Base[internal.Context]{}
		c.Action("ProbeAction", func(c internal.Context) error {
			params, args = c.Params(), c.Args()
			params["mutated"] = "x"
			layout = c.Layout()
			name = c.Manifest().Name
			reqID = c.RequestID()
			return c.NoContent(http.StatusNoContent)
		})
		return c
	}

	app := internal.New(
		internal.WithFS(appFS("name: Probe\ndefaultLayout: main\n")),
		internal.WithController("Controllers.ProbeController", probe),
		internal.WithRoute("probe/{slug}", routes.Target{Controller: "Probe", Action: "Probe"}),
	)

	rec := get(app, "/probe/abc?x=1", internal.RequestIDHeader, "rid")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, map[string]string{"slug": "abc", "mutated": "x"}, params)
	require.Equal(t, map[string]string{"slug": "abc", "x": "1"}, args)
	require.Equal(t, "main", layout)
	require.Equal(t, "Probe", name)
	require.Equal(t, "rid", reqID)
}
