package routes_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/afoslt/pkg/routes"
)

func TestLoadDir(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"config/routes/a.yaml": {Data: []byte(`
index:
  controller: Index
  action: Index
"test/{id}":
  controller: Test
  action: Show
health:
`)},
		"config/routes/b/c.yml": {Data: []byte(`
index:
  controller: Home
  action: Welcome
  layout: main
extra:
  controller: Extra
`)},
		"config/routes/not-routes.yaml": {Data: []byte("name: Demo\nversion: 1.0\n")},
		"config/routes/readme.txt":      {Data: []byte("index: {controller: Ignored}")},
		"config/routes/z.json":          {Data: []byte(`{"json/route": {"controller": "Json", "action": 5, "layout": ""}}`)},
	}

	raw, err := routes.LoadDir(fsys, `config\routes\`)
	require.NoError(t, err)
	require.Equal(t, []string{"index", "test/{id}", "health", "extra", "json/route"}, raw.Patterns())

	index, ok := raw.Get("index")
	require.True(t, ok)
	require.Equal(t, routes.Target{Controller: "Home", Action: "Welcome", Layout: "main"}, index)

	health, ok := raw.Get("health")
	require.True(t, ok)
	require.Equal(t, routes.Target{}, health)

	js, ok := raw.Get("json/route")
	require.True(t, ok)
	require.Equal(t, routes.Target{Controller: "Json"}, js)
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	t.Parallel()

	raw, err := routes.LoadDir(fstest.MapFS{}, "config/routes")
	require.NoError(t, err)
	require.Zero(t, raw.Len())
}

func TestLoadDir_MalformedFile(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"routes/bad.yaml": {Data: []byte("index: [unclosed")},
	}

	_, err := routes.LoadDir(fsys, "routes")
	require.ErrorIs(t, err, routes.ErrInvalidFile)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"routes.yaml": {Data: []byte("'/':\n  controller: Home\n")},
		"empty.yaml":  {Data: []byte("")},
		"list.yaml":   {Data: []byte("- a\n- b\n")},
		"view.html":   {Data: []byte("<p>hi</p>")},
	}

	raw, ok, err := routes.LoadFile(fsys, "routes.yaml")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"/"}, raw.Patterns())

	for _, name := range []string{"empty.yaml", "list.yaml", "view.html"} {
		raw, ok, err := routes.LoadFile(fsys, name)
		require.NoError(t, err, name)
		require.False(t, ok, name)
		require.Nil(t, raw, name)
	}
}
