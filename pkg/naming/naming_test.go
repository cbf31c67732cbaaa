package naming_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/afoslt/pkg/naming"
)

// unitSet is a Units implementation over a fixed set of qualified names.
type unitSet map[string]bool

func (u unitSet) Has(fullName string) bool { return u[fullName] }

// memberSet maps member names to their visibility.
type memberSet map[string]bool

func (m memberSet) Member(name string) (bool, bool) {
	public, ok := m[name]
	return public, ok
}

func TestResolver_ResolveControllerName(t *testing.T) {
	t.Parallel()

	r := naming.New(naming.DefaultConventions(), nil)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"simple", "Index", "Controllers.IndexController"},
		{"namespaced with slash", "Users/Settings", "Controllers.Users.SettingsController"},
		{"namespaced with backslash", `Examples\Example`, "Controllers.Examples.ExampleController"},
		{"leading and trailing separators", "/Users/Settings/", "Controllers.Users.SettingsController"},
		{"already suffixed short name", "IndexController", "Controllers.IndexController"},
		{"already qualified", "Controllers.Users.SettingsController", "Controllers.Users.SettingsController"},
		{"qualified without keyword", "Controllers.Users.Settings", "Controllers.Users.SettingsController"},
		{"deep namespace", "admin/users/Roles", "Controllers.admin.users.RolesController"},
		{"lowercase root namespace", "controllers/admin/users", "controllers.admin.usersController"},
		{"keyword only", "Controller", "Controllers.Controller"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, r.ResolveControllerName(tt.in))
		})
	}
}

func TestResolver_ResolveControllerName_Idempotent(t *testing.T) {
	t.Parallel()

	r := naming.New(naming.DefaultConventions(), nil)

	once := r.ResolveControllerName("Users/Settings")
	twice := r.ResolveControllerName(once)

	require.Equal(t, "Controllers.Users.SettingsController", once)
	require.Equal(t, once, twice)
	require.Equal(t, 1, strings.Count(twice, "Controllers."), "root namespace must not repeat")
	require.NotContains(t, twice, "ControllerController")
}

func TestResolver_ResolveControllerName_Conventions(t *testing.T) {
	t.Parallel()

	t.Run("custom keyword", func(t *testing.T) {
		t.Parallel()

		conv := naming.DefaultConventions()
		conv.ControllerKeyword = "Test"
		r := naming.New(conv, nil)
		require.Equal(t, "Controllers.IndexTest", r.ResolveControllerName("Index"))
	})

	t.Run("keywords disabled", func(t *testing.T) {
		t.Parallel()

		conv := naming.DefaultConventions()
		conv.AddKeywords = false
		r := naming.New(conv, nil)
		require.Equal(t, "Controllers.Users.Settings", r.ResolveControllerName("Users/Settings"))
	})

	t.Run("custom root namespace", func(t *testing.T) {
		t.Parallel()

		conv := naming.DefaultConventions()
		conv.RootNamespace = "app/controllers"
		r := naming.New(conv, nil)
		require.Equal(t, "app.controllers.MainController", r.ResolveControllerName("Main"))
		require.True(t, r.IsQualified("app.controllers.MainController"))
		require.True(t, r.IsQualified(`app\controllers\MainController`))
	})
}

func TestResolver_ResolveActionName(t *testing.T) {
	t.Parallel()

	r := naming.New(naming.DefaultConventions(), nil)

	require.Equal(t, "", r.ResolveActionName(""))
	require.Equal(t, "TestAction", r.ResolveActionName("Test"))
	require.Equal(t, "TestAction", r.ResolveActionName("TestAction"))
	require.Equal(t, "ActAction", r.ResolveActionName("Act"), "shorter than keyword")
	require.Equal(t, "Action", r.ResolveActionName("Action"), "equal to keyword")

	for _, in := range []string{"index", "Act", "Action", "listAction"} {
		once := r.ResolveActionName(in)
		require.Equal(t, once, r.ResolveActionName(once), "idempotent for %q", in)
	}

	conv := naming.DefaultConventions()
	conv.AddKeywords = false
	plain := naming.New(conv, nil)
	require.Equal(t, "Test", plain.ResolveActionName("Test"))
}

func TestResolver_Exists(t *testing.T) {
	t.Parallel()

	units := unitSet{"Controllers.Users.SettingsController": true}
	r := naming.New(naming.DefaultConventions(), units)

	require.True(t, r.Exists("Users/Settings"))
	require.True(t, r.Exists("Controllers.Users.SettingsController"))
	require.False(t, r.Exists("Users/Profile"))
	require.False(t, r.Exists(""))

	require.False(t, naming.New(naming.DefaultConventions(), nil).Exists("Users/Settings"))
}

func TestResolver_ActionExists(t *testing.T) {
	t.Parallel()

	r := naming.New(naming.DefaultConventions(), nil)
	members := memberSet{
		"IndexAction":  true,
		"secretAction": false,
	}

	require.True(t, r.ActionExists(members, "Index"))
	require.True(t, r.ActionExists(members, "IndexAction"))
	require.False(t, r.ActionExists(members, "secret"), "non-public member must not count")
	require.False(t, r.ActionExists(members, "Missing"))
	require.False(t, r.ActionExists(members, ""))
	require.False(t, r.ActionExists(nil, "Index"))
}
