package controller_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/afoslt/pkg/controller"
)

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	t.Run("duplicate", func(t *testing.T) {
		t.Parallel()
		reg := controller.NewRegistry[*testContext]()
		require.NoError(t, reg.Register("Controllers.UsersController", newUsers))
		err := reg.Register("controllers/UsersController", newUsers)
		require.ErrorIs(t, err, controller.ErrDuplicate)
		require.Equal(t, 1, reg.Len())
	})

	t.Run("leaf case matters", func(t *testing.T) {
		t.Parallel()
		reg := controller.NewRegistry[*testContext]()
		require.NoError(t, reg.Register("Controllers.UsersController", newUsers))
		require.NoError(t, reg.Register("Controllers.userscontroller", newUsers))
		require.Equal(t, 2, reg.Len())
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()
		reg := controller.NewRegistry[*testContext]()
		require.ErrorIs(t, reg.Register("", newUsers), controller.ErrInvalidName)
		require.ErrorIs(t, reg.Register("./", newUsers), controller.ErrInvalidName)
		require.ErrorIs(t, reg.Register("Controllers. Users", newUsers), controller.ErrInvalidName)
	})

	t.Run("nil factory", func(t *testing.T) {
		t.Parallel()
		reg := controller.NewRegistry[*testContext]()
		require.ErrorIs(t, reg.Register("Controllers.X", nil), controller.ErrNilFactory)
	})

	t.Run("must register panics", func(t *testing.T) {
		t.Parallel()
		reg := controller.NewRegistry[*testContext]()
		reg.MustRegister("Controllers.UsersController", newUsers)
		require.Panics(t, func() { reg.MustRegister("Controllers.UsersController", newUsers) })
	})
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	reg := controller.NewRegistry[*testContext]()
	reg.MustRegister("Controllers.Admin.UsersController", newUsers)

	tests := []struct {
		name  string
		input string
		found bool
	}{
		{name: "exact", input: "Controllers.Admin.UsersController", found: true},
		{name: "namespace case folded", input: "controllers.ADMIN.UsersController", found: true},
		{name: "slash separators", input: "Controllers/Admin/UsersController", found: true},
		{name: "leaf case differs", input: "Controllers.Admin.userscontroller", found: false},
		{name: "other namespace", input: "Controllers.UsersController", found: false},
		{name: "empty", input: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, ok := reg.Lookup(tt.input)
			require.Equal(t, tt.found, ok)
			require.Equal(t, tt.found, reg.Has(tt.input))
		})
	}
}

func TestRegistry_New(t *testing.T) {
	t.Parallel()

	reg := controller.NewRegistry[*testContext]()
	reg.MustRegister("Controllers.UsersController", newUsers)
	reg.MustRegister("Controllers.BrokenController", func() controller.Controller[*testContext] { return nil })

	c, err := reg.New("Controllers.UsersController")
	require.NoError(t, err)
	require.NotNil(t, c)

	other, err := reg.New("Controllers.UsersController")
	require.NoError(t, err)
	require.NotSame(t, c, other)

	_, err = reg.New("Controllers.MissingController")
	require.ErrorIs(t, err, controller.ErrNotFound)

	_, err = reg.New("Controllers.BrokenController")
	require.ErrorIs(t, err, controller.ErrNotFound)
	require.False(t, reg.Has("Controllers.BrokenController"))
}

func TestRegistry_Names(t *testing.T) {
	t.Parallel()

	reg := controller.NewRegistry[*testContext]()
	reg.MustRegister("Controllers/Zeta", newUsers)
	reg.MustRegister("Controllers.Alpha", newUsers)

	require.Equal(t, []string{"Controllers.Alpha", "Controllers.Zeta"}, reg.Names())
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Parallel()

	reg := controller.NewRegistry[*testContext]()
	reg.MustRegister("Controllers.UsersController", newUsers)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.True(t, reg.Has("controllers.UsersController"))
		}()
	}
	wg.Wait()
}
