package controller_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/afoslt/pkg/controller"
)

type testContext struct {
	calls []string
}

type users struct {
	controller.Base[*testContext]
}

func newUsers() controller.Controller[*testContext] {
	u := &users{}
	u.Action("IndexAction", func(c *testContext) error {
		c.calls = append(c.calls, "index")
		return nil
	})
	u.Action("FailAction", func(*testContext) error {
		return errors.New("boom")
	})
	u.Helper("loadAction", func(c *testContext) error {
		c.calls = append(c.calls, "load")
		return nil
	})
	return u
}

func TestBase_Member(t *testing.T) {
	t.Parallel()

	c := newUsers()

	public, ok := c.Member("IndexAction")
	require.True(t, ok)
	require.True(t, public)

	public, ok = c.Member("loadAction")
	require.True(t, ok)
	require.False(t, public)

	_, ok = c.Member("indexaction")
	require.False(t, ok)

	_, ok = c.Member("MissingAction")
	require.False(t, ok)
}

func TestBase_Invoke(t *testing.T) {
	t.Parallel()

	t.Run("public member", func(t *testing.T) {
		t.Parallel()
		ctx := &testContext{}
		require.NoError(t, newUsers().Invoke(ctx, "IndexAction"))
		require.Equal(t, []string{"index"}, ctx.calls)
	})

	t.Run("action error is returned", func(t *testing.T) {
		t.Parallel()
		require.EqualError(t, newUsers().Invoke(&testContext{}, "FailAction"), "boom")
	})

	t.Run("helper is not callable", func(t *testing.T) {
		t.Parallel()
		ctx := &testContext{}
		err := newUsers().Invoke(ctx, "loadAction")
		require.ErrorIs(t, err, controller.ErrNotCallable)
		require.Empty(t, ctx.calls)
	})

	t.Run("unknown member", func(t *testing.T) {
		t.Parallel()
		err := newUsers().Invoke(&testContext{}, "MissingAction")
		require.ErrorIs(t, err, controller.ErrUnknownMember)
	})
}

func TestBase_Members(t *testing.T) {
	t.Parallel()

	u, ok := newUsers().(*users)
	require.True(t, ok)
	require.Equal(t, []string{"FailAction", "IndexAction", "loadAction"}, u.Members())
}

func TestBase_InvalidMember(t *testing.T) {
	t.Parallel()

	var b controller.Base[*testContext]
	require.Panics(t, func() { b.Action("", func(*testContext) error { return nil }) })
	require.Panics(t, func() { b.Helper("x", nil) })
}
