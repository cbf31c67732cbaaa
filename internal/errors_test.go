package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/afoslt/internal"
)

func TestNewError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code     string
		sentinel error
		status   int
	}{
		{internal.CodeNoManifest, internal.ErrNoManifest, http.StatusInternalServerError},
		{internal.CodeNoMatchingRoute, internal.ErrNoMatchingRoute, http.StatusNotFound},
		{internal.CodeControllerNotFound, internal.ErrControllerNotFound, http.StatusNotFound},
		{internal.CodeActionNotFound, internal.ErrActionNotFound, http.StatusNotFound},
		{internal.CodeInvalidRoute, internal.ErrInvalidRoute, http.StatusInternalServerError},
		{internal.CodeActionFailed, internal.ErrActionFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()
			e := internal.NewError(tt.code, "detail")
			require.Equal(t, tt.status, e.Status)
			require.ErrorIs(t, e, tt.sentinel)
			require.ErrorIs(t, fmt.Errorf("wrapped: %w", e), tt.sentinel)
		})
	}

	t.Run("unknown code is a server error", func(t *testing.T) {
		t.Parallel()
		e := internal.NewError("mystery", "")
		require.Equal(t, http.StatusInternalServerError, e.Status)
		require.Equal(t, "mystery", e.Error())
	})

	t.Run("codes do not cross-match", func(t *testing.T) {
		t.Parallel()
		e := internal.NewError(internal.CodeNoManifest, "x")
		require.NotErrorIs(t, e, internal.ErrNoMatchingRoute)
	})
}

func TestErrorBody(t *testing.T) {
	t.Parallel()

	e := internal.NewError(internal.CodeNoMatchingRoute, `no route matches "nope"`)

	require.Equal(t, `404: no-matching-route: no route matches "nope"`, e.Body(true))
	require.Equal(t, "404: Not Found", e.Body(false))

	require.Equal(t, map[string]any{
		"status":  404,
		"error":   "Not Found",
		"code":    internal.CodeNoMatchingRoute,
		"message": `no route matches "nope"`,
	}, e.Payload(true))
	require.Equal(t, map[string]any{"status": 404, "error": "Not Found"}, e.Payload(false))
}

func TestAsError(t *testing.T) {
	t.Parallel()

	e := internal.NewError(internal.CodeActionFailed, "boom")
	require.Same(t, e, internal.AsError(fmt.Errorf("outer: %w", e)))
	require.Nil(t, internal.AsError(errors.New("plain")))
	require.Nil(t, internal.AsError(nil))
}

func TestPanicError(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	err := &internal.PanicError{Value: cause}
	require.ErrorIs(t, err, cause)
	require.Equal(t, "panic: cause", err.Error())

	require.NoError(t, (&internal.PanicError{Value: "text"}).Unwrap())
}
