package internal

import "strconv"

// Scalar is the set of types request values can be converted to.
type Scalar interface {
	string | int | int64 | float64 | bool
}

// ContextValue returns the value stored under key when it has type T.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// Param returns a route placeholder converted to T, or the zero value.
func Param[T Scalar](c Context, name string) T {
	v, _ := convert[T](c.Param(name))
	return v
}

// Arg returns a request argument converted to T, or the zero value.
func Arg[T Scalar](c Context, name string) T {
	v, _ := convert[T](c.Arg(name))
	return v
}

// ArgDefault returns a request argument converted to T. Missing or
// unparsable arguments yield def.
func ArgDefault[T Scalar](c Context, name string, def T) T {
	raw := c.Arg(name)
	if raw == "" {
		return def
	}
	v, ok := convert[T](raw)
	if !ok {
		return def
	}
	return v
}

func convert[T Scalar](raw string) (T, bool) {
	var zero T
	var (
		v   any
		err error
	)
	switch any(zero).(type) {
	case string:
		v = raw
	case int:
		v, err = strconv.Atoi(raw)
	case int64:
		v, err = strconv.ParseInt(raw, 10, 64)
	case float64:
		v, err = strconv.ParseFloat(raw, 64)
	case bool:
		v, err = strconv.ParseBool(raw)
	}
	if err != nil {
		return zero, false
	}
	return v.(T), true
}
