package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/afoslt/pkg/manifest"
	"github.com/dmitrymomot/afoslt/pkg/session"
	"github.com/dmitrymomot/afoslt/pkg/view"
)

// Context is the request-scoped state handed to controller actions.
// It also implements context.Context by delegating to the request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the response writer. Writes through it run the
	// session save hook before the headers are sent.
	Response() http.ResponseWriter

	// Param returns a named placeholder captured by the matched route.
	Param(name string) string

	// Params returns a copy of all captured placeholders.
	Params() map[string]string

	// Arg returns a request argument: route placeholders, overridden by query
	// values, overridden by POST form values. Query and form values are only
	// read when the manifest enables readGetPost.
	Arg(name string) string

	// Args returns a copy of all request arguments.
	Args() map[string]string

	// Controller returns the qualified controller name being dispatched.
	Controller() string

	// Action returns the qualified action name being dispatched.
	Action() string

	// Layout returns the layout selected by the route or the manifest default.
	Layout() string

	// Manifest returns the configuration loaded for this request.
	Manifest() manifest.Manifest

	// Session returns the request session, or nil when sessions are disabled.
	Session() *session.Session

	// Error returns the error being handled while an error route or error
	// handler runs, nil otherwise.
	Error() *Error

	// Drop ends the dispatch cycle with a taxonomy code and writes the error
	// response right away. Return its result from the action:
	//
	//	return c.Drop(afoslt.CodeActionNotFound, "no such user")
	Drop(code, message string) error

	// RequestID returns the ID assigned to the request.
	RequestID() string

	// Header returns a request header.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// Render renders a view inside the current layout.
	Render(status int, view string, data any) error

	// RenderPage renders a fully described page.
	RenderPage(status int, p view.Page) error

	// Component writes a templ component as HTML.
	Component(status int, c templ.Component) error

	String(status int, s string) error
	HTML(status int, html string) error
	JSON(status int, v any) error
	NoContent(status int) error
	Redirect(status int, url string) error

	// Written reports whether the response headers were sent.
	Written() bool

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a request-scoped value, visible through Value and Get.
	Set(key, value any)
	Get(key any) any
}

type requestContext struct {
	request  *http.Request
	response *ResponseWriter
	logger   *slog.Logger
	renderer *view.Renderer
	manifest *manifest.Manifest
	session  *session.Session
	err      *Error
	drop     func(code, message string) *Error
	params   map[string]string
	args     map[string]string

	controller string
	action     string
	layout     string
}

func newContext(w http.ResponseWriter, r *http.Request, log *slog.Logger) *requestContext {
	return &requestContext{
		request:  r,
		response: newResponseWriter(w),
		logger:   log,
		params:   map[string]string{},
		args:     map[string]string{},
	}
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) Param(name string) string {
	return c.params[name]
}

func (c *requestContext) Params() map[string]string {
	return maps.Clone(c.params)
}

func (c *requestContext) Arg(name string) string {
	return c.args[name]
}

func (c *requestContext) Args() map[string]string {
	return maps.Clone(c.args)
}

func (c *requestContext) Controller() string {
	return c.controller
}

func (c *requestContext) Action() string {
	return c.action
}

func (c *requestContext) Layout() string {
	return c.layout
}

func (c *requestContext) Manifest() manifest.Manifest {
	if c.manifest == nil {
		return manifest.Default()
	}
	return *c.manifest
}

func (c *requestContext) Session() *session.Session {
	return c.session
}

func (c *requestContext) Drop(code, message string) error {
	if c.drop == nil {
		return NewError(code, message)
	}
	return c.drop(code, message)
}

func (c *requestContext) Error() *Error {
	return c.err
}

func (c *requestContext) RequestID() string {
	v, _ := c.Get(requestIDKey{}).(string)
	return v
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) Render(status int, name string, data any) error {
	return c.RenderPage(status, view.Page{View: name, Layout: c.layout, Data: data})
}

func (c *requestContext) RenderPage(status int, p view.Page) error {
	if c.renderer == nil {
		return view.ErrViewNotFound
	}
	comp, err := c.renderer.Component(p)
	if err != nil {
		return err
	}
	return c.Component(status, comp)
}

// Component renders into a buffer first so a failing component leaves the
// response untouched.
func (c *requestContext) Component(status int, comp templ.Component) error {
	var buf bytes.Buffer
	if err := comp.Render(c, &buf); err != nil {
		return err
	}
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.response.WriteHeader(status)
	_, err := c.response.Write(buf.Bytes())
	return err
}

func (c *requestContext) String(status int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(status)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *requestContext) HTML(status int, html string) error {
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.response.WriteHeader(status)
	_, err := c.response.Write([]byte(html))
	return err
}

func (c *requestContext) JSON(status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(status)
	_, err = c.response.Write(append(body, '\n'))
	return err
}

func (c *requestContext) NoContent(status int) error {
	c.response.WriteHeader(status)
	return nil
}

func (c *requestContext) Redirect(status int, url string) error {
	http.Redirect(c.response, c.request, url, status)
	return nil
}

func (c *requestContext) Written() bool {
	return c.response.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c, msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c, msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c, msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c, msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}
