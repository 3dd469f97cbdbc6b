// Package web is a small layer over gin that lets handlers return errors
// and share request-scoped values through a plain context.Context.
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Handler handles a single request. A returned error has already been
// written to the client by RespondError and is only logged by the App.
type Handler func(c *Context) error

// Middleware wraps a Handler with another Handler.
type Middleware func(Handler) Handler

// App is the entrypoint into the HTTP surface of the service.
type App struct {
	*gin.Engine
	mw       []Middleware
	log      zerolog.Logger
	validate *validator.Validate
}

func NewApp(log zerolog.Logger, mw ...Middleware) *App {
	engine := gin.New()
	engine.Use(gin.Recovery())

	return &App{
		Engine:   engine,
		mw:       mw,
		log:      log,
		validate: validator.New(),
	}
}

// Handle mounts handler at method and path. Route middleware runs inside the
// application wide middleware.
func (a *App) Handle(method string, path string, handler Handler, mw ...Middleware) {
	handler = wrapMiddleware(mw, handler)
	handler = wrapMiddleware(a.mw, handler)

	a.Engine.Handle(method, path, func(gc *gin.Context) {
		c := &Context{
			Context: gc,
			Ctx:     gc.Request.Context(),
			app:     a,
		}

		if err := handler(c); err != nil {
			event := a.log.Warn()
			if status := StatusOf(err); status >= http.StatusInternalServerError {
				event = a.log.Error()
			}
			event.Err(err).
				Str("method", method).
				Str("path", gc.Request.URL.Path).
				Int("status", gc.Writer.Status()).
				Msg("request failed")
		}
	})
}

func (a *App) Get(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodGet, path, handler, mw...)
}

func (a *App) Post(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodPost, path, handler, mw...)
}

func (a *App) Put(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodPut, path, handler, mw...)
}

func (a *App) Patch(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodPatch, path, handler, mw...)
}

func (a *App) Delete(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodDelete, path, handler, mw...)
}

func wrapMiddleware(mw []Middleware, handler Handler) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		if mw[i] != nil {
			handler = mw[i](handler)
		}
	}
	return handler
}
