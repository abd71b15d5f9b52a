// Package server wires the HTTP API: routes, session middleware, request
// logging, and error mapping.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"notekeeper/internal/auth"
	authhandler "notekeeper/internal/auth/handler"
	notehandler "notekeeper/internal/note/handler"
)

// Config holds HTTP server configuration.
type Config struct {
	Addr string
}

// Server is the HTTP server for the notes API.
type Server struct {
	echo   *echo.Echo
	logger *zap.Logger
	addr   string
}

// New wires routes and middleware and returns the server.
func New(cfg Config, logger *zap.Logger, resolver *auth.Resolver, authH *authhandler.Handler, noteH *notehandler.Handler) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(auth.SessionMiddleware(resolver))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	api.POST("/auth/signup", authH.SignUp)
	api.POST("/auth/signin", authH.SignIn)
	api.POST("/auth/signout", authH.SignOut)

	api.GET("/notes", noteH.List)
	api.POST("/notes", noteH.Create)
	api.GET("/notes/:id", noteH.Get)
	api.PATCH("/notes/:id", noteH.Update)
	api.DELETE("/notes/:id", noteH.Delete)

	return &Server{echo: e, logger: logger, addr: cfg.Addr}
}

// Handler returns the underlying http.Handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start begins serving. Blocks until the server stops.
func (s *Server) Start() error {
	return s.echo.Start(s.addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return err
		}
	}
}
