// Package webserver owns the echo instance: middleware, route
// registration helpers and server lifecycle.
package webserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/feastlane/feastlane/internal/app"
)

// DBContextKey is where the request middleware stores the gorm handle.
const DBContextKey = "gormdb"

type WebServer struct {
	root   *echo.Echo
	appCtx app.AppContext
}

var server *WebServer

// Init builds the echo instance with logging, recovery and database
// injection middleware. Must run before any route registration.
func Init(appCtx app.AppContext) *WebServer {
	root := echo.New()
	root.HideBanner = true
	root.HidePort = true

	root.Use(middleware.Recover())
	root.Use(zapLoggerMiddleware())
	root.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(DBContextKey, appCtx.DB())
			return next(c)
		}
	})

	server = &WebServer{root: root, appCtx: appCtx}
	return server
}

// Start listens on the configured address and blocks.
func (s *WebServer) Start() error {
	cfg := s.appCtx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.S().Infof("Starting web server on %s", addr)
	return s.root.Start(addr)
}

// Echo exposes the underlying instance (used in tests).
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

// ApiGET registers a GET route on the shared server.
func ApiGET(path string, handler echo.HandlerFunc) {
	server.root.GET(path, handler)
}

// ApiPOST registers a POST route on the shared server.
func ApiPOST(path string, handler echo.HandlerFunc) {
	server.root.POST(path, handler)
}

func zapLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			res := c.Response()
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
			}
			if res.Status >= http.StatusInternalServerError {
				zap.L().Error("http request", fields...)
			} else {
				zap.L().Info("http request", fields...)
			}
			return nil
		}
	}
}
