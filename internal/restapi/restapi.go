// Package restapi exposes the public catalog endpoints over the shared
// web server.
package restapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/feastlane/feastlane/internal/webserver"
)

// RegisterRoutes wires every catalog endpoint. Call after webserver.Init.
func RegisterRoutes() {
	registerSetMenuRoutes()
}

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(webserver.DBContextKey).(*gorm.DB)
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, errorResponse{Error: code, Message: message})
}
