package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/gobyauth/internal/middleware"
	"github.com/nfrund/gobyauth/internal/view/dto/auth"
	"github.com/nfrund/gobyauth/web/src/templates/pages"
)

// HomeGet handles the GET request for the home page.
func HomeGet(c echo.Context) error {
	data := auth.HomeData{Session: sessionData(middleware.SessionFromContext(c))}
	return renderPage(c, http.StatusOK, "Home", pages.Home(data))
}

// HealthGet reports liveness.
func HealthGet(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
