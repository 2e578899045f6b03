package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "tambo/internal/errors"
)

// jsonError maps a domain error onto the wire. Internal failures keep their
// detail in the server log only; the client sees a generic message.
func jsonError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}
