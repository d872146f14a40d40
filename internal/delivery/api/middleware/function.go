package middleware

import (
	"net/http"

	"zenlit/internal/delivery/api/response"
	domainerrors "zenlit/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Headers sent on every response of a function endpoint, including failures.
const (
	functionAllowOrigin  = "*"
	functionAllowMethods = "POST, GET, OPTIONS, PUT, DELETE"
	functionAllowHeaders = "authorization, x-client-info, apikey, content-type"
)

// FunctionCORS applies the permissive CORS policy of function endpoints and answers
// preflight requests with an empty 200.
func FunctionCORS(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Response().Header()
		header.Set(echo.HeaderAccessControlAllowOrigin, functionAllowOrigin)
		header.Set(echo.HeaderAccessControlAllowMethods, functionAllowMethods)
		header.Set(echo.HeaderAccessControlAllowHeaders, functionAllowHeaders)

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

// FunctionErrors renders errors from function endpoints as {"success":false,"error":...}.
func FunctionErrors(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		if err == nil || c.Response().Committed {
			return err
		}

		status, message := describeFunctionError(err)

		return response.FunctionFailure(c, status, message)
	}
}

func describeFunctionError(err error) (int, string) {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		message := appErr.Message()
		if details := appErr.Details(); details != "" {
			message += ": " + details
		}

		return appErr.HTTPCode(), message
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}

		return httpErr.Code, http.StatusText(httpErr.Code)
	}

	return http.StatusInternalServerError, err.Error()
}
