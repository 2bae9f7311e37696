package middleware

import (
	"strings"

	"hireflow-api/core/constants"
	"hireflow-api/core/controller"
	"hireflow-api/core/errors"
	"hireflow-api/core/utils"

	"github.com/labstack/echo/v4"
)

type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

// AuthMiddleware validates the bearer token and stores its claims in the
// request context under constants.ContextTokenData.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return controller.NewErrorResponse(controller.HTTPStatusFor(errors.ErrMissingAuthorizationHeader),
					errors.ErrMissingAuthorizationHeader, "Missing Authorization header")
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return controller.NewErrorResponse(controller.HTTPStatusFor(errors.ErrInvalidTokenFormat),
					errors.ErrInvalidTokenFormat, "Authorization header must be a Bearer token")
			}

			claims, err := utils.ValidateAndParseToken(tokenString)
			if err != nil {
				code := errors.ErrUnauthorized
				msg := "Invalid or expired token"
				if ae, isApp := err.(*errors.AppError); isApp {
					code = ae.Code
					msg = ae.Message
				}
				return controller.NewErrorResponse(controller.HTTPStatusFor(code), code, msg)
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}
