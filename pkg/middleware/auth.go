package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"airrvie/pkg/apperr"
	"airrvie/pkg/token"
)

// Bearer authenticates the Authorization header and puts the subject user
// id on the context under "uid". Missing, malformed and expired tokens are
// all 401.
func Bearer(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(h, "Bearer ") {
				return apperr.JSON(c, apperr.With(apperr.ErrUnauthorized, "missing bearer token"))
			}
			uid, err := token.Verify(secret, strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				logrus.WithField("path", c.Path()).Debug("rejected bearer token")
				return apperr.JSON(c, err)
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}

// UID reads the authenticated user id set by Bearer.
func UID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}
