package middleware

import (
	"net/http"

	"bibigin/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// AuthJWTがcontextに入れたroleがADMINのときだけ通す。
// 管理画面（gestionale）のAPIに被せる。
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if role != string(model.RoleAdmin) {
				return c.JSON(http.StatusForbidden, errorJSON("admin only"))
			}

			return next(c)
		}
	}
}
