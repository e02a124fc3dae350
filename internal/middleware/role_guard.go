package middleware

import (
	"net/http"

	"app/internal/domain/model"

	"github.com/labstack/echo/v4"
)

//contextに入っているroleが期待したものか確認します。

func RoleGuard(expected model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//buyer画面にsellerは入れない（逆も同じ）
			if role != string(expected) {
				return c.JSON(http.StatusForbidden, errorJSON(string(expected)+" only"))
			}

			return next(c)
		}
	}
}
