package middleware

import (
	"net/http"

	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

// TokenVersionGuard はJWTのtvとDBのtoken_versionの一致を確認する。
// 不一致は発行済みトークンの一括失効（強制ログアウト）を意味する。
func TokenVersionGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, tv, ok := authClaimsFromContext(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//DBの最新ユーザーと突き合わせる
			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil || user == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if user.TokenVersion != tv {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			return next(c)
		}
	}
}

// AuthJWTがcontextへ入れたuser_idとtvを取り出す
func authClaimsFromContext(c echo.Context) (userID int64, tokenVersion int, ok bool) {
	userID, okID := c.Get(CtxUserIDKey).(int64)
	if !okID || userID <= 0 {
		return 0, 0, false
	}

	tokenVersion, okTV := c.Get(CtxTokenVersionKey).(int)
	if !okTV || tokenVersion < 0 {
		return 0, 0, false
	}

	return userID, tokenVersion, true
}
