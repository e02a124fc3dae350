package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/handler"
	appmw "app/internal/middleware"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// Handlers はルート登録に必要なhandler一式。
type Handlers struct {
	Auth          *handler.AuthHandler
	Store         *handler.StoreHandler
	Cart          *handler.CartHandler
	Order         *handler.OrderHandler
	SellerStore   *handler.SellerStoreHandler
	SellerProduct *handler.SellerProductHandler
	SellerOrder   *handler.SellerOrderHandler
}

// New はechoを組み立てて返す（起動はmain側）。
func New(cfg config.Config, log zerolog.Logger, userRepo repository.UserRepository, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(appmw.RequestLogger(log))
	e.Use(echomw.Recover())

	// フロントからのcookie付きリクエストを許可
	if cfg.FEURL != "" {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     []string{cfg.FEURL},
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
			AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-CSRF-Token"},
			AllowCredentials: true,
		}))
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	h.Auth.RegisterRoutes(e, cfg, userRepo)
	h.Store.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e, cfg, userRepo)
	h.Order.RegisterRoutes(e, cfg, userRepo)
	h.SellerStore.RegisterRoutes(e, cfg, userRepo)
	h.SellerProduct.RegisterRoutes(e, cfg, userRepo)
	h.SellerOrder.RegisterRoutes(e, cfg, userRepo)

	return e
}
