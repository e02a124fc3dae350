package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /seller/store のHTTP（店舗情報の管理）
type SellerStoreHandler struct {
	uc *usecase.StoreUsecase
}

func NewSellerStoreHandler(uc *usecase.StoreUsecase) *SellerStoreHandler {
	return &SellerStoreHandler{uc: uc}
}

type StoreRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Phone         string `json:"phone"`
	MessengerLink string `json:"messenger_link"`
}

type StoreVisibilityRequest struct {
	IsVisible bool `json:"is_visible"`
}

// /seller/store系のルートを登録（sellerのみ）
func (h *SellerStoreHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/seller/store")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.Use(middleware.RoleGuard(model.RoleSeller))

	g.GET("", h.getMyStore)
	g.POST("", h.create)
	g.PUT("", h.update)
	g.PATCH("/visibility", h.setVisibility)
}

func (h *SellerStoreHandler) getMyStore(c echo.Context) error {
	sellerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetMyStore(c.Request().Context(), sellerID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SellerStoreHandler) create(c echo.Context) error {
	sellerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req StoreRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateStore(c.Request().Context(), sellerID, usecase.StoreInput{
		Name:          req.Name,
		Description:   req.Description,
		Phone:         req.Phone,
		MessengerLink: req.MessengerLink,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *SellerStoreHandler) update(c echo.Context) error {
	sellerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req StoreRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateStore(c.Request().Context(), sellerID, usecase.StoreInput{
		Name:          req.Name,
		Description:   req.Description,
		Phone:         req.Phone,
		MessengerLink: req.MessengerLink,
	}); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, usecase.SuccessResponse{Message: "updated"})
}

func (h *SellerStoreHandler) setVisibility(c echo.Context) error {
	sellerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req StoreVisibilityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.SetVisibility(c.Request().Context(), sellerID, req.IsVisible); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, usecase.SuccessResponse{Message: "updated"})
}
