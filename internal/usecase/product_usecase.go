package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// ProductUsecase はセラーの商品管理。
// すべての操作はセラー自身の店舗の商品に限定する。
type ProductUsecase struct {
	productRepo repo.ProductRepository
	storeRepo   repo.StoreRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, storeRepo repo.StoreRepository) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		storeRepo:   storeRepo,
	}
}

type ProductInput struct {
	Name        string
	Description string
	Price       int64
	ImageURL    string
	Category    string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
}

// 自分の店舗の商品一覧
func (u *ProductUsecase) ListMyProducts(ctx context.Context, sellerID int64) (ProductListOutput, error) {
	store, err := u.requireStore(ctx, sellerID)
	if err != nil {
		return ProductListOutput{}, err
	}

	items, err := u.productRepo.ListByStoreID(ctx, store.ID)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{Items: items}, nil
}

// 商品追加（店舗が先に必要）
func (u *ProductUsecase) AddProduct(ctx context.Context, sellerID int64, in ProductInput) (model.Product, error) {
	store, err := u.requireStore(ctx, sellerID)
	if err != nil {
		return model.Product{}, err
	}

	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		StoreID:     store.ID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// 商品更新（他店舗の商品は「存在しない扱い」）
func (u *ProductUsecase) UpdateProduct(ctx context.Context, sellerID int64, productID int64, in ProductInput) error {
	store, err := u.requireStore(ctx, sellerID)
	if err != nil {
		return err
	}

	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.StoreID != store.ID {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price
	p.ImageURL = in.ImageURL
	p.Category = in.Category

	if err := u.productRepo.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 商品削除
func (u *ProductUsecase) DeleteProduct(ctx context.Context, sellerID int64, productID int64) error {
	store, err := u.requireStore(ctx, sellerID)
	if err != nil {
		return err
	}

	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.StoreID != store.ID {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.productRepo.Delete(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// セラーの店舗を取得。無ければ「先に店舗を作る」案内。
func (u *ProductUsecase) requireStore(ctx context.Context, sellerID int64) (model.Store, error) {
	if sellerID <= 0 {
		return model.Store{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	store, err := u.storeRepo.FindBySellerID(ctx, sellerID)
	if err == repo.ErrNotFound {
		return model.Store{}, NewHTTPError(http.StatusBadRequest, "create store first")
	}
	if err != nil {
		return model.Store{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return store, nil
}
