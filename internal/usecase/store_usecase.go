package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type StoreUsecase struct {
	storeRepo   repo.StoreRepository
	productRepo repo.ProductRepository
}

// DI
func NewStoreUsecase(storeRepo repo.StoreRepository, productRepo repo.ProductRepository) *StoreUsecase {
	return &StoreUsecase{
		storeRepo:   storeRepo,
		productRepo: productRepo,
	}
}

// 公開店舗一覧
type StoreListOutput struct {
	Items []model.Store `json:"items"`
}

// 店舗メニュー（店舗情報＋商品）
type StoreMenuOutput struct {
	Store    model.Store     `json:"store"`
	Products []model.Product `json:"products"`
}

type StoreInput struct {
	Name          string
	Description   string
	Phone         string
	MessengerLink string
}

// is_visible=falseの店舗は一覧に出さない
func (u *StoreUsecase) ListVisibleStores(ctx context.Context) (StoreListOutput, error) {
	stores, err := u.storeRepo.ListVisible(ctx)
	if err != nil {
		return StoreListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return StoreListOutput{Items: stores}, nil
}

// GetStoreMenu は公開店舗のメニューを返す。
// 非公開・存在しない店舗は区別せず404（直接リンクでも見えない）。
func (u *StoreUsecase) GetStoreMenu(ctx context.Context, storeID int64) (StoreMenuOutput, error) {
	if storeID <= 0 {
		return StoreMenuOutput{}, NewHTTPError(http.StatusBadRequest, "invalid store id")
	}

	store, err := u.storeRepo.FindByID(ctx, storeID)
	if err == repo.ErrNotFound {
		return StoreMenuOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return StoreMenuOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !store.IsVisible {
		return StoreMenuOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	products, err := u.productRepo.ListByStoreID(ctx, store.ID)
	if err != nil {
		return StoreMenuOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return StoreMenuOutput{Store: store, Products: products}, nil
}

// セラー自身の店舗を取得
func (u *StoreUsecase) GetMyStore(ctx context.Context, sellerID int64) (model.Store, error) {
	if sellerID <= 0 {
		return model.Store{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	store, err := u.storeRepo.FindBySellerID(ctx, sellerID)
	if err == repo.ErrNotFound {
		return model.Store{}, NewHTTPError(http.StatusNotFound, "store not found")
	}
	if err != nil {
		return model.Store{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return store, nil
}

// CreateStore は店舗作成。1セラー1店舗で、2つ目は409。
func (u *StoreUsecase) CreateStore(ctx context.Context, sellerID int64, in StoreInput) (model.Store, error) {
	if sellerID <= 0 {
		return model.Store{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Store{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	//既に持っていたら作れない
	_, err := u.storeRepo.FindBySellerID(ctx, sellerID)
	if err == nil {
		return model.Store{}, NewHTTPError(http.StatusConflict, "store already exists")
	}
	if err != repo.ErrNotFound {
		return model.Store{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.storeRepo.Create(ctx, model.Store{
		SellerID:      sellerID,
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Phone:         in.Phone,
		MessengerLink: in.MessengerLink,
		IsVisible:     true,
	})
	if err != nil {
		return model.Store{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return created, nil
}

// 自分の店舗の情報更新
func (u *StoreUsecase) UpdateStore(ctx context.Context, sellerID int64, in StoreInput) error {
	if sellerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}

	store, err := u.storeRepo.FindBySellerID(ctx, sellerID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "store not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	store.Name = strings.TrimSpace(in.Name)
	store.Description = in.Description
	store.Phone = in.Phone
	store.MessengerLink = in.MessengerLink

	if err := u.storeRepo.Update(ctx, store); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "store not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 公開/非公開の切り替え
func (u *StoreUsecase) SetVisibility(ctx context.Context, sellerID int64, visible bool) error {
	if sellerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	store, err := u.storeRepo.FindBySellerID(ctx, sellerID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "store not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.storeRepo.SetVisibility(ctx, store.ID, visible); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "store not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
