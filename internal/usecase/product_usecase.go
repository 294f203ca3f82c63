package usecase

import (
	"context"
	"errors"
	"net/http"

	"bibigin/internal/domain/model"
	repo "bibigin/internal/repository"
)

// 公開カタログ。1銘柄ストアなのでページングは持たない。
type ProductUsecase struct {
	productRepo repo.ProductRepository
}

func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
}

// ListActive はactiveな商品を新しい順に返す
func (u *ProductUsecase) ListActive(ctx context.Context) (ProductListOutput, error) {
	items, err := u.productRepo.ListActive(ctx)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ProductListOutput{Items: items}, nil
}

// GetByID は商品を1件返す。inactiveは公開側には存在しない扱い。
func (u *ProductUsecase) GetByID(ctx context.Context, productID string) (model.Product, bool, error) {
	if productID == "" {
		return model.Product{}, false, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, false, nil
	}
	if err != nil {
		return model.Product{}, false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.Status != model.ProductStatusActive {
		return model.Product{}, false, nil
	}

	return p, true, nil
}

// MainProduct は最初のactive商品を返す（単一商品ストアのトップ表示用）
func (u *ProductUsecase) MainProduct(ctx context.Context) (model.Product, bool, error) {
	items, err := u.productRepo.ListActive(ctx)
	if err != nil {
		return model.Product{}, false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(items) == 0 {
		return model.Product{}, false, nil
	}
	return items[0], true, nil
}

// 購入可能かどうか（activeかつ在庫あり）
func IsProductAvailable(p model.Product) bool {
	return p.Status == model.ProductStatusActive && p.Stock > 0
}
