package usecase

import (
	"context"
	"fmt"
	"net/http"

	"bibigin/internal/domain/model"
	repo "bibigin/internal/repository"
)

// 管理側の在庫操作。絶対値セットだけで、減算はしない。
// 購入による減算はチェックアウトのトランザクションの専任。
type AdminProductUsecase struct {
	tx        repo.TransactionManager
	auditRepo repo.AuditLogRepository
	clock     Clock
}

func NewAdminProductUsecase(tx repo.TransactionManager, auditRepo repo.AuditLogRepository, clock Clock) *AdminProductUsecase {
	return &AdminProductUsecase{tx: tx, auditRepo: auditRepo, clock: clock}
}

type SetStockInput struct {
	Stock  int64
	Reason string
}

// SetStock は在庫の現在値を設定し、差分を調整履歴に残す
func (u *AdminProductUsecase) SetStock(ctx context.Context, actorAdminUserID string, productID string, in SetStockInput) error {
	if actorAdminUserID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid stock")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, productID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Inventory().SetStock(ctx, productID, in.Stock); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//調整履歴（差分で残す）
		if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
			ProductID:   productID,
			AdminUserID: actorAdminUserID,
			Delta:       in.Stock - p.Stock,
			Reason:      in.Reason,
			CreatedAt:   u.clock.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//監査ログ（UPDATE_STOCK）
		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionUpdateStock,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   productID,
			BeforeJSON:   fmt.Sprintf(`{"stock":%d}`, p.Stock),
			AfterJSON:    fmt.Sprintf(`{"stock":%d}`, in.Stock),
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}
