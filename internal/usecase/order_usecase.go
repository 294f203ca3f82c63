package usecase

import (
	"context"
	"errors"
	"net/http"

	repo "bibigin/internal/repository"
)

// 注文の参照系。読み取り専用。
type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

// GetOrder はIDで注文を1件返す。
// 見つからないときはfound=falseを返す（エラーにしない）。
// 呼び出し側が「注文が見つかりません」を描画できるようにするため。
func (u *OrderUsecase) GetOrder(ctx context.Context, orderID string) (OrderOutput, bool, error) {
	if orderID == "" {
		return OrderOutput{}, false, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput
	found := false

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		found = true
		return nil
	})

	if err != nil {
		return OrderOutput{}, false, err
	}
	return out, found, nil
}

// ListByCustomer は顧客の注文を新しい順に返す。
// 注文のない（または存在しない）顧客は空リスト。
func (u *OrderUsecase) ListByCustomer(ctx context.Context, customerID string) ([]OrderOutput, error) {
	if customerID == "" {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByCustomerID(ctx, customerID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}
