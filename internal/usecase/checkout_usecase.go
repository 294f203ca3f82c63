package usecase

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"bibigin/internal/domain/model"
	"bibigin/internal/domain/pricing"
	repo "bibigin/internal/repository"

	"github.com/shopspring/decimal"
)

// リトライの初回待ち時間。2回目以降は倍々に延ばす。
const retryBaseDelay = 50 * time.Millisecond

// CheckoutUsecase は注文確定処理。
// このシステムで在庫・注文履歴をまとめて書き換える唯一の場所。
type CheckoutUsecase struct {
	tx          repo.TransactionManager
	tiers       pricing.TierTable
	mailer      OrderMailer
	idGen       IDGenerator
	clock       Clock
	maxAttempts int
}

func NewCheckoutUsecase(
	tx repo.TransactionManager,
	tiers pricing.TierTable,
	mailer OrderMailer,
	idGen IDGenerator,
	clock Clock,
	maxAttempts int,
) *CheckoutUsecase {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &CheckoutUsecase{
		tx:          tx,
		tiers:       tiers,
		mailer:      mailer,
		idGen:       idGen,
		clock:       clock,
		maxAttempts: maxAttempts,
	}
}

type CheckoutInput struct {
	UserID        string
	CustomerEmail string
	Lines         []model.CartLine
	Shipping      model.ShippingAddress
	Notes         string
}

type OrderItemOutput struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

type OrderOutput struct {
	ID            string                `json:"id"`
	CustomerID    string                `json:"customer_id"`
	CustomerEmail string                `json:"customer_email"`
	Items         []OrderItemOutput     `json:"items"`
	Shipping      model.ShippingAddress `json:"shipping"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	ShippingCost  decimal.Decimal       `json:"shipping_cost"`
	Total         decimal.Decimal       `json:"total"`
	Status        string                `json:"status"`
	PaymentStatus string                `json:"payment_status"`
	Notes         string                `json:"notes,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

// PlaceOrder は注文を確定する。
// 在庫確認・金額計算・注文作成・在庫減算・注文履歴更新を
// 1つのトランザクションで行い、全部成功か全部失敗かのどちらかにする。
// 直列化の衝突はトランザクションを読み直しからやり直す。
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, in CheckoutInput) (OrderOutput, error) {
	if len(in.Lines) == 0 {
		return OrderOutput{}, ErrEmptyCart
	}
	if in.UserID == "" {
		return OrderOutput{}, ErrUserNotFound
	}

	//同じ商品の行は数量をまとめる
	lines, err := mergeCartLines(in.Lines)
	if err != nil {
		return OrderOutput{}, err
	}

	var out OrderOutput

	for attempt := 0; attempt < u.maxAttempts; attempt++ {
		if attempt > 0 {
			//指数バックオフしてからやり直す
			delay := retryBaseDelay << (attempt - 1)
			select {
			case <-ctx.Done():
				return OrderOutput{}, ctx.Err()
			case <-time.After(delay):
			}
		}

		err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			return u.placeOnce(ctx, r, in, lines, &out)
		})
		if err == nil {
			//コミット後のベストエフォート通知。失敗しても注文は成立済み。
			u.notify(ctx, out.ID, in)
			return out, nil
		}
		if errors.Is(err, repo.ErrConflict) {
			continue
		}
		return OrderOutput{}, err
	}

	log.Printf("[checkout] giving up after %d attempts: user=%s", u.maxAttempts, in.UserID)
	return OrderOutput{}, ErrOrderPlacementFailed
}

// 1回分の読み→計算→書き。repo.ErrConflictを返すと呼び出し側がやり直す。
func (u *CheckoutUsecase) placeOnce(
	ctx context.Context,
	r repo.TxRepos,
	in CheckoutInput,
	lines []model.CartLine,
	out *OrderOutput,
) error {
	//ユーザー存在確認
	user, err := r.Users().FindByID(ctx, in.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	//読みフェーズ：全商品の在庫を確認してから書く
	items := make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		p, err := r.Products().FindByID(ctx, line.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return &ProductNotFoundError{ProductID: line.ProductID}
		}
		if err != nil {
			return err
		}

		//カタログから外れた商品は存在しない扱い
		if p.Status != model.ProductStatusActive {
			return &ProductNotFoundError{ProductID: line.ProductID}
		}

		if p.Stock < line.Quantity {
			return &InsufficientStockError{ProductID: line.ProductID, Available: p.Stock}
		}

		//名前と価格は注文時点のスナップショット
		items = append(items, model.OrderItem{
			ProductID:           line.ProductID,
			ProductNameSnapshot: p.Name,
			UnitPriceSnapshot:   line.UnitPrice,
			Quantity:            line.Quantity,
		})
	}

	//金額計算（純関数）
	totals := pricing.CalculateTotals(lines, u.tiers)

	//書きフェーズ
	now := u.clock.Now()
	order := model.Order{
		ID:            u.idGen.NewID(),
		CustomerID:    user.ID,
		CustomerEmail: in.CustomerEmail,
		Shipping:      in.Shipping,
		Subtotal:      totals.Subtotal,
		ShippingCost:  totals.ShippingCost,
		Total:         totals.Total,
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
		PaymentMethod: "manual",
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := r.Orders().Create(ctx, order); err != nil {
		return err
	}
	if err := r.OrderItems().CreateBulk(ctx, order.ID, items); err != nil {
		return err
	}

	//在庫減算。条件付きUPDATEなので負にはならない。
	for _, line := range lines {
		ok, err := r.Inventory().DecreaseStockIfEnough(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			//読みと書きの間に他のチェックアウトが減らした。やり直し。
			return repo.ErrConflict
		}
	}

	//注文履歴と累計購入額を更新
	if err := r.Users().AppendOrder(ctx, user.ID, order.ID, totals.Total); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	*out = toOrderOutput(order, items)
	return nil
}

// コミット後の注文確認メール。失敗はログだけ残して握りつぶす。
func (u *CheckoutUsecase) notify(ctx context.Context, orderID string, in CheckoutInput) {
	if u.mailer == nil {
		return
	}

	data := OrderEmailData{
		OrderID:   orderID,
		FirstName: in.Shipping.FirstName,
		LastName:  in.Shipping.LastName,
		Email:     in.CustomerEmail,
		Phone:     in.Shipping.Phone,
	}

	if err := u.mailer.SendOrderConfirmation(ctx, data); err != nil {
		//メールが送れなくても注文は成立している
		log.Printf("[checkout] confirmation mail failed: order=%s err=%v", orderID, err)
	}
}

// 同じ商品を複数行で持つカートを1行にまとめる。順序は最初の出現順を保つ。
func mergeCartLines(lines []model.CartLine) ([]model.CartLine, error) {
	merged := make([]model.CartLine, 0, len(lines))
	index := make(map[string]int, len(lines))

	for _, line := range lines {
		if line.ProductID == "" {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid product_id")
		}
		if line.Quantity < 1 {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}

		if i, ok := index[line.ProductID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}

	return merged, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			Price:     it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		CustomerEmail: o.CustomerEmail,
		Items:         outItems,
		Shipping:      o.Shipping,
		Subtotal:      o.Subtotal,
		ShippingCost:  o.ShippingCost,
		Total:         o.Total,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
	}
}
