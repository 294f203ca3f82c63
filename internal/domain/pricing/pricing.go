package pricing

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"bibigin/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 送料の段。MinQty本以上ならCost。
type Tier struct {
	MinQty int64
	Cost   decimal.Decimal
}

// 昇順に並んだ送料テーブル。
// 合計本数以下で最大のMinQtyを持つ段のコストを採用する。
type TierTable []Tier

// デフォルトの送料テーブル（EUR）。
// 1本=12 / 3本以上=18 / 6本以上=22
func DefaultTiers() TierTable {
	return TierTable{
		{MinQty: 1, Cost: decimal.NewFromInt(12)},
		{MinQty: 3, Cost: decimal.NewFromInt(18)},
		{MinQty: 6, Cost: decimal.NewFromInt(22)},
	}
}

// ParseTiers は "1:12,3:18,6:22" 形式の設定値をテーブルにする。
func ParseTiers(s string) (TierTable, error) {
	parts := strings.Split(s, ",")
	tiers := make(TierTable, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid tier %q", part)
		}
		minQty, err := strconv.ParseInt(strings.TrimSpace(kv[0]), 10, 64)
		if err != nil || minQty < 1 {
			return nil, fmt.Errorf("invalid tier qty %q", kv[0])
		}
		cost, err := decimal.NewFromString(strings.TrimSpace(kv[1]))
		if err != nil || cost.IsNegative() {
			return nil, fmt.Errorf("invalid tier cost %q", kv[1])
		}
		tiers = append(tiers, Tier{MinQty: minQty, Cost: cost})
	}

	if len(tiers) == 0 {
		return nil, fmt.Errorf("empty tier table")
	}

	sort.Slice(tiers, func(i, j int) bool { return tiers[i].MinQty < tiers[j].MinQty })
	return tiers, nil
}

// CostFor は合計本数に対する送料を返す。
// どの段にも届かない本数（0本など）は送料0。
func (t TierTable) CostFor(totalQty int64) decimal.Decimal {
	cost := decimal.Zero
	for _, tier := range t {
		if tier.MinQty > totalQty {
			break
		}
		cost = tier.Cost
	}
	return cost
}

type Totals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Total        decimal.Decimal `json:"total"`
}

// CalculateTotals はカートから小計・送料・合計を計算する純関数。
// 丸めは小数2桁の四捨五入（round half up）で統一する。
func CalculateTotals(lines []model.CartLine, tiers TierTable) Totals {
	subtotal := decimal.Zero
	var totalQty int64

	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)))
		totalQty += line.Quantity
	}

	subtotal = subtotal.Round(2)
	shipping := tiers.CostFor(totalQty).Round(2)

	return Totals{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Total:        subtotal.Add(shipping),
	}
}
