package validator

import (
	"regexp"
	"strings"

	"bibigin/internal/domain/model"
)

// チェックアウトフォームのフィールド別エラー
type FieldErrors map[string]string

func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

var postalRe = regexp.MustCompile(`^[0-9]{5}$`)

// ValidateCheckout は注文フォームの入力を検証する。
// ルールはフロントのフォームと揃えてある。
func ValidateCheckout(email string, lines []model.CartLine, addr model.ShippingAddress, notes string) FieldErrors {
	fe := FieldErrors{}

	if !isEmailLike(strings.TrimSpace(email)) {
		fe["email"] = "invalid email"
	}

	if len(lines) == 0 {
		fe["items"] = "cart is empty"
	}
	for _, l := range lines {
		if strings.TrimSpace(l.ProductID) == "" {
			fe["items"] = "invalid product"
			break
		}
		if l.Quantity < 1 {
			fe["items"] = "invalid quantity"
			break
		}
	}

	if !nameLengthOK(addr.FirstName) {
		fe["first_name"] = "must be 2-50 characters"
	}
	if !nameLengthOK(addr.LastName) {
		fe["last_name"] = "must be 2-50 characters"
	}

	street := strings.TrimSpace(addr.Street)
	if n := len([]rune(street)); n < 5 || n > 100 {
		fe["street"] = "must be 5-100 characters"
	}

	city := strings.TrimSpace(addr.City)
	if n := len([]rune(city)); n < 2 || n > 50 {
		fe["city"] = "must be 2-50 characters"
	}

	if !postalRe.MatchString(strings.TrimSpace(addr.PostalCode)) {
		fe["postal_code"] = "must be 5 digits"
	}

	if strings.TrimSpace(addr.Country) == "" {
		fe["country"] = "required"
	}

	// 電話は任意
	if strings.TrimSpace(addr.Phone) != "" && !isItalianPhone(addr.Phone) {
		fe["phone"] = "invalid phone"
	}

	if len([]rune(notes)) > 500 {
		fe["notes"] = "must be 500 characters or less"
	}

	return fe
}
