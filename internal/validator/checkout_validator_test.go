package validator

import (
	"strings"
	"testing"

	"bibigin/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validAddress() model.ShippingAddress {
	return model.ShippingAddress{
		FirstName:  "Mario",
		LastName:   "Rossi",
		Street:     "Via Roma 1",
		City:       "Milano",
		PostalCode: "20100",
		Country:    "IT",
		Phone:      "+39 333 1234567",
	}
}

func validLines() []model.CartLine {
	return []model.CartLine{
		{ProductID: "bibigin-750", UnitPrice: decimal.RequireFromString("89.00"), Quantity: 2},
	}
}

func TestValidateCheckout_OK(t *testing.T) {
	fe := ValidateCheckout("mario@example.com", validLines(), validAddress(), "citofonare Rossi")
	assert.True(t, fe.Empty(), "unexpected errors: %v", fe)
}

func TestValidateCheckout_FieldRules(t *testing.T) {
	cases := []struct {
		name   string
		email  string
		lines  []model.CartLine
		mutate func(*model.ShippingAddress)
		notes  string
		field  string
	}{
		{name: "bad email", email: "not-an-email", lines: validLines(), field: "email"},
		{name: "empty cart", email: "a@b.it", lines: nil, field: "items"},
		{name: "zero quantity", email: "a@b.it", lines: []model.CartLine{{ProductID: "x", Quantity: 0}}, field: "items"},
		{name: "missing product id", email: "a@b.it", lines: []model.CartLine{{ProductID: " ", Quantity: 1}}, field: "items"},
		{name: "short first name", email: "a@b.it", lines: validLines(), field: "first_name",
			mutate: func(a *model.ShippingAddress) { a.FirstName = "M" }},
		{name: "long last name", email: "a@b.it", lines: validLines(), field: "last_name",
			mutate: func(a *model.ShippingAddress) { a.LastName = strings.Repeat("x", 51) }},
		{name: "short street", email: "a@b.it", lines: validLines(), field: "street",
			mutate: func(a *model.ShippingAddress) { a.Street = "Via" }},
		{name: "short city", email: "a@b.it", lines: validLines(), field: "city",
			mutate: func(a *model.ShippingAddress) { a.City = "M" }},
		{name: "postal not 5 digits", email: "a@b.it", lines: validLines(), field: "postal_code",
			mutate: func(a *model.ShippingAddress) { a.PostalCode = "201" }},
		{name: "postal with letters", email: "a@b.it", lines: validLines(), field: "postal_code",
			mutate: func(a *model.ShippingAddress) { a.PostalCode = "2O1OO" }},
		{name: "missing country", email: "a@b.it", lines: validLines(), field: "country",
			mutate: func(a *model.ShippingAddress) { a.Country = "" }},
		{name: "bad phone", email: "a@b.it", lines: validLines(), field: "phone",
			mutate: func(a *model.ShippingAddress) { a.Phone = "12" }},
		{name: "notes too long", email: "a@b.it", lines: validLines(), field: "notes",
			notes: strings.Repeat("x", 501)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			addr := validAddress()
			if tc.mutate != nil {
				tc.mutate(&addr)
			}
			fe := ValidateCheckout(tc.email, tc.lines, addr, tc.notes)
			assert.Contains(t, fe, tc.field)
		})
	}
}

func TestValidateCheckout_PhoneFormats(t *testing.T) {
	ok := []string{"", "+39 333 1234567", "3331234567", "333-123-4567", "+393331234567"}
	for _, phone := range ok {
		addr := validAddress()
		addr.Phone = phone
		fe := ValidateCheckout("a@b.it", validLines(), addr, "")
		assert.NotContains(t, fe, "phone", "phone %q should be accepted", phone)
	}

	bad := []string{"12345", "+44 7700 900123", "abcdefghij"}
	for _, phone := range bad {
		addr := validAddress()
		addr.Phone = phone
		fe := ValidateCheckout("a@b.it", validLines(), addr, "")
		assert.Contains(t, fe, "phone", "phone %q should be rejected", phone)
	}
}
