package validator

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"bibigin/internal/usecase"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")

	// refresh tokenが不正
	ErrInvalidRefresh = errors.New("invalid refresh")
)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// サインアップの入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, in usecase.AuthRegisterRequest) error {
	email := strings.TrimSpace(in.Email)

	// 必須チェック
	if email == "" || in.Password == "" {
		return ErrInvalidInput
	}

	// email形式
	if !isEmailLike(email) {
		return ErrInvalidInput
	}

	// パスワード最低文字数（MVP: 8）
	if len(in.Password) < 8 {
		return ErrInvalidInput
	}

	// 氏名は2〜50文字
	if !nameLengthOK(in.FirstName) || !nameLengthOK(in.LastName) {
		return ErrInvalidInput
	}

	// 電話は任意。入っていれば形式チェック
	if strings.TrimSpace(in.Phone) != "" && !isItalianPhone(in.Phone) {
		return ErrInvalidInput
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if email == "" || password == "" {
		return ErrInvalidInput
	}

	// email形式
	if !isEmailLike(email) {
		return ErrInvalidInput
	}

	return nil
}

// refresh 入力を検証
func (v *authValidator) ValidateRefresh(ctx context.Context, refreshToken string, userAgent string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return ErrInvalidRefresh
	}

	return nil
}

func nameLengthOK(s string) bool {
	n := len([]rune(strings.TrimSpace(s)))
	return n >= 2 && n <= 50
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	re := regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	return re.MatchString(s)
}

var phoneRe = regexp.MustCompile(`^(\+39)?[0-9]{9,10}$`)

// イタリアの携帯/固定番号。スペースとハイフンは無視する。
func isItalianPhone(s string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(s))
	return phoneRe.MatchString(cleaned)
}
