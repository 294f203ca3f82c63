package usecase

import (
	"context"
	"net/http"
	"strings"

	"bibigin/internal/domain/model"
	repo "bibigin/internal/repository"
)

// 会員プロフィールの参照・更新。
// role / is_active / orders / total_spent はここからは変更できない。
type UserUsecase struct {
	userRepo repo.UserRepository
	clock    Clock
}

func NewUserUsecase(userRepo repo.UserRepository, clock Clock) *UserUsecase {
	return &UserUsecase{userRepo: userRepo, clock: clock}
}

type UpdateProfileInput struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

func (u *UserUsecase) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return nil, NewHTTPError(http.StatusNotFound, "not found")
	}

	//ハッシュは返さない
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile は本人のプロフィール項目だけを更新する
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*model.User, error) {
	if userID == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return nil, NewHTTPError(http.StatusNotFound, "not found")
	}

	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)
	user.Phone = strings.TrimSpace(in.Phone)
	user.Street = strings.TrimSpace(in.Street)
	user.City = strings.TrimSpace(in.City)
	user.Province = strings.TrimSpace(in.Province)
	user.PostalCode = strings.TrimSpace(in.PostalCode)
	user.Country = strings.TrimSpace(in.Country)
	user.UpdatedAt = u.clock.Now()

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	user.PasswordHash = ""
	return user, nil
}
