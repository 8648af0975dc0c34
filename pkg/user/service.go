package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// UserInfo is the handler-facing view of a user account. It never
// carries the encrypted TOTP secret.
type UserInfo struct {
	ID                  uuid.UUID `json:"id"`
	Email               string    `json:"email"`
	Name                string    `json:"name,omitempty"`
	TwoFactorEnabled    bool      `json:"two_factor_enabled"`
	TwoFactorVerifiedAt time.Time `json:"two_factor_verified_at,omitempty"`
}

type UserService struct {
	repository UserRepository
}

func NewUserService(repository UserRepository) *UserService {
	return &UserService{
		repository: repository,
	}
}

// GetUser loads the full user record, including the encrypted secret,
// for service-side use
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repository.GetByID(ctx, id)
}

// GetUserInfo loads a user and maps it to the handler-facing view
func (s *UserService) GetUserInfo(ctx context.Context, id uuid.UUID) (UserInfo, error) {
	u, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return UserInfo{}, err
	}

	var info UserInfo
	if err := copier.Copy(&info, &u); err != nil {
		return UserInfo{}, fmt.Errorf("failed to map user: %w", err)
	}
	if !u.VerifiedAtValid {
		info.TwoFactorVerifiedAt = time.Time{}
	}

	return info, nil
}
