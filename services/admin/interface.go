package admin

import (
	"context"
	"time"

	adminRepo "coolrentals/database/repository/admin"
	"coolrentals/models"
	"coolrentals/utils"
)

type AdminService interface {
	Login(ctx context.Context, email, password string) (*models.AdminAuthResponse, error)
	// Logout revokes the token described by claims until it expires.
	Logout(ctx context.Context, claims *utils.TokenClaims) error
	CreateAdmin(ctx context.Context, name, email, password string) (*models.Admin, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Repo     adminRepo.AdminRepository
	Tokens   utils.TokenStore
	TokenTTL time.Duration
}

func NewDefaultAdminService(repo adminRepo.AdminRepository, tokens utils.TokenStore, ttl time.Duration) *DefaultAdminService {
	if tokens == nil {
		tokens = utils.NoopTokenStore{}
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &DefaultAdminService{Repo: repo, Tokens: tokens, TokenTTL: ttl}
}
