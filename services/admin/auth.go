package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"coolrentals/database"
	adminRepo "coolrentals/database/repository/admin"
	"coolrentals/models"
	"coolrentals/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// Login checks the credentials and issues a bearer token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *DefaultAdminService) Login(ctx context.Context, email, password string) (*models.AdminAuthResponse, error) {
	account, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.UnauthorizedError("Invalid credentials")
		}
		return nil, utils.InternalError(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, utils.UnauthorizedError("Invalid credentials")
	}

	token, _, err := utils.GenerateToken(account.ID.Hex(), account.Email, s.TokenTTL)
	if err != nil {
		return nil, utils.InternalError(fmt.Errorf("failed to sign token: %w", err))
	}
	utils.GetLogger().Info("Admin logged in", zap.String("adminId", account.ID.Hex()))
	return &models.AdminAuthResponse{Token: token, Admin: *account}, nil
}

func (s *DefaultAdminService) Logout(ctx context.Context, claims *utils.TokenClaims) error {
	if claims == nil || claims.TokenID == "" {
		return nil
	}
	if err := s.Tokens.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return utils.InternalError(fmt.Errorf("failed to revoke token: %w", err))
	}
	return nil
}

// CreateAdmin registers a back-office account with a bcrypt-hashed password.
func (s *DefaultAdminService) CreateAdmin(ctx context.Context, name, email, password string) (*models.Admin, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, utils.ValidationError("Name is required")
	}
	if err := utils.Validator().Var(email, "required,email"); err != nil {
		return nil, utils.ValidationError("Please provide a valid email")
	}
	if len(password) < minPasswordLength {
		return nil, utils.ValidationError(fmt.Sprintf("Password must be at least %d characters long", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.InternalError(fmt.Errorf("failed to hash password: %w", err))
	}
	account := &models.Admin{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := s.Repo.Create(ctx, account); err != nil {
		if errors.Is(err, adminRepo.ErrDuplicateEmail) {
			return nil, utils.ValidationError("Admin user already exists with this email")
		}
		return nil, utils.InternalError(err)
	}
	return account, nil
}
