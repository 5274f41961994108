package services

import (
	"context"
	"fmt"

	"github.com/officio/business_mgmt_app/internal/core/domain"
	portssvc "github.com/officio/business_mgmt_app/internal/core/ports/services"
	"github.com/officio/business_mgmt_app/internal/utils"
	"github.com/officio/business_mgmt_app/pkg/config"
)

// tokenService issues JWT access tokens for authenticated users.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvc {
	return &tokenService{cfg: cfg}
}

// Ensure tokenService implements the portssvc.TokenSvc interface
var _ portssvc.TokenSvc = (*tokenService)(nil)

// GenerateAccessToken creates a signed JWT with the user ID as subject.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, error) {
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, nil
}
