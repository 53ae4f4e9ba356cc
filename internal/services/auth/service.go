package auth

import (
	"context"
	"log"

	domain "arcbank/internal/errors"
	"arcbank/internal/models"
	"arcbank/internal/repositories"
	"arcbank/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Login(ctx context.Context, email, password string) (*models.User, string, string, error)
	RefreshTokens(ctx context.Context, refreshToken string) (string, string, error)

	// ValidateToken parses and verifies a credential. Used by the HTTP
	// middleware and by the live-channel handshake, which must refuse
	// the connection before any registration happens.
	ValidateToken(ctx context.Context, tokenString string) (*models.UserClaims, error)
}

type service struct {
	userRepo repositories.UserRepository
}

func NewService(userRepo repositories.UserRepository) Service {
	return &service{
		userRepo: userRepo,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Printf("Login failed: user not found for %s", email)
		return nil, "", "", domain.ErrAuthFailure.WithMessage("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("Login failed: incorrect password for user %d", user.ID)
		return nil, "", "", domain.ErrAuthFailure.WithMessage("invalid credentials")
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	})
	if err != nil {
		log.Println("Error generating tokens:", err)
		return nil, "", "", domain.ErrPersistence
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) RefreshTokens(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", domain.ErrAuthFailure.WithMessage("invalid refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", domain.ErrAuthFailure
	}
	if user.TokenVersion != claims.TokenVersion {
		return "", "", domain.ErrAuthFailure.WithMessage("session expired")
	}

	return utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	})
}

func (s *service) ValidateToken(ctx context.Context, tokenString string) (*models.UserClaims, error) {
	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		return nil, domain.ErrAuthFailure
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrAuthFailure
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, domain.ErrAuthFailure.WithMessage("session expired")
	}

	return claims, nil
}
