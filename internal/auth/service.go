// internal/auth/service.go
// Account creation, sign-in, and token issuance

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kritsanan1/thai-vid-match/internal/common/utils"
	"github.com/kritsanan1/thai-vid-match/internal/config"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidRequest     = errors.New("invalid request")
)

// Token types embedded in JWT claims
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Service defines authentication operations
type Service interface {
	SignUp(ctx context.Context, req *SignUpRequest) (*AuthResponse, error)
	SignIn(ctx context.Context, req *SignInRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, req *RefreshRequest) (*AuthResponse, error)
	GetUser(ctx context.Context, userID string) (*User, error)
	ValidateAccessToken(tokenString string) (*utils.JWTClaims, error)
}

type service struct {
	repo Repository
	cfg  *config.Config
}

// NewService creates an auth service
func NewService(repo Repository, cfg *config.Config) Service {
	return &service{repo: repo, cfg: cfg}
}

func (s *service) SignUp(ctx context.Context, req *SignUpRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(user)
}

func (s *service) SignIn(ctx context.Context, req *SignInRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	user, err := s.repo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.buildAuthResponse(user)
}

// Refresh exchanges a valid refresh token for a fresh token pair
func (s *service) Refresh(ctx context.Context, req *RefreshRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	claims, err := utils.ValidateJWT(req.RefreshToken, s.cfg.JWTSecret)
	if err != nil || claims.Type != TokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return s.buildAuthResponse(user)
}

func (s *service) GetUser(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *service) ValidateAccessToken(tokenString string) (*utils.JWTClaims, error) {
	claims, err := utils.ValidateJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Type != TokenTypeAccess {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *service) buildAuthResponse(user *User) (*AuthResponse, error) {
	accessToken, err := s.issueToken(user, TokenTypeAccess, s.cfg.AccessTokenExpiry)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.issueToken(user, TokenTypeRefresh, s.cfg.RefreshTokenExpiry)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *service) issueToken(user *User, tokenType string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &utils.JWTClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Type:      tokenType,
		ExpiresAt: now.Add(expiry).Unix(),
		IssuedAt:  now.Unix(),
		Issuer:    "thai-vid-match",
	}
	return utils.GenerateJWT(claims, s.cfg.JWTSecret)
}
