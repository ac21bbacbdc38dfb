package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"tienda/shophub/internal/model"
	"tienda/shophub/internal/repository"
	"tienda/shophub/internal/validate"
	"tienda/shophub/pkg/crypto"
	jwtpkg "tienda/shophub/pkg/jwt"
)

// TokenPair is returned after a successful login or refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Phone    string
	Address  string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context) error
}

type authService struct {
	userRepo   repository.UserRepository
	stateStore repository.StateStore
	jwtManager *jwtpkg.Manager
}

func NewAuthService(
	userRepo repository.UserRepository,
	stateStore repository.StateStore,
	jwtManager *jwtpkg.Manager,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		stateStore: stateStore,
		jwtManager: jwtManager,
	}
}

func refreshKey(jti string) string { return "refresh:" + jti }

func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	ve := &ValidationError{}
	if input.Username == "" {
		ve.add("username", "username is required")
	}
	if !validate.Email(input.Email) {
		ve.add("email", "email address is not valid")
	}
	if msgs := validate.Password(input.Password); len(msgs) > 0 {
		ve.add("password", msgs...)
	}
	if input.Phone != "" && !validate.Phone(input.Phone) {
		ve.add("phone", "phone number is not valid")
	}
	if ve.any() {
		return nil, ve
	}

	if err := s.checkUnique(ctx, input.Username, input.Email); err != nil {
		return nil, err
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hash,
		Phone:    input.Phone,
		Address:  input.Address,
		IsActive: true,
		Role:     model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *authService) checkUnique(ctx context.Context, username, email string) error {
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check username: %w", err)
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check email: %w", err)
	}
	return nil
}

// Login authenticates by email. Unknown email and wrong password produce the
// identical ErrInvalidCredentials so the response cannot be used to probe for
// accounts; the active flag is checked only after the credentials pass.
func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !crypto.CheckPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	return s.issueTokens(ctx, user.ID)
}

// Refresh exchanges a live refresh token for a new pair. Refresh tokens are
// single-use: the jti is consumed here and a replayed token is rejected.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwtManager.Validate(refreshToken)
	if err != nil || claims.TokenType != jwtpkg.TokenTypeRefresh {
		return nil, ErrRefreshTokenInvalid
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrRefreshTokenInvalid
	}

	known, err := s.stateStore.Exists(ctx, refreshKey(claims.ID))
	if err != nil {
		return nil, fmt.Errorf("check refresh state: %w", err)
	}
	if !known {
		return nil, ErrRefreshTokenInvalid
	}
	if err := s.stateStore.Delete(ctx, refreshKey(claims.ID)); err != nil {
		return nil, fmt.Errorf("consume refresh state: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenInvalid
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	return s.issueTokens(ctx, user.ID)
}

// Logout is a placeholder: access tokens stay valid until expiry. A real
// revocation list would key on the token jti with a TTL matching the token.
func (s *authService) Logout(_ context.Context) error {
	return nil
}

func (s *authService) issueTokens(ctx context.Context, userID uint) (*TokenPair, error) {
	access, err := s.jwtManager.GenerateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refresh, claims, err := s.jwtManager.GenerateRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	value := []byte(strconv.FormatUint(uint64(userID), 10))
	if err := s.stateStore.Set(ctx, refreshKey(claims.ID), value, s.jwtManager.RefreshTokenTTL()); err != nil {
		return nil, fmt.Errorf("store refresh state: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwtManager.AccessTokenTTL().Seconds()),
	}, nil
}

var _ AuthService = (*authService)(nil)
