package services

import (
	"context"
	"errors"
	"log"

	"caribe-tours/internal/adapters/persistence/models"
	"caribe-tours/internal/adapters/persistence/repositories"
	"caribe-tours/internal/config"
	"caribe-tours/internal/core/domain"
	"caribe-tours/internal/pkg/jwt"
	"caribe-tours/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrExternalAccount    = errors.New("account uses external login")
	ErrInvalidRole        = errors.New("invalid signup role")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	agencyRepo       repositories.AgencyRepository
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	agencyRepo repositories.AgencyRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		agencyRepo:       agencyRepo,
		cfg:              cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role,omitempty"`        // USER (default) or AGENCY
	AgencyName string `json:"agency_name,omitempty"` // required when Role == AGENCY
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
}

// Register registers a new traveler or agency account.
// An AGENCY signup also creates its AgencyProfile in status PENDING,
// so the agency cannot publish tours until an admin activates it.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	// 1. Resolve signup role
	role := input.Role
	if role == "" {
		role = "USER"
	}
	if !domain.ValidSignupRole(role) {
		return nil, ErrInvalidRole
	}

	// 2. Check if email already exists
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	// 3. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 4. Create user
	user := &models.User{
		Email:    input.Email,
		Password: hashedPassword,
		Name:     input.Name,
		Phone:    input.Phone,
		Role:     role,
		IsActive: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// 5. Create agency profile for agency signups
	if role == "AGENCY" {
		agencyName := input.AgencyName
		if agencyName == "" {
			agencyName = input.Name
		}
		agency := &models.AgencyProfile{
			UserID: user.ID,
			Name:   agencyName,
			Status: "PENDING",
			Tier:   "FREE",
		}
		if err := s.agencyRepo.Create(ctx, agency); err != nil {
			return nil, err
		}
	}

	// 6. Generate tokens
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}

	// 7. Store refresh token
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s (role: %s)", user.Email, user.Role)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Login authenticates a user with email and password
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 3. Externally-authenticated accounts cannot use password login
	if password.IsExternal(user.Password) {
		return nil, ErrExternalAccount
	}

	// 4. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	// 5. Generate tokens
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}

	// 6. Store refresh token
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// ExternalLogin signs in (or first registers) an externally-authenticated
// account. The stored password is a sentinel, never a usable hash.
func (s *AuthService) ExternalLogin(ctx context.Context, email, name string) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user = &models.User{
			Email:    email,
			Password: password.ExternalAuthSentinel,
			Name:     name,
			Role:     "USER",
			IsActive: true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		log.Printf("✅ External account created: %s", user.Email)
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RefreshToken refreshes the access token using refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	// 2. Hash the token to find in DB
	tokenHash := password.HashToken(refreshToken)

	// 3. Find token in DB
	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	// 4. Check if token is revoked
	if storedToken.IsRevoked() {
		return nil, ErrTokenRevoked
	}

	// 5. Check if token is expired
	if storedToken.IsExpired() {
		return nil, ErrTokenExpired
	}

	// 6. Get user (stale-session check: the user may have been deleted)
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	// 7. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 8. Revoke old refresh token (Token Rotation)
	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}

	// 9. Generate new tokens
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}

	// 10. Store new refresh token
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for user: %s", user.Email)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout revokes the refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)

	if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash); err != nil {
		return err
	}

	log.Printf("✅ User logged out")
	return nil
}

// LogoutAll revokes all refresh tokens for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}

	log.Printf("✅ All sessions revoked for user ID: %d", userID)
	return nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(user *models.User) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Email,
		user.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	// Generate unique token ID
	tokenID := uuid.New().String()

	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		tokenID,
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, userID uint, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)
	expiresAt := jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays)

	token := &models.RefreshToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}

	return s.refreshTokenRepo.Create(ctx, token)
}
