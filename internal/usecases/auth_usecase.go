package usecases

import (
	"context"
	"crypto/subtle"
	"errors"

	"warranty-register.backend/internal/domain/entities"
	domainerrors "warranty-register.backend/internal/domain/errors"
	"warranty-register.backend/internal/domain/repositories"
	"warranty-register.backend/pkg/crypto"
	"warranty-register.backend/pkg/jwt"
)

// AdminCredentialVerifier checks the operator login against an env-supplied
// bcrypt hash. There is deliberately no plaintext admin password anywhere in
// the codebase or its configuration.
type AdminCredentialVerifier struct {
	email        string
	passwordHash string
}

func NewAdminCredentialVerifier(email, passwordHash string) *AdminCredentialVerifier {
	return &AdminCredentialVerifier{email: email, passwordHash: passwordHash}
}

// Verify reports whether the supplied credentials belong to the operator
// account. Disabled entirely when no hash is configured.
func (v *AdminCredentialVerifier) Verify(email, password string) bool {
	if v.passwordHash == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(email), []byte(v.email)) != 1 {
		return false
	}
	return crypto.CheckPassword(password, v.passwordHash)
}

// AuthUsecase handles Warranty Centre logins for both regular accounts and
// the operator account
type AuthUsecase struct {
	userRepo      repositories.UserRepository
	jwtService    *jwt.JWTService
	adminVerifier *AdminCredentialVerifier
}

func NewAuthUsecase(
	userRepo repositories.UserRepository,
	jwtService *jwt.JWTService,
	adminVerifier *AdminCredentialVerifier,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:      userRepo,
		jwtService:    jwtService,
		adminVerifier: adminVerifier,
	}
}

// Login authenticates against the operator credentials first, then the users
// table. Both paths go through the same bcrypt verification discipline.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	if u.adminVerifier.Verify(input.Email, input.Password) {
		tokenPair, err := u.jwtService.GenerateTokenPair(0, input.Email, string(entities.UserRoleAdmin))
		if err != nil {
			return nil, domainerrors.InternalError(err)
		}
		return &entities.AuthResponse{
			AccessToken:  tokenPair.AccessToken,
			RefreshToken: tokenPair.RefreshToken,
		}, nil
	}

	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.Unauthorized("Invalid credentials")
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// Register creates a new Warranty Centre account
func (u *AuthUsecase) Register(ctx context.Context, input *entities.CreateUserInput) (*entities.User, error) {
	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	user := &entities.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         entities.UserRoleUser,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetMe returns the account behind a validated token
func (u *AuthUsecase) GetMe(ctx context.Context, userID uint) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}
