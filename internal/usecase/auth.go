package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	tokens repository.PushTokenRepository
	hasher pkgAuth.PasswordHasher
	auth   pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, pushTokens repository.PushTokenRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, tokens: pushTokens, hasher: hasher, auth: strategy}
}

// Register creates a customer account and returns auth token.
func (u *AuthUseCase) Register(ctx context.Context, r model.Registration) (*model.User, string, error) {
	r.Email = NormalizeEmail(r.Email)
	if err := ValidateRegistration(r); err != nil {
		return nil, "", err
	}

	hash, err := u.hasher.Hash(r.Password)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	usr, err := u.users.Create(ctx, model.User{
		ID:           uuid.NewString(),
		Email:        r.Email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(r.FullName),
		CompanyName:  strings.TrimSpace(r.CompanyName),
		Phone:        strings.TrimSpace(r.Phone),
		TaxID:        strings.TrimSpace(r.TaxID),
		Address:      strings.TrimSpace(r.Address),
		Sector:       strings.TrimSpace(r.Sector),
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.auth.IssueToken(usr.Profile())
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.auth.IssueToken(usr.Profile())
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts the user profile from provided token.
func (u *AuthUseCase) ParseToken(token string) (model.UserProfile, error) {
	if token == "" {
		return model.UserProfile{}, pkgAuth.ErrInvalidToken
	}
	return u.auth.ParseToken(token)
}

// Profile fetches user by identifier.
func (u *AuthUseCase) Profile(ctx context.Context, id string) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// SavePushToken stores the device push token of userID.
func (u *AuthUseCase) SavePushToken(ctx context.Context, userID, token string) error {
	token = strings.TrimSpace(token)
	if userID == "" || token == "" {
		return domainErrors.ErrInvalidProfile
	}
	return u.tokens.Save(ctx, userID, token)
}
