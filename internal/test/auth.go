package test

import (
	"context"
	"errors"

	"github.com/polkiloo/storefront/internal/domain/model"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(model.UserProfile) (string, error)
	ParseFn func(string) (model.UserProfile, error)
	NameVal string
}

// IssueToken returns "token:<user id>" unless overridden.
func (s StrategyStub) IssueToken(profile model.UserProfile) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(profile)
	}
	return "token:" + profile.ID, nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (model.UserProfile, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return DefaultProfile(), nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// DefaultProfile is the authenticated customer used across tests.
func DefaultProfile() model.UserProfile {
	return model.UserProfile{ID: "u1", Email: "ayse@example.com", FullName: "Ayşe Yılmaz", Role: model.RoleUser}
}

// AdminProfile is an authenticated administrator.
func AdminProfile() model.UserProfile {
	return model.UserProfile{ID: "admin", Email: "admin@example.com", FullName: "Admin", Role: model.RoleAdmin}
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	Profile model.UserProfile
	Err     error
	ParseFn func(string) (model.UserProfile, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (model.UserProfile, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return model.UserProfile{}, s.Err
	}
	return s.Profile, nil
}

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn      func(context.Context, model.Registration) (string, error)
	AuthenticateFn  func(context.Context, string, string) (string, error)
	ParseFn         func(string) (model.UserProfile, error)
	ProfileFn       func(context.Context, string) (*model.User, error)
	SavePushTokenFn func(context.Context, string, string) error
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, r model.Registration) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, r)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

// ParseToken returns the default profile unless overridden.
func (s AuthFacadeStub) ParseToken(token string) (model.UserProfile, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return DefaultProfile(), nil
}

// Profile returns a user built from the default profile.
func (s AuthFacadeStub) Profile(ctx context.Context, id string) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, id)
	}
	p := DefaultProfile()
	return &model.User{ID: id, Email: p.Email, FullName: p.FullName, Role: p.Role}, nil
}

func (s AuthFacadeStub) SavePushToken(ctx context.Context, userID, token string) error {
	if s.SavePushTokenFn != nil {
		return s.SavePushTokenFn(ctx, userID, token)
	}
	return nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
