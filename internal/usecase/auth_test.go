package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func newStrategyStub() testhelpers.StrategyStub {
	issued := map[string]model.UserProfile{}
	return testhelpers.StrategyStub{
		IssueFn: func(profile model.UserProfile) (string, error) {
			token := "token-" + profile.Email
			issued[token] = profile
			return token, nil
		},
		ParseFn: func(token string) (model.UserProfile, error) {
			profile, ok := issued[token]
			if !ok {
				return model.UserProfile{}, pkgAuth.ErrInvalidToken
			}
			return profile, nil
		},
	}
}

func registration(email string) model.Registration {
	return model.Registration{
		Email:       email,
		Password:    "secret1",
		FullName:    " Ayşe Yılmaz ",
		CompanyName: "Yılmaz Gastro GmbH",
		Phone:       "+49 170 0000000",
		Sector:      "gastronomie",
	}
}

func newAuthUseCase() (*AuthUseCase, *testhelpers.UserRepositoryStub, *testhelpers.PushTokenRepositoryStub) {
	users := testhelpers.NewUserRepositoryStub()
	tokens := &testhelpers.PushTokenRepositoryStub{}
	return NewAuthUseCase(users, tokens, testhelpers.HasherStub{}, newStrategyStub()), users, tokens
}

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	uc, repo, _ := newAuthUseCase()
	ctx := context.Background()

	user, token, err := uc.Register(ctx, registration(" Ayse@Example.com "))
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected user to have ID assigned")
	}
	if user.Role != model.RoleUser {
		t.Fatalf("expected role user, got %s", user.Role)
	}
	if user.FullName != "Ayşe Yılmaz" {
		t.Fatalf("expected trimmed name, got %q", user.FullName)
	}
	if token != "token-ayse@example.com" {
		t.Fatalf("unexpected token %q", token)
	}
	stored, err := repo.GetByEmail(ctx, "ayse@example.com")
	if err != nil {
		t.Fatalf("expected user in repository: %v", err)
	}
	if stored.PasswordHash != "hash:secret1" {
		t.Fatalf("password hash not stored: %v", stored.PasswordHash)
	}
}

func TestAuthUseCaseRegisterRejectsInvalidInput(t *testing.T) {
	uc, _, _ := newAuthUseCase()
	ctx := context.Background()

	bad := registration("not-an-email")
	if _, _, err := uc.Register(ctx, bad); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	short := registration("a@b.de")
	short.Password = "123"
	if _, _, err := uc.Register(ctx, short); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	noCompany := registration("a@b.de")
	noCompany.CompanyName = "  "
	if _, _, err := uc.Register(ctx, noCompany); !errors.Is(err, domainErrors.ErrInvalidProfile) {
		t.Fatalf("expected invalid profile, got %v", err)
	}
}

func TestAuthUseCaseRegisterDuplicate(t *testing.T) {
	uc, _, _ := newAuthUseCase()
	ctx := context.Background()

	if _, _, err := uc.Register(ctx, registration("bob@example.com")); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if _, _, err := uc.Register(ctx, registration("BOB@example.com")); err != domainErrors.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthUseCaseRegisterPropagatesErrors(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	hashErr := errors.New("hash failed")
	uc := NewAuthUseCase(users, &testhelpers.PushTokenRepositoryStub{}, testhelpers.HasherStub{
		HashFn: func(string) (string, error) { return "", hashErr },
	}, newStrategyStub())
	if _, _, err := uc.Register(context.Background(), registration("c@d.de")); !errors.Is(err, hashErr) {
		t.Fatalf("expected hash error, got %v", err)
	}

	issueErr := errors.New("issue failed")
	uc = NewAuthUseCase(users, &testhelpers.PushTokenRepositoryStub{}, testhelpers.HasherStub{}, testhelpers.StrategyStub{
		IssueFn: func(model.UserProfile) (string, error) { return "", issueErr },
	})
	if _, _, err := uc.Register(context.Background(), registration("c@d.de")); !errors.Is(err, issueErr) {
		t.Fatalf("expected issue error, got %v", err)
	}
}

func TestAuthUseCaseAuthenticate(t *testing.T) {
	uc, _, _ := newAuthUseCase()
	ctx := context.Background()

	if _, _, err := uc.Register(ctx, registration("carol@example.com")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := uc.Authenticate(ctx, "carol@example.com", "bad"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	if _, _, err := uc.Authenticate(ctx, "nobody@example.com", "secret1"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}
	if _, _, err := uc.Authenticate(ctx, "", ""); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials for empty input, got %v", err)
	}

	user, token, err := uc.Authenticate(ctx, " CAROL@example.com", "secret1")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}

	profile, err := uc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if profile.ID != user.ID || profile.Email != "carol@example.com" {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestAuthUseCaseAuthenticateRepositoryError(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	users.Err = errors.New("db down")
	uc := NewAuthUseCase(users, &testhelpers.PushTokenRepositoryStub{}, testhelpers.HasherStub{}, newStrategyStub())

	if _, _, err := uc.Authenticate(context.Background(), "a@b.de", "secret1"); err == nil || errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestAuthUseCaseParseToken(t *testing.T) {
	uc, _, _ := newAuthUseCase()
	if _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token for empty input, got %v", err)
	}
	if _, err := uc.ParseToken("forged"); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestAuthUseCaseProfile(t *testing.T) {
	uc, _, _ := newAuthUseCase()
	ctx := context.Background()

	user, _, err := uc.Register(ctx, registration("dan@example.com"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	got, err := uc.Profile(ctx, user.ID)
	if err != nil || got.Email != "dan@example.com" {
		t.Fatalf("unexpected profile %+v, %v", got, err)
	}
	if _, err := uc.Profile(ctx, "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAuthUseCaseSavePushToken(t *testing.T) {
	uc, _, tokens := newAuthUseCase()
	ctx := context.Background()

	if err := uc.SavePushToken(ctx, "u1", "  ExponentPushToken[xyz] "); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if tokens.Tokens["ExponentPushToken[xyz]"] != "u1" {
		t.Fatalf("token not stored: %v", tokens.Tokens)
	}
	if err := uc.SavePushToken(ctx, "u1", strings.Repeat(" ", 3)); !errors.Is(err, domainErrors.ErrInvalidProfile) {
		t.Fatalf("expected invalid profile for blank token, got %v", err)
	}
	if err := uc.SavePushToken(ctx, "", "tok"); !errors.Is(err, domainErrors.ErrInvalidProfile) {
		t.Fatalf("expected invalid profile for missing user, got %v", err)
	}
}

func TestAuthUseCaseRandomRegistrationsRoundTrip(t *testing.T) {
	uc, _, _ := newAuthUseCase()
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		form := testhelpers.RandomRegistration()
		registered, token, err := uc.Register(ctx, form)
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			t.Fatalf("register %q: %v", form.Email, err)
		}

		authenticated, _, err := uc.Authenticate(ctx, strings.ToUpper(form.Email), form.Password)
		if err != nil {
			t.Fatalf("authenticate %q: %v", form.Email, err)
		}
		if authenticated.ID != registered.ID {
			t.Fatalf("expected same user, got %q and %q", authenticated.ID, registered.ID)
		}

		profile, err := uc.ParseToken(token)
		if err != nil || profile.ID != registered.ID {
			t.Fatalf("unexpected profile %+v %v", profile, err)
		}
	}
}
