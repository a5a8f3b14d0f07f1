package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// JWTStrategy issues HS256 signed tokens carrying the user profile.
type JWTStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTStrategy{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueToken generates a signed token for profile.
func (s *JWTStrategy) IssueToken(profile model.UserProfile) (string, error) {
	claims := jwt.MapClaims{
		"sub":   profile.ID,
		"email": profile.Email,
		"name":  profile.FullName,
		"role":  string(profile.Role),
		"exp":   s.now().Add(s.ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates token and returns the profile it carries.
func (s *JWTStrategy) ParseToken(token string) (model.UserProfile, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return model.UserProfile{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return model.UserProfile{}, ErrInvalidToken
	}

	profile := model.UserProfile{
		ID:       stringClaim(claims, "sub"),
		Email:    stringClaim(claims, "email"),
		FullName: stringClaim(claims, "name"),
		Role:     model.Role(stringClaim(claims, "role")),
	}
	if !profile.Valid() {
		return model.UserProfile{}, ErrInvalidToken
	}
	if profile.Role == "" {
		profile.Role = model.RoleUser
	}
	return profile, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}
