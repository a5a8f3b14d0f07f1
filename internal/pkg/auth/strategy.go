package auth

import (
	"errors"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid auth token")

type Strategy interface {
	IssueToken(profile model.UserProfile) (string, error)
	ParseToken(token string) (model.UserProfile, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
