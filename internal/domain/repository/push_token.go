package repository

import "context"

// PushTokenRepository stores device push tokens.
type PushTokenRepository interface {
	Save(ctx context.Context, userID, token string) error
	AdminTokens(ctx context.Context) ([]string, error)
}
