package postgres

import "context"

type pushTokenRepository struct {
	storage *Storage
}

func (r *pushTokenRepository) Save(ctx context.Context, userID, token string) error {
	const query = `INSERT INTO push_tokens (token, user_id) VALUES ($1, $2)
                   ON CONFLICT (token) DO UPDATE SET user_id = EXCLUDED.user_id, updated_at = NOW()`
	if _, err := r.storage.pool.Exec(ctx, query, token, userID); err != nil {
		return mapError(err)
	}
	return nil
}

// AdminTokens returns the push tokens of every admin device.
func (r *pushTokenRepository) AdminTokens(ctx context.Context) ([]string, error) {
	const query = `SELECT t.token FROM push_tokens t JOIN users u ON u.id = t.user_id WHERE u.role = 'admin'`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}
