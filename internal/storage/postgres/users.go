package postgres

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

const userColumns = `id, email, password_hash, full_name, company_name, phone,
    COALESCE(tax_id, ''), COALESCE(address, ''), sector, role, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	const query = `INSERT INTO users (id, email, password_hash, full_name, company_name, phone, tax_id, address, sector, role)
                   VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10)
                   RETURNING created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.CompanyName,
		user.Phone, user.TaxID, user.Address, user.Sector, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) getBy(ctx context.Context, query string, arg string) (*model.User, error) {
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.CompanyName, &u.Phone,
		&u.TaxID, &u.Address, &u.Sector, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}
