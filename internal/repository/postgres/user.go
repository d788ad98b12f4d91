package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/netpulse/netpulse/internal/domain/user"
	"github.com/netpulse/netpulse/internal/pkg/errors"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) (int64, error) {
	u.CreatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role, created_at) VALUES (?, ?, ?, ?)",
		u.Email, u.PasswordHash, u.Role, u.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create user", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get user ID", err)
	}
	u.ID = id

	return id, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return r.getOne(ctx, "SELECT id, email, password_hash, role, created_at FROM users WHERE id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, "SELECT id, email, password_hash, role, created_at FROM users WHERE email = ?", email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg interface{}) (*user.User, error) {
	var u user.User
	var createdAt string

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}

	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}
