package user

import "context"

// Repository is the persistence boundary for accounts. Lookups return
// (nil, nil) when no row matches.
type Repository interface {
	Create(ctx context.Context, u *User) (int64, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
