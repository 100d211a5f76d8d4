package user

import "context"

type Repository interface {
	// Create returns ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateInviteCode(ctx context.Context, id int64, code string) error
	IsInviteCodeTaken(ctx context.Context, code string) (bool, error)
}
