package family

import "context"

// Repository is the persistence surface the resolution logic needs. The
// user-attachment operations live here too because membership is a column
// on the users table, not a join table.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetByKey(ctx context.Context, key string) (*Family, error)
	// Create returns ErrFamilyExists on a duplicate key so racing joins can
	// treat "someone else created it first" as success.
	Create(ctx context.Context, family *Family) error
	// FindInviterByCode matches a normalized code against users' invite
	// codes, comparing case- and punctuation-insensitively on the database
	// side. Returns ErrInvalidCode when no user holds a matching code.
	FindInviterByCode(ctx context.Context, normalized string) (*Inviter, error)
	SetUserFamily(ctx context.Context, email string, key *string) error
}
