package message

import "context"

type Repository interface {
	Create(ctx context.Context, m *Message) error
	ListByFamily(ctx context.Context, familyKey string) ([]Message, error)
}
