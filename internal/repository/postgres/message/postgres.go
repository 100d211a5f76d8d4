package message

import (
	"context"

	messagedomain "family-talk-go/internal/domain/message"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, m *messagedomain.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PostgresRepository) ListByFamily(ctx context.Context, familyKey string) ([]messagedomain.Message, error) {
	var messages []messagedomain.Message
	if err := r.db.WithContext(ctx).
		Where("family_id = ?", familyKey).
		Order("created_at desc").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
