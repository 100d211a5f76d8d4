package user

import (
	"context"
	"errors"

	userdomain "family-talk-go/internal/domain/user"
	"family-talk-go/internal/repository/postgres/pgerr"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, u *userdomain.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if pgerr.IsUniqueViolation(err, "users_email_key") {
			return userdomain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	var u userdomain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) UpdateInviteCode(ctx context.Context, id int64, code string) error {
	return r.db.WithContext(ctx).
		Model(&userdomain.User{}).
		Where("id = ?", id).
		Update("invite_code", code).Error
}

func (r *PostgresRepository) IsInviteCodeTaken(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&userdomain.User{}).
		Where("invite_code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
