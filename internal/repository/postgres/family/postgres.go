package family

import (
	"context"
	"errors"

	familydomain "family-talk-go/internal/domain/family"
	"family-talk-go/internal/repository/postgres/pgerr"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(familydomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetByKey(ctx context.Context, key string) (*familydomain.Family, error) {
	var family familydomain.Family
	if err := r.db.WithContext(ctx).Where("family_id = ?", key).First(&family).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, familydomain.ErrFamilyNotFound
		}
		return nil, err
	}
	return &family, nil
}

func (r *PostgresRepository) Create(ctx context.Context, family *familydomain.Family) error {
	if err := r.db.WithContext(ctx).Create(family).Error; err != nil {
		if pgerr.IsUniqueViolation(err, "families_family_id_key") {
			return familydomain.ErrFamilyExists
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) FindInviterByCode(ctx context.Context, normalized string) (*familydomain.Inviter, error) {
	type inviterRow struct {
		Email      string  `gorm:"column:email"`
		FamilyID   *string `gorm:"column:family_id"`
		InviteCode string  `gorm:"column:invite_code"`
	}

	var row inviterRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select("email, family_id, invite_code").
		Where("invite_code IS NOT NULL").
		Where("UPPER(REGEXP_REPLACE(invite_code, '[^A-Za-z0-9]', '', 'g')) = ?", normalized).
		Limit(1).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, familydomain.ErrInvalidCode
	}
	if err != nil {
		return nil, err
	}

	return &familydomain.Inviter{
		Email:      row.Email,
		FamilyKey:  row.FamilyID,
		InviteCode: row.InviteCode,
	}, nil
}

func (r *PostgresRepository) SetUserFamily(ctx context.Context, email string, key *string) error {
	return r.db.WithContext(ctx).
		Table("users").
		Where("email = ?", email).
		Update("family_id", key).Error
}
