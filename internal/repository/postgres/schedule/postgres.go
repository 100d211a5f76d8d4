package schedule

import (
	"context"
	"errors"

	scheduledomain "family-talk-go/internal/domain/schedule"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateSchedule(ctx context.Context, s *scheduledomain.Schedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *PostgresRepository) GetSchedule(ctx context.Context, id int64) (*scheduledomain.Schedule, error) {
	var s scheduledomain.Schedule
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, scheduledomain.ErrScheduleNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) ListByFamily(ctx context.Context, familyKey string) ([]scheduledomain.Schedule, error) {
	var schedules []scheduledomain.Schedule
	if err := r.db.WithContext(ctx).
		Where("family_id = ?", familyKey).
		Order("created_at desc").
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *PostgresRepository) Complete(ctx context.Context, id int64, final scheduledomain.FinalSchedule) error {
	return r.db.WithContext(ctx).
		Model(&scheduledomain.Schedule{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         scheduledomain.StatusCompleted,
			"final_schedule": final,
		}).Error
}

// UpsertResponse leans on the (schedule_id, user_id) unique constraint so
// concurrent double-submits deterministically resolve to last-write-wins.
func (r *PostgresRepository) UpsertResponse(ctx context.Context, resp *scheduledomain.Response) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "schedule_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"selected_time_slots": resp.SelectedTimeSlots,
				"user_name":           resp.UserName,
				"created_at":          gorm.Expr("NOW()"),
			}),
		}).
		Create(resp).Error
}

func (r *PostgresRepository) ListResponses(ctx context.Context, scheduleID int64) ([]scheduledomain.Response, error) {
	var responses []scheduledomain.Response
	if err := r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Order("created_at asc").
		Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *PostgresRepository) CountResponses(ctx context.Context, scheduleID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&scheduledomain.Response{}).
		Where("schedule_id = ?", scheduleID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CountFamilyMembersExcluding(ctx context.Context, familyKey string, userID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("users").
		Where("family_id = ? AND id != ?", familyKey, userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
