package schedule

import "context"

type Repository interface {
	CreateSchedule(ctx context.Context, s *Schedule) error
	GetSchedule(ctx context.Context, id int64) (*Schedule, error)
	ListByFamily(ctx context.Context, familyKey string) ([]Schedule, error)
	// Complete persists the final artifact and flips status to completed in
	// one update.
	Complete(ctx context.Context, id int64, final FinalSchedule) error
	// UpsertResponse inserts, or overwrites the slots and refreshes
	// created_at when a row for (schedule_id, user_id) already exists.
	UpsertResponse(ctx context.Context, r *Response) error
	ListResponses(ctx context.Context, scheduleID int64) ([]Response, error)
	CountResponses(ctx context.Context, scheduleID int64) (int64, error)
	// CountFamilyMembersExcluding counts users attached to the family key,
	// leaving out the given user (the sender).
	CountFamilyMembersExcluding(ctx context.Context, familyKey string, userID int64) (int64, error)
}
