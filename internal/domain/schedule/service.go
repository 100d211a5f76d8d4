package schedule

import (
	"context"
	"fmt"
	"strings"

	familydomain "family-talk-go/internal/domain/family"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a meetup proposal under the normalized family key.
func (s *Service) Create(ctx context.Context, familyID, senderName, meetupType string, timeRanges TimeRangeList, senderID int64) (int64, error) {
	key := familydomain.NormalizeKey(familyID)
	if key == "" {
		return 0, fmt.Errorf("family_id is required")
	}
	if strings.TrimSpace(senderName) == "" {
		return 0, fmt.Errorf("sender_name is required")
	}
	if !ValidMeetupType(meetupType) {
		return 0, ErrInvalidMeetupType
	}
	if len(timeRanges) == 0 {
		return 0, fmt.Errorf("time_ranges is required")
	}

	proposal := Schedule{
		FamilyID:   key,
		SenderName: strings.TrimSpace(senderName),
		SenderID:   senderID,
		MeetupType: meetupType,
		TimeRanges: timeRanges,
		Status:     StatusPending,
	}
	if err := s.repo.CreateSchedule(ctx, &proposal); err != nil {
		return 0, err
	}
	return proposal.ID, nil
}

// ListByFamily returns the family's proposals newest first.
func (s *Service) ListByFamily(ctx context.Context, familyID string) ([]Schedule, error) {
	key := familydomain.NormalizeKey(familyID)
	if key == "" {
		return []Schedule{}, nil
	}
	return s.repo.ListByFamily(ctx, key)
}

// SaveResponse upserts one member's answer, then checks whether every other
// family member has now responded. On completion the final schedule is
// materialized and the status flipped, once.
func (s *Service) SaveResponse(ctx context.Context, scheduleID, userID int64, userName string, slots TimeSlotList) (bool, error) {
	if scheduleID == 0 || userID == 0 || len(slots) == 0 {
		return false, fmt.Errorf("schedule_id, user_id and selected_time_slots are required")
	}

	proposal, err := s.repo.GetSchedule(ctx, scheduleID)
	if err != nil {
		return false, err
	}

	response := Response{
		ScheduleID:        scheduleID,
		UserID:            userID,
		UserName:          strings.TrimSpace(userName),
		SelectedTimeSlots: slots,
	}
	if err := s.repo.UpsertResponse(ctx, &response); err != nil {
		return false, err
	}

	complete, err := s.allResponded(ctx, proposal)
	if err != nil {
		return false, err
	}
	if !complete {
		return false, nil
	}

	// A late resubmission against an already-completed schedule must not
	// produce a second aggregation pass.
	if proposal.Status == StatusCompleted {
		return true, nil
	}

	final, err := s.FinalSchedule(ctx, scheduleID)
	if err != nil {
		return false, err
	}
	if err := s.repo.Complete(ctx, scheduleID, final); err != nil {
		return false, err
	}
	return true, nil
}

// CheckAllResponded reports whether the response set for the schedule is
// complete.
func (s *Service) CheckAllResponded(ctx context.Context, scheduleID int64) (bool, error) {
	proposal, err := s.repo.GetSchedule(ctx, scheduleID)
	if err != nil {
		return false, err
	}
	return s.allResponded(ctx, proposal)
}

// allResponded compares the live member count (minus the sender) against
// the stored response count. The comparison is deliberately >=: a member
// who leaves after responding cannot hold completion hostage, while one
// who joins mid-flight raises the bar. Expected count is recomputed on
// every call, not pinned at proposal time.
func (s *Service) allResponded(ctx context.Context, proposal *Schedule) (bool, error) {
	if proposal.FamilyID == "" || proposal.SenderID == 0 {
		return false, ErrIncompleteSchedule
	}

	expected, err := s.repo.CountFamilyMembersExcluding(ctx, proposal.FamilyID, proposal.SenderID)
	if err != nil {
		return false, err
	}

	actual, err := s.repo.CountResponses(ctx, proposal.ID)
	if err != nil {
		return false, err
	}

	return actual >= expected, nil
}

// ListResponses returns every stored answer for the schedule.
func (s *Service) ListResponses(ctx context.Context, scheduleID int64) ([]Response, error) {
	return s.repo.ListResponses(ctx, scheduleID)
}

// FinalSchedule lists every responder's raw selection, one entry per
// responder, or nil when nobody has answered. It is a presentation of all
// answers for human judgment, not an interval intersection.
func (s *Service) FinalSchedule(ctx context.Context, scheduleID int64) (FinalSchedule, error) {
	responses, err := s.repo.ListResponses(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if len(responses) == 0 {
		return nil, nil
	}

	final := make(FinalSchedule, 0, len(responses))
	for _, r := range responses {
		final = append(final, FinalEntry{UserName: r.UserName, Slots: r.SelectedTimeSlots})
	}
	return final, nil
}
