package schedule

import (
	"context"
	"errors"
	"testing"
)

type fakeScheduleRepo struct {
	schedules     map[int64]*Schedule
	responses     map[int64]map[int64]*Response
	members       map[string][]int64
	nextID        int64
	completeCalls int
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		schedules: make(map[int64]*Schedule),
		responses: make(map[int64]map[int64]*Response),
		members:   make(map[string][]int64),
	}
}

func (r *fakeScheduleRepo) CreateSchedule(ctx context.Context, s *Schedule) error {
	r.nextID++
	s.ID = r.nextID
	r.schedules[s.ID] = s
	return nil
}

func (r *fakeScheduleRepo) GetSchedule(ctx context.Context, id int64) (*Schedule, error) {
	s, ok := r.schedules[id]
	if !ok {
		return nil, ErrScheduleNotFound
	}
	return s, nil
}

func (r *fakeScheduleRepo) ListByFamily(ctx context.Context, familyKey string) ([]Schedule, error) {
	var result []Schedule
	for _, s := range r.schedules {
		if s.FamilyID == familyKey {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (r *fakeScheduleRepo) Complete(ctx context.Context, id int64, final FinalSchedule) error {
	s, ok := r.schedules[id]
	if !ok {
		return ErrScheduleNotFound
	}
	r.completeCalls++
	s.FinalSchedule = final
	s.Status = StatusCompleted
	return nil
}

func (r *fakeScheduleRepo) UpsertResponse(ctx context.Context, resp *Response) error {
	byUser, ok := r.responses[resp.ScheduleID]
	if !ok {
		byUser = make(map[int64]*Response)
		r.responses[resp.ScheduleID] = byUser
	}
	if existing, ok := byUser[resp.UserID]; ok {
		existing.SelectedTimeSlots = resp.SelectedTimeSlots
		existing.UserName = resp.UserName
		return nil
	}
	r.nextID++
	resp.ID = r.nextID
	byUser[resp.UserID] = resp
	return nil
}

func (r *fakeScheduleRepo) ListResponses(ctx context.Context, scheduleID int64) ([]Response, error) {
	var result []Response
	for _, resp := range r.responses[scheduleID] {
		result = append(result, *resp)
	}
	return result, nil
}

func (r *fakeScheduleRepo) CountResponses(ctx context.Context, scheduleID int64) (int64, error) {
	return int64(len(r.responses[scheduleID])), nil
}

func (r *fakeScheduleRepo) CountFamilyMembersExcluding(ctx context.Context, familyKey string, userID int64) (int64, error) {
	var count int64
	for _, id := range r.members[familyKey] {
		if id != userID {
			count++
		}
	}
	return count, nil
}

func slots(dates ...string) TimeSlotList {
	result := make(TimeSlotList, 0, len(dates))
	for _, d := range dates {
		result = append(result, TimeSlot{Date: d, StartTime: "10:00", EndTime: "12:00"})
	}
	return result
}

func seedProposal(repo *fakeScheduleRepo, familyKey string, senderID int64, memberIDs ...int64) *Schedule {
	repo.members[familyKey] = append([]int64{senderID}, memberIDs...)
	proposal := &Schedule{
		FamilyID:   familyKey,
		SenderName: "Taro",
		SenderID:   senderID,
		MeetupType: MeetupMeal,
		TimeRanges: TimeRangeList{{Date: "2026-09-01", Ranges: []TimeRange{{Start: "10:00", End: "12:00"}}}},
		Status:     StatusPending,
	}
	_ = repo.CreateSchedule(context.Background(), proposal)
	return proposal
}

func TestCreateValidatesMeetupType(t *testing.T) {
	svc := NewService(newFakeScheduleRepo())
	_, err := svc.Create(context.Background(), "ABC123", "Taro", "party",
		TimeRangeList{{Date: "2026-09-01", Ranges: []TimeRange{{Start: "10:00", End: "12:00"}}}}, 1)
	if !errors.Is(err, ErrInvalidMeetupType) {
		t.Fatalf("expected ErrInvalidMeetupType, got %v", err)
	}
}

func TestCreateNormalizesFamilyKey(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), "abc-123", "Taro", MeetupTea,
		TimeRangeList{{Date: "2026-09-01", Ranges: []TimeRange{{Start: "10:00", End: "12:00"}}}}, 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.schedules[id].FamilyID != "ABC123" {
		t.Fatalf("expected normalized family key, got %q", repo.schedules[id].FamilyID)
	}
}

func TestSaveResponseRequiresInput(t *testing.T) {
	svc := NewService(newFakeScheduleRepo())
	if _, err := svc.SaveResponse(context.Background(), 0, 2, "Hana", slots("2026-09-01")); err == nil {
		t.Fatalf("expected error for missing schedule id")
	}
	if _, err := svc.SaveResponse(context.Background(), 1, 0, "Hana", slots("2026-09-01")); err == nil {
		t.Fatalf("expected error for missing user id")
	}
	if _, err := svc.SaveResponse(context.Background(), 1, 2, "Hana", nil); err == nil {
		t.Fatalf("expected error for empty slots")
	}
}

func TestSaveResponseUnknownSchedule(t *testing.T) {
	svc := NewService(newFakeScheduleRepo())
	if _, err := svc.SaveResponse(context.Background(), 99, 2, "Hana", slots("2026-09-01")); !errors.Is(err, ErrScheduleNotFound) {
		t.Fatalf("expected ErrScheduleNotFound, got %v", err)
	}
}

func TestSaveResponseResubmissionKeepsOneRow(t *testing.T) {
	repo := newFakeScheduleRepo()
	// sender + 2 others, so one response never completes
	proposal := seedProposal(repo, "ABC123", 1, 2, 3)
	svc := NewService(repo)

	if _, err := svc.SaveResponse(context.Background(), proposal.ID, 2, "Hana", slots("2026-09-01")); err != nil {
		t.Fatalf("first submission: %v", err)
	}
	if _, err := svc.SaveResponse(context.Background(), proposal.ID, 2, "Hana", slots("2026-09-02")); err != nil {
		t.Fatalf("second submission: %v", err)
	}

	stored := repo.responses[proposal.ID]
	if len(stored) != 1 {
		t.Fatalf("expected one row, got %d", len(stored))
	}
	if stored[2].SelectedTimeSlots[0].Date != "2026-09-02" {
		t.Fatalf("expected second submission's slots, got %+v", stored[2].SelectedTimeSlots)
	}
}

func TestCompletionAfterAllMembersRespond(t *testing.T) {
	repo := newFakeScheduleRepo()
	proposal := seedProposal(repo, "ABC123", 1, 2, 3)
	svc := NewService(repo)

	complete, err := svc.SaveResponse(context.Background(), proposal.ID, 2, "Hana", slots("2026-09-01"))
	if err != nil {
		t.Fatalf("first response: %v", err)
	}
	if complete {
		t.Fatalf("expected incomplete after 1 of 2 responses")
	}
	if proposal.Status != StatusPending {
		t.Fatalf("expected pending, got %q", proposal.Status)
	}

	complete, err = svc.SaveResponse(context.Background(), proposal.ID, 3, "Ken", slots("2026-09-01", "2026-09-02"))
	if err != nil {
		t.Fatalf("second response: %v", err)
	}
	if !complete {
		t.Fatalf("expected complete after 2 of 2 responses")
	}
	if proposal.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q", proposal.Status)
	}
	if len(proposal.FinalSchedule) != 2 {
		t.Fatalf("expected one final entry per responder, got %d", len(proposal.FinalSchedule))
	}
}

func TestCompletionSurvivesMemberLeaving(t *testing.T) {
	repo := newFakeScheduleRepo()
	proposal := seedProposal(repo, "ABC123", 1, 2, 3)
	svc := NewService(repo)

	if _, err := svc.SaveResponse(context.Background(), proposal.ID, 2, "Hana", slots("2026-09-01")); err != nil {
		t.Fatalf("response: %v", err)
	}
	if _, err := svc.SaveResponse(context.Background(), proposal.ID, 3, "Ken", slots("2026-09-01")); err != nil {
		t.Fatalf("response: %v", err)
	}

	// Ken leaves the family; actual responses (2) now exceed expected (1).
	repo.members["ABC123"] = []int64{1, 2}

	complete, err := svc.CheckAllResponded(context.Background(), proposal.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !complete {
		t.Fatalf("expected >= comparison to keep the schedule complete")
	}
}

func TestLateJoinerRaisesTheBar(t *testing.T) {
	repo := newFakeScheduleRepo()
	proposal := seedProposal(repo, "ABC123", 1, 2)
	svc := NewService(repo)

	// A new member joins before anyone responds; one response is no longer
	// enough.
	repo.members["ABC123"] = []int64{1, 2, 4}

	complete, err := svc.SaveResponse(context.Background(), proposal.ID, 2, "Hana", slots("2026-09-01"))
	if err != nil {
		t.Fatalf("response: %v", err)
	}
	if complete {
		t.Fatalf("expected incomplete with a late joiner outstanding")
	}
}

func TestCompletedScheduleNotRecomputed(t *testing.T) {
	repo := newFakeScheduleRepo()
	proposal := seedProposal(repo, "ABC123", 1, 2)
	svc := NewService(repo)

	complete, err := svc.SaveResponse(context.Background(), proposal.ID, 2, "Hana", slots("2026-09-01"))
	if err != nil || !complete {
		t.Fatalf("expected completion, got complete=%v err=%v", complete, err)
	}
	if repo.completeCalls != 1 {
		t.Fatalf("expected one aggregation pass, got %d", repo.completeCalls)
	}

	complete, err = svc.SaveResponse(context.Background(), proposal.ID, 2, "Hana", slots("2026-09-03"))
	if err != nil {
		t.Fatalf("resubmission: %v", err)
	}
	if !complete {
		t.Fatalf("expected still complete")
	}
	if repo.completeCalls != 1 {
		t.Fatalf("expected no second aggregation pass, got %d", repo.completeCalls)
	}
}

func TestCheckAllRespondedIntegrity(t *testing.T) {
	repo := newFakeScheduleRepo()
	broken := &Schedule{SenderID: 0, FamilyID: ""}
	_ = repo.CreateSchedule(context.Background(), broken)

	svc := NewService(repo)
	if _, err := svc.CheckAllResponded(context.Background(), broken.ID); !errors.Is(err, ErrIncompleteSchedule) {
		t.Fatalf("expected ErrIncompleteSchedule, got %v", err)
	}
}

func TestFinalScheduleNilWithoutResponses(t *testing.T) {
	repo := newFakeScheduleRepo()
	proposal := seedProposal(repo, "ABC123", 1, 2)

	svc := NewService(repo)
	final, err := svc.FinalSchedule(context.Background(), proposal.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if final != nil {
		t.Fatalf("expected nil final schedule, got %+v", final)
	}
}

func TestFinalScheduleOneEntryPerResponder(t *testing.T) {
	repo := newFakeScheduleRepo()
	proposal := seedProposal(repo, "ABC123", 1, 2, 3)
	svc := NewService(repo)

	if _, err := svc.SaveResponse(context.Background(), proposal.ID, 2, "Hana", slots("2026-09-01")); err != nil {
		t.Fatalf("response: %v", err)
	}
	if _, err := svc.SaveResponse(context.Background(), proposal.ID, 3, "Ken", slots("2026-09-02")); err != nil {
		t.Fatalf("response: %v", err)
	}

	final, err := svc.FinalSchedule(context.Background(), proposal.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(final) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(final))
	}
	for _, entry := range final {
		if entry.UserName == "" || len(entry.Slots) == 0 {
			t.Fatalf("expected raw slots per responder, got %+v", entry)
		}
	}
}
