package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

const (
	MeetupMeal   = "meal"
	MeetupTea    = "tea"
	MeetupHouse  = "house"
	MeetupOthers = "others"
)

// ValidMeetupType reports whether t is one of the enumerated meetup kinds.
func ValidMeetupType(t string) bool {
	switch t {
	case MeetupMeal, MeetupTea, MeetupHouse, MeetupOthers:
		return true
	}
	return false
}

// TimeRange is one candidate window within a day, "HH:MM" strings as the
// clients send them.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayRanges groups a sender's candidate windows for one date.
type DayRanges struct {
	Date   string      `json:"date"`
	Ranges []TimeRange `json:"ranges"`
}

// TimeRangeList is stored as serialized JSON text.
type TimeRangeList []DayRanges

func (l TimeRangeList) Value() (driver.Value, error) {
	return marshalJSONText(l)
}

func (l *TimeRangeList) Scan(src interface{}) error {
	return scanJSONText(src, l)
}

// TimeSlot is one responder-selected window.
type TimeSlot struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// TimeSlotList is stored as serialized JSON text.
type TimeSlotList []TimeSlot

func (l TimeSlotList) Value() (driver.Value, error) {
	return marshalJSONText(l)
}

func (l *TimeSlotList) Scan(src interface{}) error {
	return scanJSONText(src, l)
}

// FinalEntry is one responder's contribution to the final schedule: the raw
// selection, not an intersection.
type FinalEntry struct {
	UserName string       `json:"user_name"`
	Slots    TimeSlotList `json:"slots"`
}

// FinalSchedule is the aggregated artifact; nil while pending (stored NULL).
type FinalSchedule []FinalEntry

func (f FinalSchedule) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	return marshalJSONText(f)
}

func (f *FinalSchedule) Scan(src interface{}) error {
	if src == nil {
		*f = nil
		return nil
	}
	return scanJSONText(src, f)
}

// Schedule is a sender's meetup proposal. Status moves pending→completed
// exactly once, when every other family member has responded.
type Schedule struct {
	ID            int64         `gorm:"primaryKey;autoIncrement"`
	FamilyID      string        `gorm:"column:family_id;not null;index"`
	SenderName    string        `gorm:"column:sender_name"`
	SenderID      int64         `gorm:"column:sender_id;not null"`
	MeetupType    string        `gorm:"column:meetup_type;not null"`
	TimeRanges    TimeRangeList `gorm:"column:time_ranges;type:text;not null"`
	FinalSchedule FinalSchedule `gorm:"column:final_schedule;type:text"`
	Status        string        `gorm:"not null;default:pending"`
	CreatedAt     time.Time     `gorm:"autoCreateTime"`
}

func (Schedule) TableName() string { return "schedules" }

// Response is one family member's answer. One row per (schedule, user);
// resubmission overwrites the slots and refreshes created_at.
type Response struct {
	ID                int64        `gorm:"primaryKey;autoIncrement"`
	ScheduleID        int64        `gorm:"column:schedule_id;not null;uniqueIndex:idx_schedule_responses_schedule_user,priority:1"`
	UserID            int64        `gorm:"column:user_id;not null;uniqueIndex:idx_schedule_responses_schedule_user,priority:2"`
	UserName          string       `gorm:"column:user_name"`
	SelectedTimeSlots TimeSlotList `gorm:"column:selected_time_slots;type:text;not null"`
	CreatedAt         time.Time    `gorm:"autoCreateTime"`
}

func (Response) TableName() string { return "schedule_responses" }

func marshalJSONText(v interface{}) (driver.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func scanJSONText(src, dst interface{}) error {
	switch value := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(value, dst)
	case string:
		return json.Unmarshal([]byte(value), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}
