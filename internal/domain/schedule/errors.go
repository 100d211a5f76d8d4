package schedule

import "errors"

var (
	ErrScheduleNotFound   = errors.New("schedule not found")
	ErrIncompleteSchedule = errors.New("schedule is missing family or sender")
	ErrInvalidMeetupType  = errors.New("invalid meetup type")
)
