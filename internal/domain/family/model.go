package family

import "time"

// DefaultName is used when a family is materialized without an explicit
// display name (joining through a bare invite code).
const DefaultName = "家族"

// Family is a named group of users sharing message and schedule visibility.
// Key is the normalized alphanumeric natural key the rest of the system
// stores in family_id columns; rows are never deleted.
type Family struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Key       string    `gorm:"column:family_id;not null;uniqueIndex"`
	Name      string    `gorm:"column:family_name"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Family) TableName() string { return "families" }

// Inviter is the projection of a user row the join algorithm needs once a
// code has resolved to another user's invite code.
type Inviter struct {
	Email      string
	FamilyKey  *string
	InviteCode string
}
