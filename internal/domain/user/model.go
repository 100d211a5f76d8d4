package user

import "time"

// User as stored. Passwords are kept and compared as plain strings; the
// product has no credential hashing or session tokens, identity is the
// email the client holds on to.
type User struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	Email      string    `gorm:"not null;uniqueIndex"`
	Password   string    `gorm:"not null"`
	UserName   string    `gorm:"column:user_name"`
	FamilyID   *string   `gorm:"column:family_id"`
	InviteCode *string   `gorm:"uniqueIndex"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string { return "users" }
