package message

import "time"

// Message is a mood post. Append-only; read newest-first per family.
type Message struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserName  string    `gorm:"column:user_name"`
	Emotion   string    `gorm:"not null"`
	Comment   string
	FamilyID  string    `gorm:"column:family_id;not null;index:idx_messages_family_created,priority:1"`
	UserID    *int64    `gorm:"column:user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_messages_family_created,priority:2"`
}

func (Message) TableName() string { return "messages" }
