package models

import "time"

// Message is a direct message between two users. Rows are immutable once
// created; the subsystem never updates or deletes them.
type Message struct {
	ID         string    `gorm:"primaryKey;type:text" json:"id"`
	SenderID   string    `gorm:"index" json:"senderId"`
	Sender     User      `gorm:"foreignKey:SenderID" json:"sender"`
	ReceiverID string    `gorm:"index" json:"receiverId"`
	Receiver   User      `gorm:"foreignKey:ReceiverID" json:"receiver"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}
