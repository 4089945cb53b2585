package messaging

import (
	"context"
	"sync"
	"time"

	"github.com/1Kunalvats9/chatx/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageStore persists messages and answers the two query shapes the
// messaging service needs: one thread, and everything touching one user.
type MessageStore interface {
	// Create persists a new message with a commit-time timestamp that is
	// strictly increasing across all messages written by this store.
	Create(ctx context.Context, senderID, receiverID, content string) (*models.Message, error)
	// ThreadBetween returns every message exchanged between the two ids,
	// in either direction, ascending by creation time.
	ThreadBetween(ctx context.Context, idA, idB string) ([]models.Message, error)
	// AllInvolving returns every message where id is sender or receiver,
	// descending by creation time (most recent first).
	AllInvolving(ctx context.Context, id string) ([]models.Message, error)
}

// GormMessageStore stores messages in the primary database. Timestamps are
// assigned from a store-owned monotonic clock so ordering by created_at is
// total even when two sends land in the same wall-clock instant.
type GormMessageStore struct {
	db *gorm.DB

	mu     sync.Mutex
	lastTS time.Time
}

func NewGormMessageStore(db *gorm.DB) *GormMessageStore {
	return &GormMessageStore{db: db}
}

// nextTimestamp returns a wall-clock time guaranteed to be after every
// timestamp previously handed out by this store instance.
func (s *GormMessageStore) nextTimestamp() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := time.Now()
	if !ts.After(s.lastTS) {
		ts = s.lastTS.Add(time.Microsecond)
	}
	s.lastTS = ts
	return ts
}

func (s *GormMessageStore) Create(ctx context.Context, senderID, receiverID, content string) (*models.Message, error) {
	msg := models.Message{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  s.nextTimestamp(),
	}

	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, err
	}

	// Populate sender/receiver for the response payload
	s.db.WithContext(ctx).Preload("Sender").Preload("Receiver").First(&msg, "id = ?", msg.ID)

	return &msg, nil
}

func (s *GormMessageStore) ThreadBetween(ctx context.Context, idA, idB string) ([]models.Message, error) {
	messages := make([]models.Message, 0)
	err := s.db.WithContext(ctx).
		Where(
			"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			idA, idB, idB, idA,
		).
		Order("created_at asc").
		Preload("Sender").Preload("Receiver").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *GormMessageStore) AllInvolving(ctx context.Context, id string) ([]models.Message, error) {
	messages := make([]models.Message, 0)
	err := s.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", id, id).
		Order("created_at desc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
