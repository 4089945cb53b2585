package messaging

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/1Kunalvats9/chatx/internal/models"
	apperrors "github.com/1Kunalvats9/chatx/pkg/errors"
	"github.com/1Kunalvats9/chatx/pkg/logger"
)

// MaxContentLength bounds a single message body, counted in runes.
const MaxContentLength = 2000

// Service orchestrates direct messaging: the follow-gated send, one
// conversation thread, and the full per-partner conversation listing.
// It holds no state between requests; everything durable lives behind
// MessageStore and UserDirectory.
type Service struct {
	directory UserDirectory
	store     MessageStore
	policy    *AccessPolicy
	emitter   NotificationEmitter
}

func NewService(directory UserDirectory, store MessageStore, emitter NotificationEmitter) *Service {
	return &Service{
		directory: directory,
		store:     store,
		policy:    NewAccessPolicy(directory),
		emitter:   emitter,
	}
}

// SendMessage validates, gates on the follow graph, persists, and then
// emits a notification. The check order is fixed: content first, identity
// resolution second, access third, persistence last.
func (s *Service) SendMessage(ctx context.Context, callerID, receiverID, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.BadRequest("Message content required")
	}
	if len([]rune(content)) > MaxContentLength {
		return nil, apperrors.BadRequest("Message content too long")
	}

	sender, err := s.directory.Lookup(ctx, callerID)
	if err != nil {
		return nil, classifyLookupErr(err)
	}

	receiver, err := s.directory.Lookup(ctx, receiverID)
	if err != nil {
		return nil, classifyLookupErr(err)
	}

	allowed, err := s.policy.CanMessage(ctx, sender.ID, receiver.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to check follow status")
	}
	if !allowed {
		return nil, apperrors.Forbidden("You can only message users you follow")
	}

	msg, err := s.store.Create(ctx, sender.ID, receiver.ID, content)
	if err != nil {
		return nil, apperrors.Internal("Failed to send message")
	}

	// Best effort: the message is already durable, so an emitter failure
	// is logged and swallowed rather than failing the send.
	if err := s.emitter.Emit(ctx, sender.ID, receiver.ID, models.NotificationTypeMessage); err != nil {
		logger.Warn().
			Err(err).
			Str("from", sender.ID).
			Str("to", receiver.ID).
			Msg("Notification emission failed after send")
	}

	return msg, nil
}

// GetConversation returns the ascending message history between the caller
// and one partner. The partner does not have to exist: history is keyed
// purely by ids, and an empty thread is a valid answer.
func (s *Service) GetConversation(ctx context.Context, callerID, partnerID string) ([]models.Message, error) {
	caller, err := s.directory.Lookup(ctx, callerID)
	if err != nil {
		return nil, classifyLookupErr(err)
	}

	messages, err := s.store.ThreadBetween(ctx, caller.ID, partnerID)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch messages")
	}
	return messages, nil
}

// GetConversations returns every conversation of the caller, keyed by
// partner id, each thread ascending. The store hands back messages newest
// first; they are re-sorted ascending before grouping because consumers
// read the last element of a bucket as the most recent message.
func (s *Service) GetConversations(ctx context.Context, callerID string) (map[string][]models.Message, error) {
	caller, err := s.directory.Lookup(ctx, callerID)
	if err != nil {
		return nil, classifyLookupErr(err)
	}

	messages, err := s.store.AllInvolving(ctx, caller.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch conversations")
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})

	return GroupByPartner(caller.ID, messages), nil
}

func classifyLookupErr(err error) error {
	if errors.Is(err, ErrUserNotFound) {
		return apperrors.NotFound("User not found")
	}
	return apperrors.Internal("Failed to resolve user")
}
