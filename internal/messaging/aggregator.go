package messaging

import "github.com/1Kunalvats9/chatx/internal/models"

// GroupByPartner buckets a flat message list by conversation partner: for
// each message, the partner is whichever of sender/receiver is not the
// current user. The fold is order-preserving, not order-imposing: each
// bucket keeps the relative order of the input, so callers must supply
// messages in the order they want each thread to read (ascending, for the
// conversation listing). Every message lands in exactly one bucket.
func GroupByPartner(currentUserID string, messages []models.Message) map[string][]models.Message {
	conversations := make(map[string][]models.Message)
	for _, msg := range messages {
		partnerID := msg.SenderID
		if msg.SenderID == currentUserID {
			partnerID = msg.ReceiverID
		}
		conversations[partnerID] = append(conversations[partnerID], msg)
	}
	return conversations
}
