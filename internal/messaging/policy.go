package messaging

import "context"

// AccessPolicy decides whether a send is permitted. The rule is a pure
// function of the follow graph: sender must follow receiver. The graph is
// consulted on every call, never cached, so a revoked follow takes effect
// on the next send.
type AccessPolicy struct {
	directory UserDirectory
}

func NewAccessPolicy(directory UserDirectory) *AccessPolicy {
	return &AccessPolicy{directory: directory}
}

func (p *AccessPolicy) CanMessage(ctx context.Context, senderID, receiverID string) (bool, error) {
	return p.directory.Follows(ctx, senderID, receiverID)
}
