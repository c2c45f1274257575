package model

import "time"

// Conversation is the canonical pairing of two users. User1ID is always
// the smaller id so that (A,B) and (B,A) resolve to the same row; the
// table carries a unique key on the ordered pair.
type Conversation struct {
	ID              uint64
	User1ID         uint64
	User2ID         uint64
	LastMessageTime time.Time
}

// NormalizePair orders a user pair into the canonical (lo, hi) form used
// as the conversation key.
func NormalizePair(a, b uint64) (lo, hi uint64) {
	if a < b {
		return a, b
	}
	return b, a
}

// Involves reports whether the given user is one of the two participants.
func (c Conversation) Involves(userID uint64) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// Peer returns the other participant of the conversation.
func (c Conversation) Peer(userID uint64) uint64 {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// MarkReadFor flips the read flag on every message addressed to reader,
// leaving messages addressed to the other participant untouched. It is
// the in-memory counterpart of the persisted read receipt, applied to an
// already-loaded thread.
func MarkReadFor(msgs []Message, reader uint64) {
	for i := range msgs {
		if msgs[i].ReceiverID == reader {
			msgs[i].IsRead = true
		}
	}
}

// Message is a directed content unit between two users. Messages belong to
// a conversation implicitly, through the (sender, receiver) pair.
type Message struct {
	ID         uint64
	SenderID   uint64
	ReceiverID uint64
	Content    string
	IsRead     bool
	CreatedAt  time.Time
}
