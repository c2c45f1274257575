package repository

import (
	"context"
	"database/sql"
	"time"

	"loadboard/internal/model"
)

// ConversationRepo persists conversations and their messages. The pair is
// stored normalized (user1_id < user2_id) under a unique key, so
// find-or-create is a single upsert and two racing first messages between
// the same pair still land in one conversation.
type ConversationRepo struct{ DB *sql.DB }

func NewConversationRepo(db *sql.DB) *ConversationRepo { return &ConversationRepo{DB: db} }

// Upsert resolves the conversation for a user pair, creating it if
// missing, and advances last_message_time. Returns the conversation id.
// LAST_INSERT_ID(id) in the update arm makes LastInsertId() yield the
// existing row's id on the duplicate path.
func (r *ConversationRepo) Upsert(ctx context.Context, a, b uint64, lastMessage time.Time) (uint64, error) {
	lo, hi := model.NormalizePair(a, b)
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO conversations (user1_id, user2_id, last_message_time)
		 VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE
			id = LAST_INSERT_ID(id),
			last_message_time = VALUES(last_message_time)`,
		lo, hi, lastMessage)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches one conversation.
func (r *ConversationRepo) GetByID(ctx context.Context, id uint64) (model.Conversation, error) {
	var c model.Conversation
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user1_id, user2_id, last_message_time
		 FROM conversations WHERE id=? LIMIT 1`, id).
		Scan(&c.ID, &c.User1ID, &c.User2ID, &c.LastMessageTime)
	return c, err
}

// Summary is one row of the caller's conversation list: the conversation,
// the peer's identity and the caller's unread count.
type Summary struct {
	ID              uint64    `json:"id"`
	PeerID          uint64    `json:"peer_id"`
	PeerName        string    `json:"peer_name"`
	PeerType        string    `json:"peer_type"`
	LastMessageTime time.Time `json:"last_message_time"`
	UnreadCount     uint32    `json:"unread_count"`
}

// ListForUser returns the caller's conversations ordered by most recent
// message. Unread counts only consider messages addressed to the caller.
func (r *ConversationRepo) ListForUser(ctx context.Context, userID uint64) ([]Summary, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.id,
			CASE WHEN c.user1_id=? THEN c.user2_id ELSE c.user1_id END AS peer_id,
			IF(u.first_name='', u.username, TRIM(CONCAT(u.first_name, ' ', u.last_name))),
			u.user_type,
			c.last_message_time,
			(SELECT COUNT(*) FROM messages m
			  WHERE m.receiver_id=? AND m.is_read=0
			    AND ((m.sender_id=c.user1_id AND m.receiver_id=c.user2_id)
			      OR (m.sender_id=c.user2_id AND m.receiver_id=c.user1_id)))
		 FROM conversations c
		 JOIN users u ON u.id = CASE WHEN c.user1_id=? THEN c.user2_id ELSE c.user1_id END
		 WHERE c.user1_id=? OR c.user2_id=?
		 ORDER BY c.last_message_time DESC, c.id DESC`,
		userID, userID, userID, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.PeerID, &s.PeerName, &s.PeerType,
			&s.LastMessageTime, &s.UnreadCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// InsertMessage persists one directed message as unread.
func (r *ConversationRepo) InsertMessage(ctx context.Context, senderID, receiverID uint64, content string, at time.Time) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO messages (sender_id, receiver_id, content, is_read, created_at)
		 VALUES (?,?,?,0,?)`,
		senderID, receiverID, content, at)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListMessages returns every message of the conversation's pair in both
// directions, oldest first for chronological rendering.
func (r *ConversationRepo) ListMessages(ctx context.Context, c model.Conversation) ([]model.Message, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, sender_id, receiver_id, content, is_read, created_at
		 FROM messages
		 WHERE (sender_id=? AND receiver_id=?) OR (sender_id=? AND receiver_id=?)
		 ORDER BY created_at ASC, id ASC`,
		c.User1ID, c.User2ID, c.User2ID, c.User1ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Message{}
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content,
			&m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// MarkRead flags every message of the conversation addressed to reader as
// read. Messages addressed to the other participant are untouched.
func (r *ConversationRepo) MarkRead(ctx context.Context, c model.Conversation, reader uint64) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE messages SET is_read=1
		 WHERE receiver_id=? AND is_read=0
		   AND ((sender_id=? AND receiver_id=?) OR (sender_id=? AND receiver_id=?))`,
		reader, c.User1ID, c.User2ID, c.User2ID, c.User1ID)
	return err
}
