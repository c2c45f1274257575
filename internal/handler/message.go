package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"loadboard/internal/model"
	"loadboard/internal/repository"
)

// MessageHandler serves conversations and messages between two users.
type MessageHandler struct {
	Conversations *repository.ConversationRepo
	Users         *repository.UserRepo
}

func NewMessageHandler(cr *repository.ConversationRepo, ur *repository.UserRepo) *MessageHandler {
	return &MessageHandler{Conversations: cr, Users: ur}
}

// messageResp is the serialized message; models stay tag-free.
type messageResp struct {
	ID         uint64    `json:"id"`
	SenderID   uint64    `json:"sender_id"`
	ReceiverID uint64    `json:"receiver_id"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

func toMessageResps(msgs []model.Message) []messageResp {
	out := make([]messageResp, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageResp{
			ID:         m.ID,
			SenderID:   m.SenderID,
			ReceiverID: m.ReceiverID,
			Content:    m.Content,
			IsRead:     m.IsRead,
			CreatedAt:  m.CreatedAt,
		})
	}
	return out
}

// ListConversations handles GET /api/conversations: the caller's
// conversation summaries with unread counts, most recent first.
func (h *MessageHandler) ListConversations(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	items, err := h.Conversations.ListForUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load conversations failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// ListMessages handles GET /api/conversations/:id/messages. Only the two
// participants may read the thread. Fetching marks every message
// addressed to the caller as read; the peer's unread state is untouched.
func (h *MessageHandler) ListMessages(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid conversation id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	conv, err := h.Conversations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "conversation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load conversation failed"})
	}
	if !conv.Involves(uid) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	msgs, err := h.Conversations.ListMessages(ctx, conv)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load messages failed"})
	}
	// The read receipt is a side effect of viewing the thread. Messages
	// are already fetched; a failure here costs only a stale unread count.
	if err := h.Conversations.MarkRead(ctx, conv, uid); err != nil {
		log.Warn().Err(err).Uint64("conversation", conv.ID).Msg("mark read failed")
	} else {
		// Reflect the persisted receipt in the already-loaded thread so
		// the response shows the caller's messages as read.
		model.MarkReadFor(msgs, uid)
	}
	items := toMessageResps(msgs)
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

type sendMessageReq struct {
	ReceiverID uint64 `json:"receiver_id"`
	Content    string `json:"content"`
}

// Send handles POST /api/messages. The conversation is upserted before
// the message insert so every stored message has a conversation to hang
// off, even if a crash separates the two writes.
func (h *MessageHandler) Send(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req sendMessageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.ReceiverID == 0 || req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "receiver_id and content required"})
	}
	if req.ReceiverID == uid {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot message yourself"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, req.ReceiverID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "receiver not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load receiver failed"})
	}

	now := time.Now().UTC()
	convID, err := h.Conversations.Upsert(ctx, uid, req.ReceiverID, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "send message failed"})
	}
	msgID, err := h.Conversations.InsertMessage(ctx, uid, req.ReceiverID, req.Content, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "send message failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":              msgID,
		"conversation_id": convID,
	})
}
