package handler

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"loadboard/internal/model"
)

func TestToMessageRespsJSON(t *testing.T) {
	msgs := []model.Message{
		{
			ID:         3,
			SenderID:   10,
			ReceiverID: 11,
			Content:    "rate confirmed",
			IsRead:     true,
			CreatedAt:  time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
		},
	}
	b, err := json.Marshal(toMessageResps(msgs))
	if err != nil {
		t.Fatalf("marshal error = %v", err)
	}
	body := string(b)
	for _, key := range []string{`"id":3`, `"sender_id":10`, `"receiver_id":11`, `"is_read":true`, `"created_at"`} {
		if !strings.Contains(body, key) {
			t.Errorf("marshaled message missing %s in %s", key, body)
		}
	}
	if strings.Contains(body, "SenderID") || strings.Contains(body, "IsRead") {
		t.Errorf("marshaled message leaks PascalCase field names: %s", body)
	}
}

func TestToMessageRespsEmpty(t *testing.T) {
	b, err := json.Marshal(toMessageResps(nil))
	if err != nil {
		t.Fatalf("marshal error = %v", err)
	}
	// an empty thread serializes as [] rather than null
	if string(b) != "[]" {
		t.Errorf("empty slice = %s, want []", b)
	}
}
