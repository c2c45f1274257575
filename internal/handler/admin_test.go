package handler

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"loadboard/internal/model"
)

func TestToAdminActionRespsJSON(t *testing.T) {
	reason := "missing insurance certificate"
	actions := []model.AdminAction{
		{
			ID:        1,
			AdminID:   5,
			UserID:    9,
			Action:    model.AdminActionReject,
			Reason:    &reason,
			CreatedAt: time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:        2,
			AdminID:   5,
			UserID:    12,
			Action:    model.AdminActionApprove,
			CreatedAt: time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
		},
	}
	b, err := json.Marshal(toAdminActionResps(actions))
	if err != nil {
		t.Fatalf("marshal error = %v", err)
	}
	body := string(b)
	for _, key := range []string{`"admin_id":5`, `"user_id":9`, `"action":"reject"`, `"reason":"missing insurance certificate"`, `"action":"approve"`} {
		if !strings.Contains(body, key) {
			t.Errorf("marshaled history missing %s in %s", key, body)
		}
	}
	if strings.Contains(body, "AdminID") {
		t.Errorf("marshaled history leaks PascalCase field names: %s", body)
	}
	// approvals carry no reason; the key must be omitted, not null
	if strings.Count(body, `"reason"`) != 1 {
		t.Errorf("nil reason should be omitted: %s", body)
	}
}
