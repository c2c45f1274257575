package model

import "testing"

func TestNormalizePair(t *testing.T) {
	tests := []struct {
		name   string
		a, b   uint64
		wantLo uint64
		wantHi uint64
	}{
		{"already ordered", 1, 2, 1, 2},
		{"reversed order", 2, 1, 1, 2},
		{"large ids", 900, 7, 7, 900},
		{"equal ids", 5, 5, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := NormalizePair(tt.a, tt.b)
			if lo != tt.wantLo || hi != tt.wantHi {
				t.Errorf("NormalizePair(%d, %d) = (%d, %d), want (%d, %d)",
					tt.a, tt.b, lo, hi, tt.wantLo, tt.wantHi)
			}
		})
	}
}

func TestNormalizePair_OrderIndependent(t *testing.T) {
	lo1, hi1 := NormalizePair(14, 3)
	lo2, hi2 := NormalizePair(3, 14)
	if lo1 != lo2 || hi1 != hi2 {
		t.Errorf("NormalizePair is order-dependent: (%d,%d) vs (%d,%d)", lo1, hi1, lo2, hi2)
	}
}

func TestConversationInvolves(t *testing.T) {
	c := Conversation{User1ID: 3, User2ID: 14}

	tests := []struct {
		name   string
		userID uint64
		want   bool
	}{
		{"first participant", 3, true},
		{"second participant", 14, true},
		{"outsider", 9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Involves(tt.userID); got != tt.want {
				t.Errorf("Involves(%d) = %v, want %v", tt.userID, got, tt.want)
			}
		})
	}
}

func TestMarkReadFor(t *testing.T) {
	msgs := []Message{
		{ID: 1, SenderID: 3, ReceiverID: 14},
		{ID: 2, SenderID: 14, ReceiverID: 3},
		{ID: 3, SenderID: 3, ReceiverID: 14},
		{ID: 4, SenderID: 14, ReceiverID: 3, IsRead: true},
	}

	MarkReadFor(msgs, 14)

	for _, m := range msgs {
		want := m.ReceiverID == 14 || m.ID == 4
		if m.IsRead != want {
			t.Errorf("message %d: IsRead = %v, want %v", m.ID, m.IsRead, want)
		}
	}
}

func TestMarkReadFor_OnlyReader(t *testing.T) {
	msgs := []Message{
		{ID: 1, SenderID: 3, ReceiverID: 14},
		{ID: 2, SenderID: 14, ReceiverID: 3},
	}

	MarkReadFor(msgs, 3)

	if !msgs[1].IsRead {
		t.Error("message addressed to reader should be marked read")
	}
	if msgs[0].IsRead {
		t.Error("message addressed to the peer must stay unread")
	}
}

func TestConversationPeer(t *testing.T) {
	c := Conversation{User1ID: 3, User2ID: 14}
	if got := c.Peer(3); got != 14 {
		t.Errorf("Peer(3) = %d, want 14", got)
	}
	if got := c.Peer(14); got != 3 {
		t.Errorf("Peer(14) = %d, want 3", got)
	}
}
