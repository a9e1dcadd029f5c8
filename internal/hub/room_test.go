package hub

import "testing"

func TestChatRoomIDIsCommutative(t *testing.T) {
	a := "64f0c2b7e13a4a0001a11111"
	b := "64f0c2b7e13a4a0001a22222"

	if ChatRoomID(a, b) != ChatRoomID(b, a) {
		t.Fatalf("room id must not depend on argument order")
	}
	if ChatRoomID(a, b) != a+"_"+b {
		t.Fatalf("expected lexicographically sorted pair, got %s", ChatRoomID(a, b))
	}
}

func TestChatRoomIDSamePair(t *testing.T) {
	if ChatRoomID("u1", "u2") == ChatRoomID("u1", "u3") {
		t.Fatalf("different pairs must map to different rooms")
	}
}

func TestPersonalRoom(t *testing.T) {
	if PersonalRoom("u1") != "u1" {
		t.Fatalf("personal room is keyed by the user id")
	}
}
