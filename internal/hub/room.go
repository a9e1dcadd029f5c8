package hub

// ChatRoomID derives the shared room key for a pair of users: the
// lexicographically sorted pair joined by an underscore. Commutative, so both
// parties always land in the same room without a conversation entity. Ids are
// the canonical hex string form.
func ChatRoomID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "_" + b
}

// PersonalRoom is the per-user room every connection joins at registration,
// used for out-of-band notification delivery.
func PersonalRoom(userID string) string {
	return userID
}
