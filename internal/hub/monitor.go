package hub

import "sort"

// Stats is a point-in-time snapshot of the relay for the monitor endpoint.
type Stats struct {
	Status         string     `json:"status"`
	TotalConnected int        `json:"totalConnected"`
	TotalOnline    int        `json:"totalOnline"`
	OnlineUsers    []string   `json:"onlineUsers"`
	TotalRooms     int        `json:"totalRooms"`
	Rooms          []RoomInfo `json:"rooms"`
}

// RoomInfo describes a single room and its membership.
type RoomInfo struct {
	RoomID  string `json:"roomId"`
	Members int    `json:"members"`
}

// Stats walks the shards and the presence table. Point-in-time only; rooms
// can change while the walk is in progress.
func (h *Hub) Stats() Stats {
	stats := Stats{
		Status:         "healthy",
		TotalConnected: h.clientCount(),
		OnlineUsers:    h.presence.Snapshot(),
	}
	stats.TotalOnline = len(stats.OnlineUsers)
	sort.Strings(stats.OnlineUsers)

	for _, shard := range h.shards {
		shard.RLock()
		for roomID, room := range shard.rooms {
			stats.Rooms = append(stats.Rooms, RoomInfo{
				RoomID:  roomID,
				Members: len(room),
			})
		}
		shard.RUnlock()
	}
	stats.TotalRooms = len(stats.Rooms)
	sort.Slice(stats.Rooms, func(i, j int) bool {
		return stats.Rooms[i].RoomID < stats.Rooms[j].RoomID
	})

	return stats
}
