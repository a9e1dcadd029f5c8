package event

import "encoding/json"

// Client to server events
const (
	EventJoinChat    = "join_chat"
	EventSendMessage = "send_message"
	EventTyping      = "typing"
)

// Server to client events
const (
	EventUserOnline       = "user_online"
	EventUserOffline      = "user_offline"
	EventReceiveMessage   = "receive_message"
	EventUserTyping       = "user_typing"
	EventNewNotification  = "new_notification"
	EventConnectionUpdate = "connection_update"
	EventError            = "error"
)

// WsEvent is the envelope for every frame on the realtime channel.
type WsEvent struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// New builds an outbound event, marshalling the payload.
func New(name string, payload any) (WsEvent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return WsEvent{}, err
	}
	return WsEvent{Event: name, Payload: raw}, nil
}

// SendMessagePayload is the body of a send_message frame.
type SendMessagePayload struct {
	RecipientID string `json:"recipientId"`
	Content     string `json:"content"`
}

// TypingPayload is the body of a typing frame.
type TypingPayload struct {
	RecipientID string `json:"recipientId"`
	IsTyping    bool   `json:"isTyping"`
}

// UserTypingPayload is relayed to the chat room, sender excluded.
type UserTypingPayload struct {
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

// MessagePreview is the lightweight new_notification body pushed to an
// online recipient's personal room when a message arrives. Not persisted.
type MessagePreview struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	SenderID string `json:"senderId"`
}

// ConnectionUpdatePayload announces a newly accepted edge to all clients.
type ConnectionUpdatePayload struct {
	User1 string `json:"user1"`
	User2 string `json:"user2"`
}
