package hub

import (
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/auth"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/event"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/model"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/observability"
	"github.com/HARSHSHRI12/Nogen-Backend/pkg/apperr"
)

const (
	shardCount = 64 // tune: 16/64/128 depending on load

	previewLimit = 50 // chars of message content in a push preview
)

// TokenVerifier validates the handshake credential. Satisfied by
// auth.TokenManager.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*auth.Claims, error)
}

// UserStore resolves a verified credential to a user.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// ConnectionStore answers the single graph query the relay needs: does an
// accepted edge exist between two users, in either role.
type ConnectionStore interface {
	AcceptedExists(ctx context.Context, a, b primitive.ObjectID) (bool, error)
}

// MessageStore persists relayed messages.
type MessageStore interface {
	InsertMessage(ctx context.Context, msg *model.Message) (*model.Message, error)
}

type inboundMessage struct {
	event  event.WsEvent
	client *Client
}

type clientBucket struct {
	sync.RWMutex
	rooms map[string]map[string]*Client
}

// Hub is the messaging relay: it owns room membership, the presence table
// and the fan-out path. Every connection's events are handled by a bounded
// worker pool; a failing event is dropped without corrupting shared state.
type Hub struct {
	shards     [shardCount]*clientBucket
	clients    map[string]*Client
	clientsMu  sync.RWMutex
	presence   *Presence
	register   chan *Client
	unregister chan *Client
	inbound    chan inboundMessage

	tokens      TokenVerifier
	users       UserStore
	connections ConnectionStore
	messages    MessageStore
	logger      *zap.Logger

	allowedOrigins map[string]bool

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(tokens TokenVerifier, users UserStore, connections ConnectionStore, messages MessageStore, allowedOrigins []string, logger *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Hub{
		clients:        make(map[string]*Client),
		presence:       NewPresence(),
		register:       make(chan *Client, 1024),
		unregister:     make(chan *Client, 1024),
		inbound:        make(chan inboundMessage, 4096), // buffer for burst handling
		tokens:         tokens,
		users:          users,
		connections:    connections,
		messages:       messages,
		logger:         logger,
		allowedOrigins: make(map[string]bool, len(allowedOrigins)),
		ctx:            ctx,
		cancel:         cancel,
	}

	for _, origin := range allowedOrigins {
		h.allowedOrigins[origin] = true
	}

	for i := 0; i < shardCount; i++ {
		h.shards[i] = &clientBucket{
			rooms: make(map[string]map[string]*Client),
		}
	}

	// run manager loop
	go h.run()

	// start worker loop
	for i := 0; i < workerPoolSize; i++ {
		h.wg.Add(1)
		go func() {
			defer h.wg.Done()
			for {
				select {
				case <-h.ctx.Done():
					return
				case in, ok := <-h.inbound:
					if !ok {
						return
					}
					h.handleEvent(in.event, in.client)
				}
			}
		}()
	}

	return h
}

// Presence exposes the liveness table to HTTP handlers (connection listings,
// monitor endpoint).
func (h *Hub) Presence() *Presence {
	return h.presence
}

func (h *Hub) run() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case c := <-h.register:
			h.addClient(c)
		case c := <-h.unregister:
			h.removeClient(c)
		}
	}
}

// handleEvent dispatches one inbound frame. Each handler fails closed: a bad
// payload or store failure drops the one triggering event, never the
// connection or shared state.
func (h *Hub) handleEvent(ev event.WsEvent, c *Client) {
	observability.IncWSEvent(ev.Event)

	switch ev.Event {
	case event.EventJoinChat:
		var otherUserID string
		if err := json.Unmarshal(ev.Payload, &otherUserID); err != nil {
			h.logger.Warn("malformed join_chat payload", zap.Error(err))
			return
		}
		h.handleJoinChat(c, otherUserID)
	case event.EventSendMessage:
		var payload event.SendMessagePayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			h.logger.Warn("malformed send_message payload", zap.Error(err))
			return
		}
		h.handleSendMessage(c, payload)
	case event.EventTyping:
		var payload event.TypingPayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			h.logger.Warn("malformed typing payload", zap.Error(err))
			return
		}
		h.handleTyping(c, payload)
	default:
		h.logger.Warn("unknown event type", zap.String("event", ev.Event))
	}
}

// handleJoinChat admits the caller to the pair room iff an accepted edge
// exists between the two users in either direction. The graph is re-queried
// on every join; nothing is cached.
func (h *Hub) handleJoinChat(c *Client, otherUserID string) {
	callerID, err1 := primitive.ObjectIDFromHex(c.userID)
	otherID, err2 := primitive.ObjectIDFromHex(otherUserID)
	if err1 != nil || err2 != nil {
		h.sendError(c, "invalid user id")
		return
	}

	connected, err := h.connections.AcceptedExists(h.ctx, callerID, otherID)
	if err != nil {
		h.logger.Error("join_chat connection lookup failed", zap.Error(err))
		return
	}
	if !connected {
		h.sendError(c, "You are not connected with this user")
		return
	}

	// Room keys are built from the parsed ids so casing variants of the same
	// id land in the same room.
	roomID := ChatRoomID(callerID.Hex(), otherID.Hex())
	h.joinRoom(c, roomID)
	h.logger.Debug("client joined chat room",
		zap.String("user", c.userID),
		zap.String("room", roomID),
	)
}

// handleSendMessage persists the message, fans it out to the pair room and
// pushes a lightweight preview to the recipient's personal room if they are
// online. The connection graph is not re-checked here; membership was gated
// at join time. Persist and broadcast are not transactional: a crash in
// between leaves a stored message that was never delivered live, reconciled
// by the client's history fetch.
func (h *Hub) handleSendMessage(c *Client, payload event.SendMessagePayload) {
	senderID, err1 := primitive.ObjectIDFromHex(c.userID)
	recipientID, err2 := primitive.ObjectIDFromHex(payload.RecipientID)
	if err1 != nil || err2 != nil {
		h.sendError(c, "invalid recipient id")
		return
	}

	recipientHex := recipientID.Hex()
	roomID := ChatRoomID(senderID.Hex(), recipientHex)

	msg, err := h.messages.InsertMessage(h.ctx, &model.Message{
		Sender:    senderID,
		Recipient: recipientID,
		Content:   payload.Content,
	})
	if err != nil {
		// Acceptable loss: no retry or outbox on the relay path.
		h.logger.Error("failed to persist message",
			zap.Error(err),
			zap.String("room", roomID),
		)
		return
	}

	receiveEv, err := event.New(event.EventReceiveMessage, msg)
	if err != nil {
		h.logger.Error("failed to encode message event", zap.Error(err))
		return
	}
	h.publishToRoom(receiveEv, roomID)
	observability.IncMessageRelayed()

	// Recipient online but maybe not in the chat room: push a preview to
	// their personal room so they still get notified.
	if h.presence.Has(recipientHex) {
		preview := event.MessagePreview{
			Type:     model.NotificationMessage,
			Title:    "New message from " + c.userName,
			Message:  previewContent(payload.Content),
			SenderID: c.userID,
		}
		if notifEv, err := event.New(event.EventNewNotification, preview); err == nil {
			h.publishToRoom(notifEv, PersonalRoom(recipientHex))
		}
	}
}

// handleTyping relays the indicator to the pair room, sender excluded. No
// persistence, no delivery guarantee.
func (h *Hub) handleTyping(c *Client, payload event.TypingPayload) {
	senderID, err1 := primitive.ObjectIDFromHex(c.userID)
	recipientID, err2 := primitive.ObjectIDFromHex(payload.RecipientID)
	if err1 != nil || err2 != nil {
		return
	}

	roomID := ChatRoomID(senderID.Hex(), recipientID.Hex())
	ev, err := event.New(event.EventUserTyping, event.UserTypingPayload{
		UserID:   c.userID,
		IsTyping: payload.IsTyping,
	})
	if err != nil {
		return
	}
	h.publishToRoomExcept(ev, roomID, c.ID)
}

func (h *Hub) sendError(c *Client, msg string) {
	ev, err := event.New(event.EventError, msg)
	if err != nil {
		return
	}
	c.SafeSend(ev, sendTimeout)
}

// previewContent truncates to previewLimit characters plus an ellipsis,
// rune-safe.
func previewContent(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLimit {
		return content
	}
	return string(runes[:previewLimit]) + "..."
}

func getShard(roomID string) uint32 {
	if roomID == "" {
		return 0
	}

	h := sha1.Sum([]byte(roomID))
	return binary.BigEndian.Uint32(h[:4]) % shardCount
}

// addClient registers a new connection: track it globally, join its personal
// room, record presence and announce liveness.
func (h *Hub) addClient(c *Client) {
	h.clientsMu.Lock()
	h.clients[c.ID] = c
	h.clientsMu.Unlock()

	h.joinRoom(c, PersonalRoom(c.userID))
	h.presence.Set(c.userID, c.ID)
	observability.SetActiveConnections(h.clientCount())

	if ev, err := event.New(event.EventUserOnline, c.userID); err == nil {
		h.Broadcast(ev)
	}

	h.logger.Info("client registered",
		zap.String("client", c.ID),
		zap.String("user", c.userID),
	)
}

// removeClient drops the connection from every room it joined, removes its
// presence entry if it still owns one, and announces user_offline when it
// did.
func (h *Hub) removeClient(c *Client) {
	h.clientsMu.Lock()
	_, known := h.clients[c.ID]
	delete(h.clients, c.ID)
	h.clientsMu.Unlock()
	if !known {
		return
	}

	for _, roomID := range c.joinedRooms() {
		h.leaveRoom(c, roomID)
	}

	wasPresent := h.presence.Remove(c.userID, c.ID)
	observability.SetActiveConnections(h.clientCount())
	c.Close()

	if wasPresent {
		if ev, err := event.New(event.EventUserOffline, c.userID); err == nil {
			h.Broadcast(ev)
		}
	}

	h.logger.Info("client removed",
		zap.String("client", c.ID),
		zap.String("user", c.userID),
	)
}

func (h *Hub) joinRoom(c *Client, roomID string) {
	sh := getShard(roomID)
	b := h.shards[sh]
	b.Lock()
	defer b.Unlock()

	room, ok := b.rooms[roomID]
	if !ok {
		room = make(map[string]*Client)
		b.rooms[roomID] = room
	}

	room[c.ID] = c
	c.trackRoom(roomID)
}

func (h *Hub) leaveRoom(c *Client, roomID string) {
	sh := getShard(roomID)
	b := h.shards[sh]
	b.Lock()
	defer b.Unlock()

	if room, ok := b.rooms[roomID]; ok {
		delete(room, c.ID)
		if len(room) == 0 {
			delete(b.rooms, roomID)
		}
	}
}

func (h *Hub) roomClients(roomID string) []*Client {
	sh := getShard(roomID)
	b := h.shards[sh]

	b.RLock()
	defer b.RUnlock()
	room, ok := b.rooms[roomID]
	if !ok {
		return nil
	}

	clients := make([]*Client, 0, len(room))
	for _, c := range room {
		clients = append(clients, c)
	}
	return clients
}

func (h *Hub) publishToRoom(ev event.WsEvent, roomID string) {
	h.publishToRoomExcept(ev, roomID, "")
}

func (h *Hub) publishToRoomExcept(ev event.WsEvent, roomID, exceptClientID string) {
	for _, c := range h.roomClients(roomID) {
		if c.ID == exceptClientID {
			continue
		}
		if !c.SafeSend(ev, sendTimeout) {
			h.logger.Warn("egress full or closed",
				zap.String("client", c.ID),
				zap.String("room", roomID),
			)
			if kickOnFull {
				h.unregister <- c
			}
		}
	}
}

// EmitToUser delivers an event to every connection in the user's personal
// room. Best effort: no acknowledgment, retry or ordering guarantee.
func (h *Hub) EmitToUser(userID string, ev event.WsEvent) {
	h.publishToRoom(ev, PersonalRoom(userID))
}

// Broadcast delivers an event to every connected client.
func (h *Hub) Broadcast(ev event.WsEvent) {
	h.clientsMu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	for _, c := range clients {
		c.SafeSend(ev, sendTimeout)
	}
}

// IsOnline reports whether the user has a live tracked connection.
func (h *Hub) IsOnline(userID string) bool {
	return h.presence.Has(userID)
}

func (h *Hub) clientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// Stop shuts the hub down: stop the workers, close every client connection.
func (h *Hub) Stop() {
	h.cancel()

	h.clientsMu.RLock()
	for _, c := range h.clients {
		c.Close()
	}
	h.clientsMu.RUnlock()

	close(h.inbound)
	h.wg.Wait()
}

var websocketUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return h.allowedOrigins[origin]
}

// ServeWS authenticates the handshake and upgrades the connection. A request
// without a valid credential is rejected with 401 and never reaches event
// handlers, presence or rooms.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	user, err := h.authenticate(r)
	if err != nil {
		h.logger.Warn("websocket authentication failed", zap.Error(err))
		http.Error(w, "authentication error", http.StatusUnauthorized)
		return
	}

	upgrader := websocketUpgrader
	upgrader.CheckOrigin = h.checkOrigin
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	RegisterClient(user, conn, h)
}

// authenticate extracts the bearer credential from the explicit handshake
// field or the access token cookie, verifies it and resolves the user.
func (h *Hub) authenticate(r *http.Request) (*model.User, error) {
	token := r.URL.Query().Get("token")
	if token == "" {
		if cookie, err := r.Cookie(auth.AccessTokenCookie); err == nil {
			token = cookie.Value
		}
	}
	if token == "" {
		return nil, apperr.ErrTokenMissing
	}

	claims, err := h.tokens.VerifyAccessToken(token)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	return h.users.FindByID(ctx, claims.UserID)
}
