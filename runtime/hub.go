package runtime

import (
	"chat-relay/contract"
	"chat-relay/domain/chat"
	"chat-relay/domain/event"
	"chat-relay/errors"
	"chat-relay/infrastructure/storage"
	"chat-relay/moderation"
	"chat-relay/runtime/workers"
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/abadojack/whatlanggo"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const blockedReason = "You have been locked out of the group chat by an administrator"

// Hub routes realtime traffic between the presence registry, the moderation
// gate and the message store. Every mutation runs to completion under mu, so
// commands from the socket layer and admin actions never interleave.
type Hub struct {
	mu        sync.Mutex
	log       *slog.Logger
	registry  *Registry
	gate      *moderation.Gate
	moderator moderation.Moderator
	messages  storage.IMessageRepository
	users     storage.IUserRepository
	groups    storage.IGroupRepository
	notifier  *Notifier
	reaper    *Reaper
	telemetry *workers.Telemetry
	now       func() time.Time
}

func NewHub(log *slog.Logger, registry *Registry, gate *moderation.Gate, moderator moderation.Moderator,
	messages storage.IMessageRepository, users storage.IUserRepository, groups storage.IGroupRepository,
	notifier *Notifier, reaper *Reaper) *Hub {
	return &Hub{
		log:       log,
		registry:  registry,
		gate:      gate,
		moderator: moderator,
		messages:  messages,
		users:     users,
		groups:    groups,
		notifier:  notifier,
		reaper:    reaper,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithTelemetry reports routed and censored messages as technical events.
func (h *Hub) WithTelemetry(telemetry *workers.Telemetry) *Hub {
	h.telemetry = telemetry
	return h
}

// Handle executes one realtime command. Rejections are answered on the
// originating connection and are not returned; storage failures are.
func (h *Hub) Handle(ctx context.Context, cmd Command) error {
	var err error
	switch c := cmd.(type) {
	case JoinCommand:
		err = h.Join(ctx, c.Conn, c.Session, c.Identity)
	case SendCommand:
		err = h.Send(ctx, c.Conn, c.From, c.To, c.Text)
	case FileMessageCommand:
		err = h.SendFile(ctx, c.Conn, c.From, c.To, c.FilePath, c.Filename)
	case SeenCommand:
		err = h.Seen(ctx, c.Conn, c.Identity, c.MessageID)
	case DeleteCommand:
		err = h.Delete(ctx, c.Conn, c.Identity, c.MessageID)
	case DisconnectCommand:
		err = h.Disconnect(ctx, c.Conn, c.Identity)
	default:
		h.log.Warn("Unknown command", "type", fmt.Sprintf("%T", cmd))
		return nil
	}
	if errors.IsRejection(err) {
		h.reject(ctx, cmd, err)
		return nil
	}
	return err
}

// Join binds identity to conn, replays the visible history and broadcasts presence.
// A previous connection of the same identity is told it was replaced and closed.
func (h *Hub) Join(ctx context.Context, conn contract.Connection, session, identity string) error {
	if session != identity {
		return errors.ErrIdentityMismatch
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	user, err := h.users.FindByUsername(identity)
	if goerrors.Is(err, errors.ErrUserNotFound) {
		return errors.ErrNotAuthorized
	}
	if err != nil {
		return err
	}
	if !user.IsApproved() {
		return errors.ErrNotAuthorized
	}

	if previous, replaced := h.registry.Join(identity, user.Avatar, conn); replaced {
		h.log.Info("Session replaced by a newer connection", "identity", identity)
		if err = previous.Consume(ctx, event.SessionReplaced{}); err != nil {
			h.log.Debug("Unable to notify replaced session", "identity", identity, "error", err)
		}
		previous.Close()
	}
	h.notifier.ResetSession(identity)

	history, err := h.messages.ListVisibleTo(identity)
	if err != nil {
		return fmt.Errorf("history of %s: %w", identity, err)
	}
	locked := h.gate.IsLocked(identity)
	if locked {
		history = lo.Reject(history, func(m chat.Message, _ int) bool { return m.IsGroup() })
	}
	h.deliver(ctx, identity, conn, event.History{Messages: history})
	if locked {
		h.deliver(ctx, identity, conn, event.ChatLockStateChanged{Locked: true})
	}

	h.log.Info("Identity joined", "identity", identity, "history", len(history))
	h.broadcastPresence(ctx)
	return nil
}

func (h *Hub) Send(ctx context.Context, conn contract.Connection, from, to, text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.ErrEmptyMessage
	}
	return h.post(ctx, conn, from, to, chat.TextPayload(text))
}

func (h *Hub) SendFile(ctx context.Context, conn contract.Connection, from, to, filePath, filename string) error {
	if strings.TrimSpace(filePath) == "" || strings.TrimSpace(filename) == "" {
		return errors.ErrInvalidFileMessage
	}
	return h.post(ctx, conn, from, to, chat.FilePayload(filePath, filename))
}

func (h *Hub) post(ctx context.Context, conn contract.Connection, from, to string, payload chat.Payload) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return errors.ErrMissingRecipient
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.isJoined(from, conn) {
		return errors.ErrNotJoined
	}
	if to == chat.GroupChannel && h.gate.IsLocked(from) {
		h.log.Info("Group message blocked", "identity", from)
		h.deliver(ctx, from, conn, event.MessageBlocked{Reason: blockedReason})
		return nil
	}

	if payload.Kind == chat.KindText {
		payload.Text = h.censor(from, payload.Text)
	}

	stored, err := h.messages.Append(chat.NewMessage(from, to, payload, h.now()))
	if err != nil {
		return fmt.Errorf("append message from %s: %w", from, err)
	}

	delivered := h.fanOut(ctx, stored)
	h.telemetry.Emit(event.NewTechnical(event.MessageSentType, event.MessageSent{Channel: stored.To, At: stored.CreatedAt}))
	var skip func(string) bool
	if stored.IsGroup() {
		skip = h.gate.IsLocked
	}
	h.notifier.OnMessage(ctx, stored, delivered, skip)
	return nil
}

// fanOut pushes a stored message to the connections allowed to read it and
// returns the identities that received it.
func (h *Hub) fanOut(ctx context.Context, message chat.Message) map[string]bool {
	delivered := make(map[string]bool)
	evt := event.MessageDelivered{Message: message}

	if message.IsGroup() {
		for identity, conn := range h.registry.Connections() {
			if h.gate.IsLocked(identity) {
				continue
			}
			delivered[identity] = h.deliver(ctx, identity, conn, evt)
		}
		return delivered
	}

	for _, identity := range lo.Uniq([]string{message.From, message.To}) {
		if conn, ok := h.registry.Connection(identity); ok {
			delivered[identity] = h.deliver(ctx, identity, conn, evt)
		}
	}
	return delivered
}

// Seen acknowledges a message. Unknown ids and messages the identity cannot
// read are ignored.
func (h *Hub) Seen(ctx context.Context, conn contract.Connection, identity string, id uuid.UUID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.isJoined(identity, conn) {
		return errors.ErrNotJoined
	}
	message, err := h.messages.Get(id)
	if goerrors.Is(err, errors.ErrMessageNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !message.VisibleTo(identity) || (message.IsGroup() && h.gate.IsLocked(identity)) {
		h.log.Debug("Seen ignored for a message out of reach", "identity", identity, "message_id", id)
		return nil
	}
	return h.messages.MarkSeen(id, identity)
}

// Delete removes a message on behalf of its author or an admin.
func (h *Hub) Delete(ctx context.Context, conn contract.Connection, identity string, id uuid.UUID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.isJoined(identity, conn) {
		return errors.ErrNotJoined
	}
	message, err := h.messages.Get(id)
	if goerrors.Is(err, errors.ErrMessageNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if message.From != identity {
		user, err := h.users.FindByUsername(identity)
		if err != nil || !user.IsAdmin() {
			return errors.ErrNotAuthorized
		}
	}
	if err = h.messages.Remove(id); err != nil {
		return fmt.Errorf("remove message %s: %w", id, err)
	}
	broadcast(ctx, h.registry, event.MessageDeleted{ID: id}, h.log)
	return nil
}

// Disconnect unbinds conn. The retention pass only runs when the identity
// actually went offline.
func (h *Hub) Disconnect(ctx context.Context, conn contract.Connection, identity string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.registry.Leave(identity, conn) {
		h.log.Debug("Stale disconnect ignored", "identity", identity)
		return nil
	}
	h.log.Info("Identity left", "identity", identity)
	h.broadcastPresence(ctx)

	if _, err := h.reaper.Reap(ctx, identity); err != nil {
		return fmt.Errorf("retention for %s: %w", identity, err)
	}
	return nil
}

func (h *Hub) Lock(ctx context.Context, identity string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.gate.Lock(ctx, identity)
}

func (h *Hub) Unlock(ctx context.Context, identity string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.gate.Unlock(ctx, identity)
}

// ClearChat removes every stored message and tells every connection.
func (h *Hub) ClearChat(ctx context.Context) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ids, err := h.messages.Clear()
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		broadcast(ctx, h.registry, event.MessageDeleted{ID: id}, h.log)
	}
	h.log.Info("Chat cleared", "removed", len(ids))
	return len(ids), nil
}

func (h *Hub) SetGroupInfo(ctx context.Context, info chat.GroupInfo) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.groups.SaveGroupInfo(info); err != nil {
		return err
	}
	h.broadcastPresence(ctx)
	return nil
}

// Kick closes the live connection of identity, used when its account is removed.
func (h *Hub) Kick(ctx context.Context, identity string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.gate.Forget(identity)
	conn, ok := h.registry.Remove(identity)
	if !ok {
		return
	}
	conn.Close()
	h.log.Info("Identity kicked", "identity", identity)
	h.broadcastPresence(ctx)
}

// UpdateAvatar refreshes the presence entry of an online identity.
func (h *Hub) UpdateAvatar(ctx context.Context, identity, avatar string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.registry.IsOnline(identity) {
		return
	}
	h.registry.SetAvatar(identity, avatar)
	h.broadcastPresence(ctx)
}

func (h *Hub) IsOnline(identity string) bool {
	return h.registry.IsOnline(identity)
}

func (h *Hub) broadcastPresence(ctx context.Context) {
	info, err := h.groups.GetGroupInfo()
	if err != nil {
		h.log.Warn("Unable to read group info", "error", err)
	}
	broadcast(ctx, h.registry, event.Online{
		Users:     h.registry.Snapshot(),
		GroupName: info.Name,
		GroupIcon: info.Icon,
	}, h.log)
}

func (h *Hub) censor(author, text string) string {
	if !h.moderator.IsEnabled() {
		return text
	}
	sanitized, words := h.moderator.Censor(text)
	if len(words) > 0 {
		info := whatlanggo.Detect(text)
		censored := event.Censored{Author: author, Words: words, Lang: info.Lang.Iso6391()}
		if !h.telemetry.Emit(event.NewTechnical(event.CensorshipHitType, censored)) {
			h.log.Info("Message censored", "author", author, "words", len(words), "lang", censored.Lang)
		}
	}
	return sanitized
}

func (h *Hub) isJoined(identity string, conn contract.Connection) bool {
	current, ok := h.registry.Connection(identity)
	return ok && current == conn
}

func (h *Hub) reject(ctx context.Context, cmd Command, err error) {
	conn := cmd.Origin()
	if conn == nil {
		return
	}
	h.log.Debug("Command rejected", "action", cmd.Action(), "reason", err)
	if consumeErr := conn.Consume(ctx, event.ActionRejected{Action: cmd.Action(), Reason: err.Error()}); consumeErr != nil {
		h.log.Debug("Unable to deliver rejection", "action", cmd.Action(), "error", consumeErr)
	}
}

func (h *Hub) deliver(ctx context.Context, identity string, conn contract.Connection, evt event.DomainEvent) bool {
	if err := conn.Consume(ctx, evt); err != nil {
		h.log.Warn("Delivery failed", "identity", identity, "event", evt.EventName(), "error", err)
		return false
	}
	return true
}

// broadcast sends evt to every live connection, best effort.
func broadcast(ctx context.Context, registry *Registry, evt event.DomainEvent, log *slog.Logger) {
	for identity, conn := range registry.Connections() {
		if err := conn.Consume(ctx, evt); err != nil {
			log.Warn("Broadcast failed", "identity", identity, "event", evt.EventName(), "error", err)
		}
	}
}
