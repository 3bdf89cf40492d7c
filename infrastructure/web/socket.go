package web

import (
	"chat-relay/auth"
	"chat-relay/domain/event"
	"chat-relay/errors"
	"chat-relay/runtime"
	"chat-relay/sink"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/samber/lo"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxFrameSize   = 64 * 1024
	disconnectWait = 5 * time.Second
)

// Dispatcher queues realtime commands for the hub.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd runtime.Command) error
}

// SocketHandler upgrades authenticated requests to websockets and bridges
// frames to hub commands. Each socket owns one ConnectionSink.
type SocketHandler struct {
	issuer          *auth.TokenIssuer
	dispatcher      Dispatcher
	bufferSize      int
	deliveryTimeout time.Duration
	upgrader        websocket.Upgrader
	log             *slog.Logger
}

func NewSocketHandler(issuer *auth.TokenIssuer, dispatcher Dispatcher, bufferSize int,
	deliveryTimeout time.Duration, log *slog.Logger) *SocketHandler {
	return &SocketHandler{
		issuer:          issuer,
		dispatcher:      dispatcher,
		bufferSize:      bufferSize,
		deliveryTimeout: deliveryTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// ServeHTTP accepts the token in the "token" query parameter, browsers cannot
// set headers on a websocket handshake. A Bearer header works too.
func (h *SocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token, _ = auth.BearerToken(r.Header.Get("Authorization"))
	}
	claims, err := h.issuer.Validate(token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("Websocket upgrade failed", "error", err)
		return
	}

	conn := sink.NewConnectionSink(claims.Username, h.bufferSize, h.deliveryTimeout, h.log)
	h.log.Debug("Socket opened", "session", claims.Username, "connection_id", conn.ID)

	go h.writePump(ws, conn)
	h.readPump(r.Context(), ws, conn, claims.Username)
}

func (h *SocketHandler) readPump(ctx context.Context, ws *websocket.Conn, conn *sink.ConnectionSink, session string) {
	defer func() {
		// The hub ignores the leave when a newer connection replaced this one
		disconnectCtx, cancel := context.WithTimeout(context.Background(), disconnectWait)
		defer cancel()
		if err := h.dispatcher.Dispatch(disconnectCtx, runtime.DisconnectCommand{Conn: conn, Identity: session}); err != nil {
			h.log.Warn("Disconnect not dispatched", "session", session, "error", err)
		}
		conn.Close()
		_ = ws.Close()
	}()

	ws.SetReadLimit(maxFrameSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error { return ws.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("Socket read failed", "session", session, "error", err)
			}
			return
		}
		cmd, err := decode(conn, session, raw)
		if err != nil {
			h.reject(ctx, conn, err)
			continue
		}
		if err := h.dispatcher.Dispatch(ctx, cmd); err != nil {
			h.log.Warn("Command not dispatched", "session", session, "action", cmd.Action(), "error", err)
			return
		}
	}
}

// writePump is the only writer of the socket.
func (h *SocketHandler) writePump(ws *websocket.Conn, conn *sink.ConnectionSink) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = ws.Close()
	}()
	for {
		select {
		case evt := <-conn.Events():
			if err := h.write(ws, evt); err != nil {
				h.log.Debug("Socket write failed", "connection_id", conn.ID, "error", err)
				conn.Close()
				return
			}
		case <-conn.Done():
			// Flush what was queued before the close, sessionReplaced included
			h.drain(ws, conn)
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				conn.Close()
				return
			}
		}
	}
}

func (h *SocketHandler) drain(ws *websocket.Conn, conn *sink.ConnectionSink) {
	for {
		select {
		case evt := <-conn.Events():
			if err := h.write(ws, evt); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (h *SocketHandler) write(ws *websocket.Conn, evt event.DomainEvent) error {
	frame, err := encode(evt)
	if err != nil {
		h.log.Warn("Event not encoded", "event", evt.EventName(), "error", err)
		return nil
	}
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	return ws.WriteMessage(websocket.TextMessage, frame)
}

func (h *SocketHandler) reject(ctx context.Context, conn *sink.ConnectionSink, err error) {
	h.log.Debug("Frame rejected", "session", conn.Identity, "error", err)
	_ = conn.Consume(ctx, event.ActionRejected{Action: "decode", Reason: err.Error()})
}

// decode turns a client frame into a hub command on behalf of session.
func decode(conn *sink.ConnectionSink, session string, raw []byte) (runtime.Command, error) {
	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, errors.ErrMalformedFrame
	}
	switch envelope.Event {
	case "join":
		var data joinData
		if err := unmarshalData(envelope.Data, &data); err != nil {
			return nil, err
		}
		return runtime.JoinCommand{Conn: conn, Session: session, Identity: lo.CoalesceOrEmpty(data.Username, session)}, nil
	case "send":
		var data sendData
		if err := unmarshalData(envelope.Data, &data); err != nil {
			return nil, err
		}
		return runtime.SendCommand{Conn: conn, From: lo.CoalesceOrEmpty(data.From, session), To: data.To, Text: data.Text}, nil
	case "fileMessage":
		var data fileData
		if err := unmarshalData(envelope.Data, &data); err != nil {
			return nil, err
		}
		return runtime.FileMessageCommand{
			Conn:     conn,
			From:     lo.CoalesceOrEmpty(data.From, session),
			To:       data.To,
			FilePath: data.FilePath,
			Filename: data.Filename,
		}, nil
	case "seen":
		var data messageRef
		if err := unmarshalData(envelope.Data, &data); err != nil {
			return nil, err
		}
		return runtime.SeenCommand{Conn: conn, Identity: session, MessageID: data.ID}, nil
	case "delete":
		var data messageRef
		if err := unmarshalData(envelope.Data, &data); err != nil {
			return nil, err
		}
		return runtime.DeleteCommand{Conn: conn, Identity: session, MessageID: data.ID}, nil
	default:
		return nil, fmt.Errorf("%w: unknown event %q", errors.ErrMalformedFrame, envelope.Event)
	}
}

func unmarshalData(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.ErrMalformedFrame
	}
	return nil
}
