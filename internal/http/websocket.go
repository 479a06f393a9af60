package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"showroom/internal/core"
	"showroom/internal/log"
)

const (
	wsReadLimit  = 4096
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

// Frame types a chat client may send.
const (
	frameMessage     = "message"
	frameQuickAction = "quick_action"
)

type chatFrame struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	ID      string `json:"id,omitempty"`
}

type chatReply struct {
	Messages []core.ChatMessage `json:"messages,omitempty"`
	Error    string             `json:"error,omitempty"`
}

var errUnknownFrame = fmt.Errorf("%w: unknown frame type", errBadRequest)

// handleChatSocket runs the receptionist over a websocket. The history is
// sent on connect; each client frame gets one reply frame.
func (s *Server) handleChatSocket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx)
	visitor := visitorID(ctx)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WarnContext(ctx, "Websocket upgrade failed", log.FieldError, err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
					return
				}
			}
		}
	}()

	send := func(reply chatReply) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(reply)
	}

	history, err := s.receptionist.History(ctx, visitor)
	if err != nil {
		logger.ErrorContext(ctx, "Load chat history failed", log.FieldError, err)
		_ = send(chatReply{Error: "internal error"})
		return
	}
	if err := send(chatReply{Messages: history}); err != nil {
		return
	}
	logger.InfoContext(ctx, "Chat socket opened")

	for {
		var frame chatFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WarnContext(ctx, "Chat socket read failed", log.FieldError, err)
			}
			return
		}

		var msgs []core.ChatMessage
		switch frame.Type {
		case frameMessage:
			msgs, err = s.receptionist.Send(ctx, visitor, sanitizeInput(frame.Message))
		case frameQuickAction:
			msgs, err = s.receptionist.QuickAction(ctx, visitor, frame.ID)
		default:
			err = errUnknownFrame
		}

		reply := chatReply{Messages: msgs}
		if err != nil {
			if statusFor(err) == http.StatusInternalServerError {
				logger.ErrorContext(ctx, "Chat exchange failed", log.FieldError, err)
				reply.Error = "internal error"
			} else {
				reply.Error = err.Error()
			}
		}
		if err := send(reply); err != nil {
			return
		}
	}
}
