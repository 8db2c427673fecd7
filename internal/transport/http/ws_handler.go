package http

import (
	"context"
	"errors"
	"io"
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sketchwire/server/internal/game"
)

// WSHandler upgrades HTTP connections and bridges them to game.Client.
type WSHandler struct {
	dispatcher *game.Dispatcher
	maxBytes   int
	log        *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(dispatcher *game.Dispatcher, maxBytes int, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{dispatcher: dispatcher, maxBytes: maxBytes, log: logger}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	// Twice the protocol ceiling: an oversized record must still be
	// readable so the dispatcher can answer it with an error instead of
	// the connection dying.
	conn.SetReadLimit(int64(h.maxBytes) * 2)

	client := game.NewClient(uuid.NewString())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	h.dispatcher.Disconnect(client)

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Str("client_id", client.ID).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *game.Client) error {
	for {
		// Frame type is irrelevant; every frame carries one JSON record.
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		h.dispatcher.HandleRaw(client, data)
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *game.Client) error {
	for {
		select {
		case frame := <-client.Frames():
			if err := conn.Write(ctx, websocket.MessageText, frame); err != nil {
				h.log.Error().Err(err).Str("client_id", client.ID).Msg("write ws frame")
				return err
			}
		case <-client.Done():
			// Kicked: flush what is already queued (the kick notice in
			// particular) before the connection goes away.
			h.flush(ctx, conn, client)
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (h *WSHandler) flush(ctx context.Context, conn *websocket.Conn, client *game.Client) {
	for {
		select {
		case frame := <-client.Frames():
			if err := conn.Write(ctx, websocket.MessageText, frame); err != nil {
				return
			}
		default:
			return
		}
	}
}
