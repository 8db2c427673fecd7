// Command ws_smoke is a manual client for poking a running server: it joins
// a room, optionally chats and guesses, and prints everything the server
// sends back.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/sketchwire/server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	room := flag.String("room", "", "room code (empty lets the server pick one)")
	name := flag.String("name", "smoke", "display name")
	chat := flag.String("chat", "hello from smoke test", "chat text to send after joining")
	guess := flag.String("guess", "", "optional guess to submit")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(v any) error {
		if err := wsjson.Write(ctx, conn, v); err != nil {
			return fmt.Errorf("send: %w", err)
		}
		return nil
	}

	if err := send(proto.Inbound{Type: proto.InboundTypeJoin, Room: *room, Name: *name}); err != nil {
		return err
	}
	if *chat != "" {
		if err := send(proto.Inbound{Type: proto.InboundTypeChat, Text: *chat}); err != nil {
			return err
		}
	}
	if *guess != "" {
		if err := send(proto.Inbound{Type: proto.InboundTypeGuess, Text: *guess}); err != nil {
			return err
		}
	}

	for {
		var event map[string]any
		if err := wsjson.Read(ctx, conn, &event); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		fmt.Printf("<- %v\n", event)
	}
}
