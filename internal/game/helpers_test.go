package game

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sketchwire/server/internal/words"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	logger := zerolog.Nop()
	return NewDispatcher(NewRegistry(words.Default(), 3), Limits{
		MaxMessageBytes: 16384,
		DrawPerSecond:   120,
		GuessPerSecond:  8,
	}, &logger)
}

func send(t *testing.T, d *Dispatcher, c *Client, msg map[string]any) {
	t.Helper()
	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	d.HandleRaw(c, raw)
}

// joinRoom joins a fresh client into room code and discards the join-time
// frames so tests start from a clean queue.
func joinRoom(t *testing.T, d *Dispatcher, code, name string) *Client {
	t.Helper()
	c := NewClient("id-" + name)
	send(t, d, c, map[string]any{"type": "join", "room": code, "name": name})
	require.NotNil(t, c.room, "join was rejected for %s", name)
	return c
}

// drain decodes every frame queued on c without blocking.
func drain(t *testing.T, c *Client) []map[string]any {
	t.Helper()
	var out []map[string]any
	for {
		select {
		case frame := <-c.frames:
			var m map[string]any
			require.NoError(t, json.Unmarshal(frame, &m))
			out = append(out, m)
		default:
			return out
		}
	}
}

func ofType(msgs []map[string]any, typ string) []map[string]any {
	var out []map[string]any
	for _, m := range msgs {
		if m["type"] == typ {
			out = append(out, m)
		}
	}
	return out
}

func hasType(msgs []map[string]any, typ string) bool {
	return len(ofType(msgs, typ)) > 0
}

func firstOfType(t *testing.T, msgs []map[string]any, typ string) map[string]any {
	t.Helper()
	found := ofType(msgs, typ)
	require.NotEmpty(t, found, "expected a %q message, got %v", typ, msgs)
	return found[0]
}
