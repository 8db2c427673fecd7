package game

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOversizedPayloadGetsErrorReply(t *testing.T) {
	d := newTestDispatcher(t)
	c := NewClient("id-big")

	d.HandleRaw(c, bytes.Repeat([]byte("x"), d.limits.MaxMessageBytes+1))

	msg := firstOfType(t, drain(t, c), "error")
	assert.Equal(t, "Message too large", msg["message"])
}

func TestMalformedPayloadGetsErrorReply(t *testing.T) {
	d := newTestDispatcher(t)
	c := NewClient("id-bad")

	d.HandleRaw(c, []byte("{not json"))

	msg := firstOfType(t, drain(t, c), "error")
	assert.Equal(t, "Invalid JSON", msg["message"])
}

func TestMessagesBeforeJoinAreRefused(t *testing.T) {
	d := newTestDispatcher(t)
	c := NewClient("id-eager")

	send(t, d, c, map[string]any{"type": "chat", "text": "anyone here?"})

	msg := firstOfType(t, drain(t, c), "error")
	assert.Equal(t, "Join a room first", msg["message"])
}

func TestSecondJoinIsRefused(t *testing.T) {
	d := newTestDispatcher(t)

	c := joinRoom(t, d, "JN01", "alice")
	drain(t, c)

	send(t, d, c, map[string]any{"type": "join", "room": "JN02", "name": "alice"})

	msg := firstOfType(t, drain(t, c), "error")
	assert.Equal(t, "Already in a room", msg["message"])
	assert.Equal(t, "JN01", c.room.code)
	assert.Equal(t, 1, d.reg.Count())
}

func TestJoinWithoutRoomCodeGeneratesOne(t *testing.T) {
	d := newTestDispatcher(t)
	c := NewClient("id-auto")

	send(t, d, c, map[string]any{"type": "join", "name": "alice"})

	require.NotNil(t, c.room)
	joined := firstOfType(t, drain(t, c), "joined")
	code, ok := joined["room"].(string)
	require.True(t, ok)
	assert.Len(t, code, 4)
	assert.Equal(t, strings.ToUpper(code), code)
}

func TestFirstJoinerWaitsSecondJoinerStartsRound(t *testing.T) {
	d := newTestDispatcher(t)

	c1 := joinRoom(t, d, "ABCD", "alice")
	m1 := drain(t, c1)
	assert.True(t, hasType(m1, "joined"))
	assert.True(t, hasType(m1, "waiting"), "a lone client waits for an opponent")
	assert.False(t, hasType(m1, "role"))

	c2 := joinRoom(t, d, "abcd", "bob")
	require.Same(t, c1.room, c2.room, "room codes are case-insensitive")

	m1 = drain(t, c1)
	m2 := drain(t, c2)
	role1 := firstOfType(t, m1, "role")
	role2 := firstOfType(t, m2, "role")
	assert.Equal(t, "drawer", role1["role"])
	assert.Equal(t, "guesser", role2["role"])
	assert.Equal(t, "alice", role1["drawerName"])

	secret := firstOfType(t, m1, "secret_word")
	assert.Equal(t, c1.room.currentWord, secret["word"])
	assert.False(t, hasType(m2, "secret_word"), "the word is private to the drawer")
}

func TestChoiceModeBlocksDrawingUntilPick(t *testing.T) {
	d := newTestDispatcher(t)

	c1 := joinRoom(t, d, "CH01", "alice")
	send(t, d, c1, map[string]any{"type": "admin", "action": "mode", "mode": "choice"})
	c2 := joinRoom(t, d, "CH01", "bob")
	room := c1.room

	m1 := drain(t, c1)
	drain(t, c2)
	opts := firstOfType(t, m1, "word_options")
	options, ok := opts["options"].([]any)
	require.True(t, ok)
	require.Len(t, options, 3)
	seen := map[any]bool{}
	for _, o := range options {
		assert.False(t, seen[o], "options must be distinct")
		seen[o] = true
		assert.True(t, room.vocab.Contains(o.(string)))
	}

	send(t, d, c1, map[string]any{"type": "draw", "x": 1.0, "y": 2.0, "drag": false})
	assert.False(t, hasType(drain(t, c2), "draw"), "drawing is blocked until a word is picked")

	send(t, d, c1, map[string]any{"type": "pick_word", "word": "no-such-word"})
	assert.Empty(t, room.currentWord)
	assert.False(t, hasType(drain(t, c1), "secret_word"))

	pick := options[0].(string)
	send(t, d, c1, map[string]any{"type": "pick_word", "word": strings.ToUpper(pick)})
	assert.Equal(t, pick, room.currentWord, "picks are lower-cased vocabulary members")
	secret := firstOfType(t, drain(t, c1), "secret_word")
	assert.Equal(t, pick, secret["word"])

	send(t, d, c1, map[string]any{"type": "draw", "x": 1.0, "y": 2.0, "drag": true})
	stroke := firstOfType(t, drain(t, c2), "draw")
	assert.Equal(t, 1.0, stroke["x"])
	assert.Equal(t, 2.0, stroke["y"])
	assert.Equal(t, true, stroke["drag"])
	assert.False(t, hasType(drain(t, c1), "draw"), "strokes are not echoed to the drawer")
}

func TestCorrectGuessRotatesDrawerAndClearsCanvas(t *testing.T) {
	d := newTestDispatcher(t)

	c1 := joinRoom(t, d, "GS01", "alice")
	c2 := joinRoom(t, d, "GS01", "bob")
	room := c1.room

	word := firstOfType(t, drain(t, c1), "secret_word")["word"].(string)
	drain(t, c2)

	send(t, d, c2, map[string]any{"type": "guess", "text": strings.ToUpper(word)})

	m1 := drain(t, c1)
	m2 := drain(t, c2)
	for _, msgs := range [][]map[string]any{m1, m2} {
		correct := firstOfType(t, msgs, "correct")
		assert.Equal(t, "bob", correct["player"])
		assert.Equal(t, word, correct["word"])
		assert.True(t, hasType(msgs, "clear"))
	}

	assert.True(t, c2.drawer, "drawer role rotates to the guesser")
	assert.False(t, c1.drawer)
	newSecret := firstOfType(t, m2, "secret_word")
	assert.Equal(t, room.currentWord, newSecret["word"])
	assert.NotEmpty(t, room.currentWord, "a fresh round starts immediately")
	assert.Equal(t, "guesser", firstOfType(t, m1, "role")["role"])
}

func TestWrongGuessGetsFeedbackAndIsRelayed(t *testing.T) {
	d := newTestDispatcher(t)

	c1 := joinRoom(t, d, "GS02", "alice")
	c2 := joinRoom(t, d, "GS02", "bob")
	room := c1.room
	room.currentWord = "elephant"
	drain(t, c1)
	drain(t, c2)

	send(t, d, c2, map[string]any{"type": "guess", "text": "submarine"})
	m2 := drain(t, c2)
	assert.Equal(t, "incorrect", firstOfType(t, m2, "feedback")["result"])
	chat := firstOfType(t, drain(t, c1), "chat")
	assert.Equal(t, "bob", chat["from"])
	assert.Equal(t, "guesses: submarine", chat["text"])

	// Near miss earns a close hint instead.
	send(t, d, c2, map[string]any{"type": "guess", "text": "elephants"})
	assert.Equal(t, "close", firstOfType(t, drain(t, c2), "feedback")["result"])
	assert.True(t, c2.drawer == false && room.currentWord == "elephant", "wrong guesses change nothing")
}

func TestDrawerCannotGuess(t *testing.T) {
	d := newTestDispatcher(t)

	c1 := joinRoom(t, d, "GS03", "alice")
	c2 := joinRoom(t, d, "GS03", "bob")
	drain(t, c1)
	drain(t, c2)

	send(t, d, c1, map[string]any{"type": "guess", "text": c1.room.currentWord})

	notice := firstOfType(t, drain(t, c1), "system")
	assert.Equal(t, "Drawer cannot guess.", notice["text"])
	assert.False(t, hasType(drain(t, c2), "correct"))
}

func TestDrawerDisconnectRestartsRound(t *testing.T) {
	d := newTestDispatcher(t)

	c1 := joinRoom(t, d, "DC01", "alice")
	c2 := joinRoom(t, d, "DC01", "bob")
	c3 := joinRoom(t, d, "DC01", "carol")
	room := c1.room
	require.True(t, c1.drawer)
	drain(t, c2)
	drain(t, c3)

	d.Disconnect(c1)

	require.Len(t, room.clients, 2)
	assert.Equal(t, 1, drawerCount(room))
	assert.NotEmpty(t, room.currentWord, "a new round starts with a fresh word")

	for _, c := range []*Client{c2, c3} {
		msgs := drain(t, c)
		assert.True(t, hasType(msgs, "clear"), "%s should see the canvas wiped", c.Name)
		assert.True(t, hasType(msgs, "role"))
		assert.True(t, hasType(msgs, "players"))
		left := firstOfType(t, msgs, "system")
		assert.Contains(t, left["text"], "left.")
	}
}

func TestKickRemovesClientAndNotifiesIt(t *testing.T) {
	d := newTestDispatcher(t)

	c1 := joinRoom(t, d, "KK01", "alice")
	c2 := joinRoom(t, d, "KK01", "bob")
	c3 := joinRoom(t, d, "KK01", "carol")
	room := c1.room
	drain(t, c3)

	send(t, d, c1, map[string]any{"type": "admin", "action": "kick", "name": "carol"})

	assert.NotContains(t, room.clients, c3)
	notice := firstOfType(t, drain(t, c3), "system")
	assert.Equal(t, "You were kicked by admin.", notice["text"])
	select {
	case <-c3.Done():
	default:
		t.Fatal("kicked client must be closed")
	}

	// A stale message from the kicked connection is ignored.
	send(t, d, c3, map[string]any{"type": "chat", "text": "still here?"})
	assert.False(t, hasType(drain(t, c2), "chat"))
}

func TestKickedAdminPassesAdminToNextOldest(t *testing.T) {
	d := newTestDispatcher(t)

	c1 := joinRoom(t, d, "KK02", "alice")
	c2 := joinRoom(t, d, "KK02", "bob")
	c3 := joinRoom(t, d, "KK02", "carol")

	// Admin removes themselves; the next-oldest survivor takes over.
	send(t, d, c1, map[string]any{"type": "admin", "action": "kick", "name": "alice"})

	room := c2.room
	assert.NotContains(t, room.clients, c1)
	assert.True(t, c2.admin)
	assert.False(t, c3.admin)
	assert.Equal(t, 1, adminCount(room))
}

func TestNonDrawerStrokesAreDropped(t *testing.T) {
	d := newTestDispatcher(t)

	c1 := joinRoom(t, d, "DW01", "alice")
	c2 := joinRoom(t, d, "DW01", "bob")
	drain(t, c1)

	send(t, d, c2, map[string]any{"type": "draw", "x": 3.0, "y": 4.0})

	assert.False(t, hasType(drain(t, c1), "draw"))
}

func TestClearRequiresDrawer(t *testing.T) {
	d := newTestDispatcher(t)

	c1 := joinRoom(t, d, "CL01", "alice")
	c2 := joinRoom(t, d, "CL01", "bob")
	drain(t, c1)
	drain(t, c2)

	send(t, d, c2, map[string]any{"type": "clear"})
	assert.False(t, hasType(drain(t, c1), "clear"))

	send(t, d, c1, map[string]any{"type": "clear"})
	assert.True(t, hasType(drain(t, c2), "clear"))
}
