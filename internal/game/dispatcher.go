package game

import (
	"encoding/json"
	"slices"
	"strings"
	"time"

	goaway "github.com/TwiN/go-away"
	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog"

	"github.com/sketchwire/server/internal/proto"
)

// maxChatLen clamps chat and relayed guess text.
const maxChatLen = 200

// closeGuessDistance is the Levenshtein distance up to which a wrong guess
// still earns a "close" hint instead of "incorrect".
const closeGuessDistance = 2

// Limits are the dispatcher's flow-control ceilings.
type Limits struct {
	MaxMessageBytes int
	DrawPerSecond   int
	GuessPerSecond  int
}

// Dispatcher validates inbound records and applies them to room state. Each
// connection task calls it sequentially for its own client; all room
// mutation happens under the room's lock, so two clients of the same room
// never interleave inside an operation.
type Dispatcher struct {
	reg       *Registry
	limits    Limits
	profanity *goaway.ProfanityDetector
	log       *zerolog.Logger
}

// NewDispatcher builds a dispatcher over the given registry.
func NewDispatcher(reg *Registry, limits Limits, logger *zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		reg:       reg,
		limits:    limits,
		profanity: goaway.NewProfanityDetector(),
		log:       logger,
	}
}

// HandleRaw processes one inbound unit from c's connection. Oversized and
// malformed payloads are answered with an error record; the connection is
// never failed from here.
func (d *Dispatcher) HandleRaw(c *Client, raw []byte) {
	if d.limits.MaxMessageBytes > 0 && len(raw) > d.limits.MaxMessageBytes {
		d.sendTo(c, proto.NewError("Message too large"))
		return
	}
	var in proto.Inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		d.sendTo(c, proto.NewError("Invalid JSON"))
		return
	}

	if in.Type == proto.InboundTypeJoin {
		d.handleJoin(c, in)
		return
	}
	if c.room == nil {
		d.sendTo(c, proto.NewError("Join a room first"))
		return
	}

	room := c.room
	room.mu.Lock()
	defer room.mu.Unlock()

	// A kicked client's connection may still be flushing messages; once it
	// is no longer a member there is nothing to apply them to.
	if !slices.Contains(room.clients, c) {
		return
	}

	switch in.Type {
	case proto.InboundTypeDraw:
		d.handleDraw(room, c, in)
	case proto.InboundTypeClear:
		if c.drawer {
			room.broadcast(proto.NewClear(), nil)
		}
	case proto.InboundTypeChat:
		d.handleChat(room, c, in)
	case proto.InboundTypeGuess:
		d.handleGuess(room, c, in)
	case proto.InboundTypePickWord:
		d.handlePickWord(room, c, in)
	case proto.InboundTypeAdmin:
		d.handleAdmin(room, c, in)
	default:
		d.log.Debug().Str("type", in.Type).Str("client_id", c.ID).Msg("unknown message type dropped")
	}

	room.settle(d.reg)
}

// handleJoin admits c into the requested room, generating a code when none
// was supplied. The get-or-create is retried if the room was concurrently
// emptied and removed.
func (d *Dispatcher) handleJoin(c *Client, in proto.Inbound) {
	if c.room != nil {
		d.sendTo(c, proto.NewError("Already in a room"))
		return
	}

	code := strings.ToUpper(strings.TrimSpace(in.Room))
	if code == "" {
		code = NewRoomCode()
	}

	for {
		room := d.reg.GetOrCreate(code)
		room.mu.Lock()
		if room.closed {
			room.mu.Unlock()
			continue
		}

		if room.locked {
			room.mu.Unlock()
			d.sendTo(c, proto.NewError("Room is locked by admin"))
			return
		}

		name := room.uniqueName(sanitizeName(d.profanity.Censor(in.Name)))
		c.Name = name
		c.room = room
		room.clients = append(room.clients, c)
		room.ensureAdmin()

		room.unicast(c, proto.NewJoined(code, name))
		room.sendSettings(c)
		room.broadcast(proto.NewSystem(name+" joined."), nil)
		room.startRound()

		room.settle(d.reg)
		room.mu.Unlock()

		d.log.Info().Str("room", code).Str("client_id", c.ID).Str("name", name).Msg("client joined")
		return
	}
}

func (d *Dispatcher) handleDraw(room *Room, c *Client, in proto.Inbound) {
	if !c.drawer {
		return
	}
	if room.mode == ModeChoice && room.currentWord == "" {
		return
	}
	if !c.limiter.allow(actionDraw, time.Now(), d.limits.DrawPerSecond) {
		return
	}
	if in.X == nil || in.Y == nil {
		return
	}
	room.broadcast(proto.Draw{
		Type:  proto.TypeDraw,
		X:     *in.X,
		Y:     *in.Y,
		Drag:  in.Drag,
		Color: in.Color,
		Size:  in.Size,
		Erase: in.Erase,
	}, c)
}

func (d *Dispatcher) handleChat(room *Room, c *Client, in proto.Inbound) {
	text := clampText(in.Text)
	if text == "" {
		return
	}
	room.broadcast(proto.NewChat(c.Name, d.profanity.Censor(text)), nil)
}

func (d *Dispatcher) handleGuess(room *Room, c *Client, in proto.Inbound) {
	if c.drawer {
		room.unicast(c, proto.NewSystem("Drawer cannot guess."))
		return
	}
	if !c.limiter.allow(actionGuess, time.Now(), d.limits.GuessPerSecond) {
		return
	}
	guess := strings.TrimSpace(clampText(in.Text))
	if guess == "" {
		return
	}

	room.broadcast(proto.NewChat(c.Name, "guesses: "+d.profanity.Censor(guess)), nil)

	if room.currentWord != "" && strings.EqualFold(guess, room.currentWord) {
		room.broadcast(proto.NewCorrect(c.Name, room.currentWord), nil)
		d.log.Info().Str("room", room.code).Str("name", c.Name).Str("word", room.currentWord).Msg("correct guess")
		room.advanceAfterCorrect()
		return
	}

	result := proto.FeedbackIncorrect
	if room.currentWord != "" &&
		levenshtein.ComputeDistance(strings.ToLower(guess), strings.ToLower(room.currentWord)) <= closeGuessDistance {
		result = proto.FeedbackClose
	}
	room.unicast(c, proto.NewFeedback(result))
}

func (d *Dispatcher) handlePickWord(room *Room, c *Client, in proto.Inbound) {
	if !c.drawer || room.mode != ModeChoice || room.currentWord != "" {
		return
	}
	word := strings.ToLower(strings.TrimSpace(in.Word))
	if word == "" || !room.vocab.Contains(word) {
		return
	}
	room.currentWord = word
	room.unicast(c, proto.NewSecretWord(word))
}

func (d *Dispatcher) handleAdmin(room *Room, c *Client, in proto.Inbound) {
	if !c.admin {
		room.unicast(c, proto.NewError("Admin only"))
		return
	}

	switch in.Action {
	case proto.AdminActionLock:
		room.locked = true
		room.sendSettings(nil)
	case proto.AdminActionUnlock:
		room.locked = false
		room.sendSettings(nil)
	case proto.AdminActionMode:
		mode := Mode(strings.ToLower(in.Mode))
		if mode != ModeRandom && mode != ModeChoice {
			return
		}
		room.mode = mode
		room.sendSettings(nil)
		room.restartRound()
	case proto.AdminActionKick:
		target := room.findByName(in.Name)
		if target == nil {
			return
		}
		room.unicast(target, proto.NewSystem("You were kicked by admin."))
		d.log.Info().Str("room", room.code).Str("name", target.Name).Msg("client kicked")
		room.removeClient(target)
	case proto.AdminActionMakeAdmin:
		target := room.findByName(in.Name)
		if target == nil {
			return
		}
		for _, cl := range room.clients {
			cl.admin = cl == target
		}
		room.broadcast(proto.NewSystem(target.Name+" is now admin."), nil)
		room.sendPlayers()
	case proto.AdminActionRevokeAdmin:
		target := room.findByName(in.Name)
		if target == nil || !target.admin {
			return
		}
		target.admin = false
		room.ensureAdmin()
		room.sendPlayers()
	default:
		d.log.Debug().Str("action", in.Action).Str("room", room.code).Msg("unknown admin action dropped")
	}
}

// Disconnect runs the cleanup path for a connection that ended, whatever
// the cause. Safe to call for clients that were already kicked.
func (d *Dispatcher) Disconnect(c *Client) {
	room := c.room
	if room == nil {
		c.Close()
		return
	}
	room.mu.Lock()
	room.removeClient(c)
	room.settle(d.reg)
	room.mu.Unlock()
	c.Close()
	d.log.Info().Str("room", room.code).Str("client_id", c.ID).Str("name", c.Name).Msg("client disconnected")
}

// findByName resolves an admin action target. Callers hold the room lock.
func (r *Room) findByName(name string) *Client {
	name = strings.TrimSpace(name)
	for _, c := range r.clients {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func clampText(s string) string {
	if runes := []rune(s); len(runes) > maxChatLen {
		return string(runes[:maxChatLen])
	}
	return s
}

func (d *Dispatcher) sendTo(c *Client, v any) {
	frame, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.push(frame)
}
