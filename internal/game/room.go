package game

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/sketchwire/server/internal/proto"
	"github.com/sketchwire/server/internal/words"
)

// Mode selects how the secret word is assigned each round.
type Mode string

const (
	// ModeRandom assigns a uniform random word to the drawer.
	ModeRandom Mode = "random"
	// ModeChoice offers the drawer a sample of words to pick from; drawing
	// is blocked until the pick lands.
	ModeChoice Mode = "choice"
)

// maxNameLen clamps requested display names.
const maxNameLen = 24

// Room is the authoritative state of one game session. Every mutating
// operation runs under mu; methods below assume the caller holds it unless
// noted. Clients found dead during a broadcast are collected on the dead
// list and reaped by settle after the triggering operation finishes, never
// mid-iteration.
type Room struct {
	mu          sync.Mutex
	code        string
	clients     []*Client
	drawerIndex int
	currentWord string
	mode        Mode
	locked      bool

	// closed marks a room that was removed from the registry; a joiner that
	// raced the removal must retry its lookup instead of reviving it.
	closed bool
	dead   []*Client

	vocab       *words.Vocabulary
	optionCount int
}

func newRoom(code string, vocab *words.Vocabulary, optionCount int) *Room {
	return &Room{
		code:        code,
		mode:        ModeRandom,
		vocab:       vocab,
		optionCount: optionCount,
	}
}

// broadcast serializes v once and queues it to a snapshot of the current
// members, skipping exclude. Members whose delivery fails are marked dead
// for the post-pass; the list is never mutated here.
func (r *Room) broadcast(v any, exclude *Client) {
	frame, err := json.Marshal(v)
	if err != nil {
		return
	}
	for _, c := range slices.Clone(r.clients) {
		if c == exclude {
			continue
		}
		if !c.push(frame) {
			r.markDead(c)
		}
	}
}

// unicast delivers v to a single member, with the same failure handling as
// broadcast.
func (r *Room) unicast(c *Client, v any) {
	frame, err := json.Marshal(v)
	if err != nil {
		return
	}
	if !c.push(frame) {
		r.markDead(c)
	}
}

func (r *Room) markDead(c *Client) {
	if !slices.Contains(r.dead, c) {
		r.dead = append(r.dead, c)
	}
}

// ensureAdmin enforces the single-admin invariant: in a non-empty room the
// earliest-joined client becomes admin when none is, and any surplus admins
// past the first are demoted.
func (r *Room) ensureAdmin() {
	if len(r.clients) == 0 {
		return
	}
	if !slices.ContainsFunc(r.clients, func(c *Client) bool { return c.admin }) {
		r.clients[0].admin = true
	}
	seen := false
	for _, c := range r.clients {
		if c.admin && !seen {
			seen = true
			continue
		}
		c.admin = false
	}
}

// uniqueName returns desired if unused in the room, otherwise the first
// "desired (n)" variant, n counting up from 2, that no member carries.
func (r *Room) uniqueName(desired string) string {
	taken := func(name string) bool {
		return slices.ContainsFunc(r.clients, func(c *Client) bool { return c.Name == name })
	}
	if !taken(desired) {
		return desired
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", desired, n)
		if !taken(candidate) {
			return candidate
		}
	}
}

// sanitizeName trims and clamps a requested display name, substituting a
// placeholder for empty input.
func sanitizeName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "Player"
	}
	if runes := []rune(name); len(runes) > maxNameLen {
		name = string(runes[:maxNameLen])
	}
	return name
}

// sendPlayers broadcasts the current roster to everyone.
func (r *Room) sendPlayers() {
	infos := make([]proto.PlayerInfo, 0, len(r.clients))
	for _, c := range r.clients {
		infos = append(infos, proto.PlayerInfo{Name: c.Name, Drawer: c.drawer, Admin: c.admin})
	}
	r.broadcast(proto.NewPlayers(infos), nil)
}

// sendSettings delivers the room settings to one member, or to everyone
// when to is nil.
func (r *Room) sendSettings(to *Client) {
	msg := proto.NewRoomSettings(string(r.mode), r.locked)
	if to != nil {
		r.unicast(to, msg)
		return
	}
	r.broadcast(msg, nil)
}

// startRound enters a new round. With fewer than two members the room goes
// back to waiting: drawer flags are cleared and everyone is told. Otherwise
// the drawer at drawerIndex (mod member count) is marked, every member gets
// its role, and the word is assigned according to the mode: random draws
// and privately reveals one immediately; choice privately offers a sample
// and leaves the word empty until the drawer picks.
func (r *Room) startRound() {
	if len(r.clients) < 2 {
		r.currentWord = ""
		for _, c := range r.clients {
			c.drawer = false
		}
		r.broadcast(proto.NewWaiting(), nil)
		return
	}

	r.drawerIndex %= len(r.clients)
	for i, c := range r.clients {
		c.drawer = i == r.drawerIndex
	}
	drawer := r.clients[r.drawerIndex]

	for _, c := range r.clients {
		role := proto.RoleGuesser
		if c.drawer {
			role = proto.RoleDrawer
		}
		r.unicast(c, proto.NewRole(role, drawer.Name))
	}

	r.currentWord = ""
	if r.mode == ModeRandom {
		r.currentWord = r.vocab.Pick()
		r.unicast(drawer, proto.NewSecretWord(r.currentWord))
	} else {
		r.unicast(drawer, proto.NewWordOptions(r.vocab.Sample(r.optionCount)))
		r.unicast(drawer, proto.NewSystem("Choose a word from the options above before drawing."))
	}

	r.sendPlayers()
	r.sendSettings(nil)
}

// advanceAfterCorrect rotates the drawer role after a correct guess and
// enters the next round. The correct event itself is broadcast by the
// caller before rotation.
func (r *Room) advanceAfterCorrect() {
	if len(r.clients) < 2 {
		return
	}
	r.drawerIndex = (r.drawerIndex + 1) % len(r.clients)
	r.currentWord = ""
	r.broadcast(proto.NewClear(), nil)
	r.startRound()
}

// restartRound aborts whatever round is in flight (admin mode change) and
// starts over: the word is discarded and canvases cleared first.
func (r *Room) restartRound() {
	r.currentWord = ""
	r.broadcast(proto.NewClear(), nil)
	r.startRound()
}

// removeClient takes c out of the room and repairs every invariant that may
// have depended on it: admin assignment, drawer index bounds, and the round
// itself when the drawer left or the room fell below two members. A no-op
// when c is not a member, which makes disconnect cleanup idempotent with
// kicks.
func (r *Room) removeClient(c *Client) {
	idx := slices.Index(r.clients, c)
	if idx < 0 {
		return
	}
	wasDrawer := c.drawer
	r.clients = slices.Delete(r.clients, idx, idx+1)
	c.Close()

	r.ensureAdmin()

	if len(r.clients) == 0 {
		return
	}

	switch {
	case wasDrawer:
		r.currentWord = ""
		r.broadcast(proto.NewClear(), nil)
		r.drawerIndex %= len(r.clients)
		r.startRound()
	case len(r.clients) < 2:
		r.startRound()
	case idx < r.drawerIndex || r.drawerIndex >= len(r.clients):
		r.drawerIndex %= len(r.clients)
	}

	r.broadcast(proto.NewSystem(c.Name+" left."), nil)
	r.sendPlayers()
}

// settle reaps members whose delivery failed during the preceding operation
// (their removal can mark further members dead, hence the loop) and, once
// the room is empty, closes it and removes it from the registry.
func (r *Room) settle(reg *Registry) {
	for len(r.dead) > 0 {
		c := r.dead[0]
		r.dead = r.dead[1:]
		r.removeClient(c)
	}
	if len(r.clients) == 0 && !r.closed {
		r.closed = true
		reg.remove(r.code, r)
	}
}
