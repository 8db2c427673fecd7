package game

import (
	"crypto/rand"
	"encoding/hex"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/sketchwire/server/internal/words"
)

// shardCount spreads room lookups so unrelated rooms never contend on one
// lock. Must be a power of two.
const shardCount = 32

// Registry is the process-wide room-code -> room map. Lookup and creation
// are the same operation; a room is removed eagerly the moment its member
// list drains, so the registry size tracks the live-room count exactly.
type Registry struct {
	vocab       *words.Vocabulary
	optionCount int
	shards      [shardCount]registryShard
}

type registryShard struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRegistry builds a registry whose rooms draw words from vocab and offer
// optionCount choices in choice mode.
func NewRegistry(vocab *words.Vocabulary, optionCount int) *Registry {
	r := &Registry{vocab: vocab, optionCount: optionCount}
	for i := range r.shards {
		r.shards[i].rooms = make(map[string]*Room)
	}
	return r
}

func (reg *Registry) shard(code string) *registryShard {
	h := fnv.New32a()
	h.Write([]byte(code))
	return &reg.shards[h.Sum32()&(shardCount-1)]
}

// GetOrCreate returns the room for code, creating it on first reference.
// Callers must check Room.closed under the room lock and retry when a
// removal won the race.
func (reg *Registry) GetOrCreate(code string) *Room {
	s := reg.shard(code)
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[code]
	if !ok {
		room = newRoom(code, reg.vocab, reg.optionCount)
		s.rooms[code] = room
	}
	return room
}

// remove drops room from the registry, but only while it is still the entry
// registered under code; a successor room created after an earlier removal
// is left alone.
func (reg *Registry) remove(code string, room *Room) {
	s := reg.shard(code)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rooms[code] == room {
		delete(s.rooms, code)
	}
}

// Count returns the number of active rooms.
func (reg *Registry) Count() int {
	total := 0
	for i := range reg.shards {
		s := &reg.shards[i]
		s.mu.Lock()
		total += len(s.rooms)
		s.mu.Unlock()
	}
	return total
}

// NewRoomCode returns a short random room code: four uppercase hex
// characters, the same shape a joiner would type in.
func NewRoomCode() string {
	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		return "ROOM"
	}
	return strings.ToUpper(hex.EncodeToString(buf))
}
