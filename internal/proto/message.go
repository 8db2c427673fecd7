// Package proto defines the wire protocol: flat JSON records exchanged over
// a websocket, one record per message, discriminated by a "type" field.
package proto

// Inbound message types.
const (
	InboundTypeJoin     = "join"
	InboundTypeDraw     = "draw"
	InboundTypeClear    = "clear"
	InboundTypeChat     = "chat"
	InboundTypeGuess    = "guess"
	InboundTypePickWord = "pick_word"
	InboundTypeAdmin    = "admin"
)

// Admin actions carried in Inbound.Action.
const (
	AdminActionLock        = "lock"
	AdminActionUnlock      = "unlock"
	AdminActionMode        = "mode"
	AdminActionKick        = "kick"
	AdminActionMakeAdmin   = "make_admin"
	AdminActionRevokeAdmin = "revoke_admin"
)

// Outbound message types.
const (
	TypeJoined       = "joined"
	TypeRoomSettings = "room_settings"
	TypePlayers      = "players"
	TypeRole         = "role"
	TypeSecretWord   = "secret_word"
	TypeWordOptions  = "word_options"
	TypeDraw         = "draw"
	TypeClear        = "clear"
	TypeChat         = "chat"
	TypeCorrect      = "correct"
	TypeFeedback     = "feedback"
	TypeSystem       = "system"
	TypeError        = "error"
	TypeWaiting      = "waiting"
)

// Roles carried in Role.Role.
const (
	RoleDrawer  = "drawer"
	RoleGuesser = "guesser"
)

// Inbound is a single client record. Every message arrives as one flat JSON
// object; which fields are meaningful depends on Type. Validation happens in
// the dispatcher, after which handlers never touch raw JSON again.
type Inbound struct {
	Type string `json:"type"`

	// join
	Room string `json:"room,omitempty"`
	// join (desired display name), admin kick/make_admin/revoke_admin (target)
	Name string `json:"name,omitempty"`

	// draw
	X     *float64 `json:"x,omitempty"`
	Y     *float64 `json:"y,omitempty"`
	Drag  bool     `json:"drag,omitempty"`
	Color string   `json:"color,omitempty"`
	Size  *float64 `json:"size,omitempty"`
	Erase bool     `json:"erase,omitempty"`

	// chat, guess
	Text string `json:"text,omitempty"`

	// pick_word
	Word string `json:"word,omitempty"`

	// admin
	Action string `json:"action,omitempty"`
	Mode   string `json:"mode,omitempty"`
}

type Joined struct {
	Type string `json:"type"`
	Room string `json:"room"`
	You  string `json:"you"`
}

func NewJoined(room, you string) Joined {
	return Joined{Type: TypeJoined, Room: room, You: you}
}

type RoomSettings struct {
	Type   string `json:"type"`
	Mode   string `json:"mode"`
	Locked bool   `json:"locked"`
}

func NewRoomSettings(mode string, locked bool) RoomSettings {
	return RoomSettings{Type: TypeRoomSettings, Mode: mode, Locked: locked}
}

// PlayerInfo is one entry of the players roster broadcast.
type PlayerInfo struct {
	Name   string `json:"name"`
	Drawer bool   `json:"drawer"`
	Admin  bool   `json:"admin"`
}

type Players struct {
	Type    string       `json:"type"`
	Players []PlayerInfo `json:"players"`
}

func NewPlayers(players []PlayerInfo) Players {
	return Players{Type: TypePlayers, Players: players}
}

type Role struct {
	Type       string `json:"type"`
	Role       string `json:"role"`
	DrawerName string `json:"drawerName"`
}

func NewRole(role, drawerName string) Role {
	return Role{Type: TypeRole, Role: role, DrawerName: drawerName}
}

type SecretWord struct {
	Type string `json:"type"`
	Word string `json:"word"`
}

func NewSecretWord(word string) SecretWord {
	return SecretWord{Type: TypeSecretWord, Word: word}
}

type WordOptions struct {
	Type    string   `json:"type"`
	Options []string `json:"options"`
}

func NewWordOptions(options []string) WordOptions {
	return WordOptions{Type: TypeWordOptions, Options: options}
}

type Draw struct {
	Type  string   `json:"type"`
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Drag  bool     `json:"drag"`
	Color string   `json:"color,omitempty"`
	Size  *float64 `json:"size,omitempty"`
	Erase bool     `json:"erase,omitempty"`
}

type Clear struct {
	Type string `json:"type"`
}

func NewClear() Clear {
	return Clear{Type: TypeClear}
}

type Chat struct {
	Type string `json:"type"`
	From string `json:"from"`
	Text string `json:"text"`
}

func NewChat(from, text string) Chat {
	return Chat{Type: TypeChat, From: from, Text: text}
}

type Correct struct {
	Type   string `json:"type"`
	Player string `json:"player"`
	Word   string `json:"word"`
}

func NewCorrect(player, word string) Correct {
	return Correct{Type: TypeCorrect, Player: player, Word: word}
}

// Feedback results for wrong guesses.
const (
	FeedbackIncorrect = "incorrect"
	FeedbackClose     = "close"
)

type Feedback struct {
	Type   string `json:"type"`
	Result string `json:"result"`
}

func NewFeedback(result string) Feedback {
	return Feedback{Type: TypeFeedback, Result: result}
}

type System struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func NewSystem(text string) System {
	return System{Type: TypeSystem, Text: text}
}

type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewError(message string) Error {
	return Error{Type: TypeError, Message: message}
}

type Waiting struct {
	Type string `json:"type"`
}

func NewWaiting() Waiting {
	return Waiting{Type: TypeWaiting}
}
