package domain

import (
	"github.com/samber/mo"
)

// User identifies a platform account. ID is stable across invocations and is what seeded features key on.
type User struct {
	ID          string
	Username    string
	DisplayName string
}

// Name returns the most human-friendly name available for the user.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}

	if u.Username != "" {
		return u.Username
	}

	return u.ID
}

type Platform string

const (
	Discord  Platform = "discord"
	Telegram Platform = "telegram"
	Console  Platform = "console"
)

// Target is where replies for an invocation go.
type Target struct {
	Platform  Platform
	ChannelID string
	GuildID   string
	MessageID int
	IsDM      bool
	// Handle carries the platform object needed to answer (e.g. a discord interaction).
	Handle any
}

// Invocation is a single user action delivered by a front end. It is consumed exactly once.
type Invocation struct {
	ID      string
	Command string
	// Raw is the untyped argument bag as delivered by the front end.
	Raw map[string]any
	// Args is populated by binding Raw against the command schema.
	Args    Args
	Invoker User
	Target  Target
}

// Field is a name/value pair shown alongside the reply body.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Reply is the platform independent message a command produces.
type Reply struct {
	Title    string
	Body     string
	ImageURL mo.Option[string]
	Fields   []Field
	URL      mo.Option[string]
	Color    int
	Footer   string
	// Ephemeral replies are only shown to the invoker where the platform supports it.
	Ephemeral bool
}

// TextReply builds a reply carrying only body text.
func TextReply(text string) Reply {
	return Reply{Body: text}
}

const (
	// MessageLimit is the platform message size ceiling.
	MessageLimit = 2000
	// PageBudget leaves room below MessageLimit for navigation hints.
	PageBudget = 1800
)

const (
	ColorGreen  = 0x1f8b4c
	ColorBlue   = 0x3498db
	ColorRed    = 0xe74c3c
	ColorGold   = 0xf1c40f
	ColorPurple = 0x9b59b6
	ColorCyan   = 0x00ffcc
	ColorGrey   = 0x95a5a6
)
