// Package bot provides the chat transport for banterbot.
//
// The package defines a small adapter interface between the dispatch engine
// and the chat platform. The engine never talks to the platform SDK directly:
// it receives Message values through a callback and replies through
// PostMessage. This keeps the engine testable with a recording fake and keeps
// platform wire formats out of the core.
package bot

// Message represents one inbound chat event.
//
// The engine only dispatches messages where Type == "message", SubType is not
// "bot_message", and Text is non-empty; everything else is dropped at the
// gate. Fields are read-only to the core.
type Message struct {
	Type      string // event kind, "message" for chat messages
	SubType   string // "bot_message" when the sender is a bot
	Text      string // raw message text, may be empty for non-text events
	Channel   string // channel ID the message was posted in
	User      string // user ID of the sender
	Timestamp string // platform event timestamp
}

// PostOptions carries optional display overrides for an outbound message.
type PostOptions struct {
	Username    string // override the bot display name
	IconEmoji   string // override the bot display icon
	Attachments []Attachment
}

// Attachment is a structured rich-content block attached to a reply.
type Attachment struct {
	Title    string
	Text     string
	Color    string
	ImageURL string
}

// Adapter defines the interface the engine uses to talk to a chat platform
type Adapter interface {
	// Start connects to the platform and begins delivering inbound events to
	// the handler. It blocks until the connection is closed.
	Start(handler func(Message)) error

	// PostMessage sends a message to a channel. opts may be nil.
	PostMessage(channel, text string, opts *PostOptions) error

	// Stop disconnects and cleans up resources
	Stop() error
}
