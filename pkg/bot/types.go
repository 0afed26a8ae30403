package bot

import (
	"context"
	"strings"

	"viewset-bot/pkg/cursor"
)

// CommandMarker prefixes free text that should be resolved as a route.
const CommandMarker = "/"

// Event is one inbound delivery from the chat transport: either a typed
// message or a button press.
type Event struct {
	ParticipantID int64
	Username      string
	FirstName     string
	LastName      string
	LanguageCode  string

	// Text is set for typed messages.
	Text string

	// CallbackData is set for button presses and carries a route token.
	CallbackData string

	// MessageID is the chat message the button belongs to (edited in place).
	MessageID int64
}

func (e *Event) IsCallback() bool {
	return e.CallbackData != ""
}

func (e *Event) IsCommand() bool {
	return !e.IsCallback() && strings.HasPrefix(e.Text, CommandMarker)
}

// Payload returns the raw value used for content lookup: the button payload
// or the message text.
func (e *Event) Payload() string {
	if e.IsCallback() {
		return e.CallbackData
	}
	return e.Text
}

// Actor is the participant an event is processed for.
type Actor struct {
	ID       int64
	Username string
	Name     string
	Locale   string
	IsStaff  bool
	Created  bool
}

type Button struct {
	Text string `json:"text"`
	Data string `json:"callback_data,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Keyboard is a grid of inline buttons, row by row.
type Keyboard [][]Button

// Count returns the number of buttons in the grid.
func (k Keyboard) Count() int {
	n := 0
	for _, row := range k {
		n += len(row)
	}
	return n
}

// Response is what a handler returns: display text plus a button grid.
type Response struct {
	Text    string   `json:"text"`
	Buttons Keyboard `json:"buttons,omitempty"`

	// OnlySend forces a new message instead of editing the pressed one.
	OnlySend bool `json:"only_send,omitempty"`
}

func NewResponse(text string, buttons Keyboard) *Response {
	return &Response{Text: text, Buttons: buttons}
}

// Request carries everything a handler needs to serve one event.
type Request struct {
	Event  *Event
	Actor  Actor
	Cursor *cursor.Cursor

	// Token is the route token being served.
	Token string

	// Prefix is the matched mount pattern.
	Prefix string

	// Args are the space separated arguments of a plain command.
	Args []string

	// FromCursor reports that the token came from the participant's cursor
	// and the event text is the value the cursor route is waiting for.
	FromCursor bool
}

type Handler interface {
	Handle(ctx context.Context, req *Request) (*Response, error)
}

type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)

func (f HandlerFunc) Handle(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// Delivery sends or edits a chat message for a participant.
type Delivery interface {
	Render(ctx context.Context, actor Actor, event *Event, resp *Response) error
}

// Auditor records handled routes. Implementations must not block.
type Auditor interface {
	Record(actorID int64, route string)
}

// Translator localizes display text. Locale is always explicit.
type Translator interface {
	Sprintf(locale, format string, args ...interface{}) string
}
