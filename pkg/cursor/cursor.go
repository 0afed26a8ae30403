package cursor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SnapshotVersion is written into every serialized cursor.
const SnapshotVersion = 1

// PendingForm is the in-flight create/update data of one form.
type PendingForm struct {
	Form   string           `json:"form"`
	Fields map[string]Value `json:"fields"`
}

// Cursor is the durable per-participant conversation position.
// An empty Route means no continuation is pending.
type Cursor struct {
	ParticipantID int64
	Route         string
	Context       map[string]interface{}
	Form          PendingForm
	UpdatedAt     time.Time
}

// New returns the empty cursor every participant starts with.
func New(participantID int64) *Cursor {
	return &Cursor{
		ParticipantID: participantID,
		Context:       map[string]interface{}{},
		Form:          PendingForm{Fields: map[string]Value{}},
	}
}

// Clear drops the pending route, context and form.
func (c *Cursor) Clear() {
	c.Route = ""
	c.Context = map[string]interface{}{}
	c.Form = PendingForm{Fields: map[string]Value{}}
}

// FormData returns a copy of the pending fields when they belong to form,
// and an empty map otherwise.
func (c *Cursor) FormData(form string) map[string]Value {
	out := map[string]Value{}
	if c.Form.Form != form {
		return out
	}
	for k, v := range c.Form.Fields {
		out[k] = v
	}
	return out
}

// SaveForm replaces the pending form snapshot.
func (c *Cursor) SaveForm(form string, fields map[string]Value) {
	data := make(map[string]Value, len(fields))
	for k, v := range fields {
		data[k] = v
	}
	c.Form = PendingForm{Form: form, Fields: data}
}

func (c *Cursor) IsEmpty() bool {
	return c.Route == "" && len(c.Context) == 0 && c.Form.Form == "" && len(c.Form.Fields) == 0
}

type snapshot struct {
	Version int                    `json:"version"`
	Route   string                 `json:"route"`
	Context map[string]interface{} `json:"context"`
	Form    PendingForm            `json:"form"`
}

// Marshal serializes the cursor state. Map keys are sorted by encoding/json,
// so equal cursors produce identical bytes.
func (c *Cursor) Marshal() ([]byte, error) {
	s := snapshot{
		Version: SnapshotVersion,
		Route:   c.Route,
		Context: c.Context,
		Form:    c.Form,
	}
	if s.Context == nil {
		s.Context = map[string]interface{}{}
	}
	if s.Form.Fields == nil {
		s.Form.Fields = map[string]Value{}
	}
	return json.Marshal(s)
}

// Unmarshal restores a cursor written by Marshal.
func Unmarshal(participantID int64, data []byte) (*Cursor, error) {
	c := New(participantID)
	if len(data) == 0 {
		return c, nil
	}
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode cursor snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported cursor snapshot version %d", s.Version)
	}
	c.Route = s.Route
	if s.Context != nil {
		c.Context = s.Context
	}
	if s.Form.Fields != nil {
		c.Form = s.Form
	} else {
		c.Form.Form = s.Form.Form
	}
	return c, nil
}

// Store loads and saves cursors. Load creates an empty cursor for unknown
// participants. Saves are last-writer-wins.
type Store interface {
	Load(ctx context.Context, participantID int64) (*Cursor, error)
	Save(ctx context.Context, c *Cursor) error
}
