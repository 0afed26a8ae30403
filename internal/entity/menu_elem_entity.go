package entity

import "time"

type MenuButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
	URL          string `json:"url,omitempty"`
}

// MenuElem is an editable content block shown for a command or for button
// payloads no route handles.
type MenuElem struct {
	Id         uint
	Command    string
	Callbacks  []string
	Message    string
	Buttons    [][]MenuButton
	EmptyBlock bool
	IsVisible  bool
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

func (m *MenuElem) HandlesCallback(data string) bool {
	for _, cb := range m.Callbacks {
		if cb == data {
			return true
		}
	}
	return false
}
