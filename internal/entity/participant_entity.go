package entity

import (
	"strings"
	"time"
)

// Participant is a chat user the bot talks to. Id is the transport's user id.
type Participant struct {
	Id             int64
	Username       string
	FirstName      string
	LastName       string
	LanguageCode   string
	Timezone       string
	IsStaff        bool
	IsActive       bool
	Route          string
	CursorSnapshot []byte
	RouteUpdatedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

func (p *Participant) DisplayName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		name = p.Username
	}
	return name
}
