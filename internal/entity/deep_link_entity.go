package entity

import (
	"time"

	"github.com/google/uuid"
)

// DeepLink counts participants who arrived through "/start <code>".
type DeepLink struct {
	Id             uuid.UUID
	Title          string
	Code           string
	ParticipantIds []int64
	CreatedAt      time.Time
}

// Attach records participantID once.
func (d *DeepLink) Attach(participantID int64) bool {
	for _, id := range d.ParticipantIds {
		if id == participantID {
			return false
		}
	}
	d.ParticipantIds = append(d.ParticipantIds, participantID)
	return true
}
