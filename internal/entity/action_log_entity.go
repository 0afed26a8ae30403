package entity

import (
	"time"

	"github.com/google/uuid"
)

type ActionLog struct {
	Id            uuid.UUID
	ParticipantId int64
	Type          string
	CreatedAt     time.Time
}
