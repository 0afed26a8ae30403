package model

import (
	"time"

	"github.com/google/uuid"
)

type ActionLog struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ParticipantId int64     `gorm:"not null;index:idx_action_logs_participant_created,priority:1"`
	Type          string    `gorm:"type:varchar(64);not null;index"`
	CreatedAt     time.Time `gorm:"default:now();not null;index:idx_action_logs_participant_created,priority:2"`
}

func (ActionLog) TableName() string {
	return "action_logs"
}
