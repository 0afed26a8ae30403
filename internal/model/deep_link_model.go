package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DeepLink struct {
	Id             uuid.UUID                  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title          string                     `gorm:"type:varchar(64);default:''"`
	Code           string                     `gorm:"type:varchar(64);uniqueIndex;not null"`
	ParticipantIds datatypes.JSONSlice[int64] `gorm:"type:jsonb"`
	CreatedAt      time.Time                  `gorm:"autoCreateTime"`
}

func (DeepLink) TableName() string {
	return "deep_links"
}
