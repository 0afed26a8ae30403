package model

import (
	"time"

	"gorm.io/datatypes"
)

type Participant struct {
	Id             int64          `gorm:"primaryKey;autoIncrement:false"`
	Username       string         `gorm:"type:varchar(64)"`
	FirstName      string         `gorm:"type:varchar(64)"`
	LastName       string         `gorm:"type:varchar(64)"`
	LanguageCode   string         `gorm:"type:varchar(8);default:'en'"`
	Timezone       string         `gorm:"type:varchar(8);default:'+00:00'"`
	IsStaff        bool           `gorm:"default:false"`
	IsActive       bool           `gorm:"default:true"`
	Route          string         `gorm:"type:varchar(64);default:''"`
	CursorSnapshot datatypes.JSON `gorm:"type:jsonb"`
	RouteUpdatedAt *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Participant) TableName() string {
	return "participants"
}
