package model

import (
	"time"

	"gorm.io/datatypes"
)

type MenuElem struct {
	Id         uint                        `gorm:"primaryKey;autoIncrement"`
	Command    *string                     `gorm:"type:varchar(32);uniqueIndex"`
	Callbacks  datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Message    string                      `gorm:"type:text;not null"`
	Buttons    datatypes.JSON              `gorm:"type:jsonb"`
	EmptyBlock bool                        `gorm:"default:false"`
	IsVisible  bool                        `gorm:"not null;index"`
	CreatedAt  time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt  time.Time                   `gorm:"autoUpdateTime"`
}

func (MenuElem) TableName() string {
	return "menu_elems"
}
