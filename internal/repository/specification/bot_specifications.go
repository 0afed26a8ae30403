package specification

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

type ByParticipant struct {
	ParticipantID int64
}

func (s ByParticipant) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("participant_id = ?", s.ParticipantID)
}

type ActiveParticipants struct{}

func (s ActiveParticipants) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

type ByActionType struct {
	Type string
}

func (s ByActionType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}

// CreatedSince keeps rows created at or after Since.
type CreatedSince struct {
	Since time.Time
}

func (s CreatedSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ?", s.Since)
}

type ByDeepLinkCode struct {
	Code string
}

func (s ByDeepLinkCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("code = ?", s.Code)
}

// Menu element specs

type ByCommand struct {
	Command string
}

func (s ByCommand) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("command = ?", s.Command)
}

// HasCallback matches menu elements whose callbacks list holds Data.
type HasCallback struct {
	Data string
}

func (s HasCallback) Apply(db *gorm.DB) *gorm.DB {
	raw, _ := json.Marshal([]string{s.Data})
	return db.Where("callbacks @> ?", string(raw))
}

type VisibleOnly struct{}

func (s VisibleOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_visible = ?", true)
}

type EmptyBlocks struct{}

func (s EmptyBlocks) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("empty_block = ?", true)
}

// Catalog specs

type ByCategory struct {
	CategoryID uint
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category_id = ?", s.CategoryID)
}

// OrderHasProduct keeps orders that include ProductID.
type OrderHasProduct struct {
	ProductID uint
}

func (s OrderHasProduct) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id IN (?)",
		db.Session(&gorm.Session{NewDB: true}).
			Table("order_products").
			Select("order_id").
			Where("product_id = ?", s.ProductID),
	)
}
