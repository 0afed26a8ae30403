package specification

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ByID filters by primary key. ID may be any key type.
type ByID struct {
	ID interface{}
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// OrderBy sorts by one column. Field comes from code, never from chat input.
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	if s.Limit > 0 {
		db = db.Limit(s.Limit)
	}
	return db.Offset(s.Offset)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains matches a case-insensitive substring of a text column. The value
// is matched literally.
type Contains struct {
	Field string
	Value string
}

func (s Contains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(fmt.Sprintf("%s ILIKE ?", s.Field), "%"+likeEscaper.Replace(s.Value)+"%")
}
