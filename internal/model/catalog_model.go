package model

import "time"

type Category struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:varchar(128);not null"`
	Info      string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Category) TableName() string {
	return "categories"
}

type Product struct {
	Id         uint      `gorm:"primaryKey;autoIncrement"`
	Name       string    `gorm:"type:varchar(128);not null"`
	CategoryId uint      `gorm:"not null;index"`
	Category   Category  `gorm:"constraint:OnDelete:RESTRICT"`
	Price      float64   `gorm:"type:numeric(16,2);not null"`
	IsVisible  bool      `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Product) TableName() string {
	return "products"
}

type Order struct {
	Id            uint      `gorm:"primaryKey;autoIncrement"`
	ParticipantId int64     `gorm:"not null;index"`
	Info          string    `gorm:"type:text"`
	Status        string    `gorm:"type:varchar(16);not null;default:'new'"`
	Products      []Product `gorm:"many2many:order_products;"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (Order) TableName() string {
	return "orders"
}
