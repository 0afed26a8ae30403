package entity

import "time"

type Category struct {
	Id        uint
	Name      string
	Info      string
	CreatedAt time.Time
}

type Product struct {
	Id         uint
	Name       string
	CategoryId uint
	Price      float64
	IsVisible  bool
	CreatedAt  time.Time
}

const (
	OrderStatusNew     = "new"
	OrderStatusPaid    = "paid"
	OrderStatusShipped = "shipped"
)

type Order struct {
	Id            uint
	ParticipantId int64
	Info          string
	Status        string
	ProductIds    []uint
	CreatedAt     time.Time
}
