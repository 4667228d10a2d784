package models

import "time"

type Product struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index" json:"barber_id"`

	Name     string  `gorm:"size:100;not null" json:"name"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Category string  `gorm:"size:50" json:"category"`
	Active   bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Sale struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index" json:"barber_id"`

	ProductID uint    `json:"product_id"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"product"`

	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`

	CreatedAt time.Time `json:"created_at"`
}
