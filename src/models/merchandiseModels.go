package models

import "time"

type MerchandiseModel struct {
	Id          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"type:varchar(150);not null"`
	Description *string   `json:"description" gorm:"type:text"`
	ImageURL    *string   `json:"imageUrl" gorm:"type:varchar(500)"`
	Price       float64   `json:"price" gorm:"not null"`
	Currency    string    `json:"currency" gorm:"type:varchar(3);default:EUR;not null"`
	Quantity    int       `json:"quantity" gorm:"default:0;not null"`
	Category    string    `json:"category" gorm:"type:varchar(100)"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
