package models

import "time"

type EventModel struct {
	Id              int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Title           string    `json:"title" gorm:"type:varchar(150);not null"`
	Description     *string   `json:"description" gorm:"type:text"`
	Restrictions    *string   `json:"restrictions" gorm:"type:text"`
	Date            time.Time `json:"date" gorm:"not null"`
	StartTime       string    `json:"startTime" gorm:"type:varchar(10)"`
	EndTime         string    `json:"endTime" gorm:"type:varchar(10)"`
	LocationName    string    `json:"locationName" gorm:"type:varchar(150)"`
	LocationAddress *string   `json:"locationAddress" gorm:"type:varchar(255)"`
	Category        string    `json:"category" gorm:"type:varchar(100)"`
	Capacity        *int      `json:"capacity"`
	TicketPrice     *float64  `json:"ticketPrice"`
	CreatedBy       *int      `json:"createdBy" gorm:"column:created_by"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
