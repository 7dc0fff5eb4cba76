package models

import "time"

type DiaryEntryModel struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int       `json:"userId" gorm:"column:user_id;not null;index"`
	Title     string    `json:"title" gorm:"type:varchar(150);not null"`
	Content   string    `json:"content" gorm:"type:text"`
	EntryDate time.Time `json:"entryDate" gorm:"not null"`
	Location  *string   `json:"location" gorm:"type:varchar(150)"`
	ImageURLs []string  `json:"imageUrls" gorm:"serializer:json"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
