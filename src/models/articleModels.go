package models

import "time"

type ArticleModel struct {
	Id            int        `json:"id" gorm:"primaryKey;autoIncrement"`
	Title         string     `json:"title" gorm:"type:varchar(200);not null"`
	Excerpt       *string    `json:"excerpt" gorm:"type:text"`
	Content       string     `json:"content" gorm:"type:text;not null"`
	Category      string     `json:"category" gorm:"type:varchar(100)"`
	Tags          []string   `json:"tags" gorm:"serializer:json"`
	CoverImageURL *string    `json:"coverImageUrl" gorm:"type:varchar(500)"`
	AISummary     *string    `json:"aiSummary" gorm:"type:text"`
	AuthorID      *int       `json:"authorId" gorm:"column:author_id"`
	AuthorName    *string    `json:"authorName" gorm:"type:varchar(150)"`
	Views         int        `json:"views" gorm:"default:0;not null"`
	Likes         int        `json:"likes" gorm:"default:0;not null"`
	Comments      int        `json:"comments" gorm:"default:0;not null"`
	Featured      bool       `json:"featured" gorm:"default:false;not null"`
	Published     bool       `json:"published" gorm:"default:false;not null"`
	ReadTime      string     `json:"readTime" gorm:"type:varchar(20)"`
	PublishedAt   *time.Time `json:"publishedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
