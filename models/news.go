package models

import (
	"time"
)

// News is a campus announcement shown on the landing page and served by the news API.
type News struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title" binding:"required"`
	Content     string    `gorm:"type:text;not null" json:"content" binding:"required"`
	PublishedAt time.Time `gorm:"not null;index" json:"publishedAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name for News
func (News) TableName() string {
	return "news"
}
