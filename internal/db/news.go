package db

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NewsArticle 定义企业新闻模型
// Slug 在 news 表内唯一，GalleryImages 按顺序保存附图链接
type NewsArticle struct {
	gorm.Model
	Title         string                      `gorm:"size:255;not null" json:"title"`
	Slug          string                      `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Excerpt       string                      `gorm:"type:text" json:"excerpt"`
	Content       string                      `gorm:"type:text" json:"content"`
	ImageURL      string                      `gorm:"size:500" json:"image_url"`
	GalleryImages datatypes.JSONSlice[string] `json:"gallery_images"`
	Author        string                      `gorm:"size:120" json:"author"`
	PublishedDate time.Time                   `json:"published_date"`
}

// TableName 返回自定义表名
func (NewsArticle) TableName() string {
	return "news"
}
