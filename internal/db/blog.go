package db

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BlogPost 定义博客文章模型，结构与新闻一致但独立存表
// Slug 仅在 blogs 表内唯一，同名新闻互不影响
type BlogPost struct {
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
func (BlogPost) TableName() string {
	return "blogs"
}
