package db

import "gorm.io/gorm"

// GalleryImage 定义展示相册图片模型
// Category 取值限定为 livestock、facilities、landscape、production
type GalleryImage struct {
	gorm.Model
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:40;index;not null" json:"category"`
	ImageURL    string `gorm:"size:500;not null" json:"image_url"`
}

// TableName 返回自定义表名
func (GalleryImage) TableName() string {
	return "gallery"
}
