package db

import "gorm.io/gorm"

// Leader 定义管理团队成员模型
// WhatsappLink 由电话号码派生，IsCEO 约定全表最多一条为 true（不强制）
// DisplayOrder 值越小越靠前
type Leader struct {
	gorm.Model
	Name         string `gorm:"size:120;not null" json:"name"`
	Position     string `gorm:"size:120;not null" json:"position"`
	Description  string `gorm:"type:text" json:"description"`
	ImageURL     string `gorm:"size:500" json:"image_url"`
	Phone        string `gorm:"size:40" json:"phone"`
	WhatsappLink string `gorm:"size:255" json:"whatsapp_link"`
	LinkedinLink string `gorm:"size:255" json:"linkedin_link"`
	TwitterLink  string `gorm:"size:255" json:"twitter_link"`
	IsCEO        bool   `gorm:"column:is_ceo;default:false" json:"is_ceo"`
	DisplayOrder int    `gorm:"default:0" json:"display_order"`
}

// TableName 返回自定义表名
func (Leader) TableName() string {
	return "leaders"
}
