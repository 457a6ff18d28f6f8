package db

import "gorm.io/gorm"

// ContactMessage 定义联系表单留言模型
// Status 仅允许 unread -> read 单向流转
type ContactMessage struct {
	gorm.Model
	Name    string `gorm:"size:120;not null" json:"name"`
	Email   string `gorm:"size:255;not null" json:"email"`
	Phone   string `gorm:"size:40" json:"phone"`
	Subject string `gorm:"size:255;not null" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`
	Status  string `gorm:"size:10;default:unread;index" json:"status"`
}

// TableName 返回自定义表名
func (ContactMessage) TableName() string {
	return "messages"
}

const (
	// MessageStatusUnread 表示留言尚未被查看
	MessageStatusUnread = "unread"
	// MessageStatusRead 表示留言已被查看
	MessageStatusRead = "read"
)
