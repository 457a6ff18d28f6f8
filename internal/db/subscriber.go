package db

import (
	"time"

	"gorm.io/gorm"
)

// NewsletterSubscriber 定义邮件订阅者模型
// Email 全表唯一，无需验证流程
type NewsletterSubscriber struct {
	gorm.Model
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// TableName 返回自定义表名
func (NewsletterSubscriber) TableName() string {
	return "newsletter_subscribers"
}
