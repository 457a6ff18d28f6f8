package db

import (
	"time"

	"gorm.io/gorm"
)

// NewsletterDelivery 记录单个订阅者的通知投递结果
// Status 取值 queued、sent、dead；Attempts 达到上限仍失败时置为 dead
type NewsletterDelivery struct {
	gorm.Model
	Email      string     `gorm:"size:255;not null;index" json:"email"`
	Subject    string     `gorm:"size:255;not null" json:"subject"`
	SourceType string     `gorm:"size:10;not null;index" json:"source_type"` // news, blog
	SourceID   uint       `gorm:"not null;index" json:"source_id"`
	Status     string     `gorm:"size:10;default:queued;index" json:"status"`
	Attempts   int        `gorm:"default:0" json:"attempts"`
	LastError  string     `gorm:"size:500" json:"last_error"`
	SentAt     *time.Time `json:"sent_at"`
}

// TableName 返回自定义表名
func (NewsletterDelivery) TableName() string {
	return "newsletter_deliveries"
}

const (
	// DeliveryStatusQueued 表示投递尚未完成
	DeliveryStatusQueued = "queued"
	// DeliveryStatusSent 表示投递成功
	DeliveryStatusSent = "sent"
	// DeliveryStatusDead 表示重试耗尽后放弃投递
	DeliveryStatusDead = "dead"

	// DeliverySourceNews 表示通知来源为新闻
	DeliverySourceNews = "news"
	// DeliverySourceBlog 表示通知来源为博客
	DeliverySourceBlog = "blog"
)
