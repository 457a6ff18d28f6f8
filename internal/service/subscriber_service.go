package service

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/farmgate/internal/db"
	"gorm.io/gorm"
)

var (
	ErrSubscriberNotFound     = errors.New("subscriber not found")
	ErrSubscriberInvalidEmail = errors.New("invalid subscriber email")
	ErrAlreadySubscribed      = errors.New("email already subscribed")
)

// SubscriberService handles newsletter subscriptions.
type SubscriberService struct {
	db *gorm.DB
}

// SubscriberListResult aggregates paginated subscriber results.
type SubscriberListResult struct {
	Items      []db.NewsletterSubscriber
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// NewSubscriberService creates a SubscriberService instance.
func NewSubscriberService(gdb *gorm.DB) *SubscriberService {
	return &SubscriberService{db: gdb}
}

// Subscribe adds an email to the newsletter list.
// 邮箱统一转小写后比较，重复订阅返回 ErrAlreadySubscribed 且不产生新行。
func (s *SubscriberService) Subscribe(email string) (*db.NewsletterSubscriber, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(normalized); err != nil {
		return nil, ErrSubscriberInvalidEmail
	}

	var count int64
	if err := s.db.Model(&db.NewsletterSubscriber{}).
		Where("email = ?", normalized).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadySubscribed
	}

	item := db.NewsletterSubscriber{
		Email:        normalized,
		SubscribedAt: time.Now(),
	}

	if err := s.db.Create(&item).Error; err != nil {
		// 并发订阅触碰唯一索引时同样按重复处理
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}
	return &item, nil
}

// List returns subscribers ordered by subscription time, newest first.
func (s *SubscriberService) List(page, perPage int) (SubscriberListResult, error) {
	result := SubscriberListResult{
		Page:    normalizePage(page),
		PerPage: normalizePerPage(perPage, 50),
	}

	query := s.db.Model(&db.NewsletterSubscriber{})
	if err := query.Count(&result.Total).Error; err != nil {
		return result, err
	}

	result.TotalPages = calculateTotalPages(result.Total, result.PerPage)
	offset := (result.Page - 1) * result.PerPage

	if err := query.Order("subscribed_at desc").Order("id desc").
		Limit(result.PerPage).
		Offset(offset).
		Find(&result.Items).Error; err != nil {
		return result, err
	}

	return result, nil
}

// Remove deletes a subscriber by id.
func (s *SubscriberService) Remove(id uint) error {
	var item db.NewsletterSubscriber
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubscriberNotFound
		}
		return err
	}
	return s.db.Delete(&item).Error
}
