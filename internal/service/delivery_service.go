package service

import (
	"strings"

	"github.com/farmgate/internal/db"
	"gorm.io/gorm"
)

// DeliveryService exposes newsletter delivery outcomes to the admin panel.
type DeliveryService struct {
	db *gorm.DB
}

// DeliveryFilter describes filters for listing delivery records.
type DeliveryFilter struct {
	Status  string
	Page    int
	PerPage int
}

// DeliveryListResult aggregates paginated delivery results with counters.
type DeliveryListResult struct {
	Items      []db.NewsletterDelivery
	Total      int64
	SentCount  int64
	DeadCount  int64
	TotalPages int
	Page       int
	PerPage    int
}

// NewDeliveryService creates a DeliveryService instance.
func NewDeliveryService(gdb *gorm.DB) *DeliveryService {
	return &DeliveryService{db: gdb}
}

// List returns delivery records matching the filter, newest first.
func (s *DeliveryService) List(filter DeliveryFilter) (DeliveryListResult, error) {
	result := DeliveryListResult{
		Page:    normalizePage(filter.Page),
		PerPage: normalizePerPage(filter.PerPage, 50),
	}

	query := s.db.Model(&db.NewsletterDelivery{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&result.Total).Error; err != nil {
		return result, err
	}
	if err := s.db.Model(&db.NewsletterDelivery{}).
		Where("status = ?", db.DeliveryStatusSent).
		Count(&result.SentCount).Error; err != nil {
		return result, err
	}
	if err := s.db.Model(&db.NewsletterDelivery{}).
		Where("status = ?", db.DeliveryStatusDead).
		Count(&result.DeadCount).Error; err != nil {
		return result, err
	}

	result.TotalPages = calculateTotalPages(result.Total, result.PerPage)
	offset := (result.Page - 1) * result.PerPage

	if err := query.Order("created_at desc").Order("id desc").
		Limit(result.PerPage).
		Offset(offset).
		Find(&result.Items).Error; err != nil {
		return result, err
	}

	return result, nil
}
