package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/farmgate/internal/db"
	"github.com/farmgate/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrGalleryNotFound        = errors.New("gallery image not found")
	ErrGalleryTitleRequired   = errors.New("gallery title is required")
	ErrGalleryImageMissing    = errors.New("gallery image is required")
	ErrGalleryCategoryInvalid = errors.New("gallery category is invalid")
)

const (
	GalleryCategoryLivestock  = "livestock"
	GalleryCategoryFacilities = "facilities"
	GalleryCategoryLandscape  = "landscape"
	GalleryCategoryProduction = "production"
)

// GalleryCategories 列出所有合法的相册分类。
var GalleryCategories = []string{
	GalleryCategoryLivestock,
	GalleryCategoryFacilities,
	GalleryCategoryLandscape,
	GalleryCategoryProduction,
}

// GalleryService handles gallery CRUD.
type GalleryService struct {
	db    *gorm.DB
	store storage.Store
}

// GalleryFilter describes filters for listing gallery images.
type GalleryFilter struct {
	Search   string
	Category string
	Page     int
	PerPage  int
}

// GalleryListResult aggregates paginated gallery results.
type GalleryListResult struct {
	Items      []db.GalleryImage
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// GalleryInput represents fields accepted when creating or updating a gallery image.
type GalleryInput struct {
	Title       string
	Description string
	Category    string
	ImageURL    string
}

// NewGalleryService creates a GalleryService instance.
func NewGalleryService(gdb *gorm.DB, store storage.Store) *GalleryService {
	return &GalleryService{db: gdb, store: store}
}

// List returns gallery images matching the filter.
func (s *GalleryService) List(filter GalleryFilter) (GalleryListResult, error) {
	result := GalleryListResult{
		Page:    normalizePage(filter.Page),
		PerPage: normalizePerPage(filter.PerPage, 12),
	}

	query := s.db.Model(&db.GalleryImage{})
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	if err := query.Count(&result.Total).Error; err != nil {
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

// Get fetches a gallery image by id.
func (s *GalleryService) Get(id uint) (*db.GalleryImage, error) {
	var item db.GalleryImage
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new gallery image.
func (s *GalleryService) Create(input GalleryInput) (*db.GalleryImage, error) {
	if err := validateGalleryInput(input); err != nil {
		return nil, err
	}

	item := db.GalleryImage{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    normalizeGalleryCategory(input.Category),
		ImageURL:    strings.TrimSpace(input.ImageURL),
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing gallery image.
// 替换图片时尽力清理旧的托管对象。
func (s *GalleryService) Update(id uint, input GalleryInput) (*db.GalleryImage, error) {
	if err := validateGalleryInput(input); err != nil {
		return nil, err
	}

	var item db.GalleryImage
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryNotFound
		}
		return nil, err
	}

	oldURL := item.ImageURL
	item.Title = strings.TrimSpace(input.Title)
	item.Description = strings.TrimSpace(input.Description)
	item.Category = normalizeGalleryCategory(input.Category)
	item.ImageURL = strings.TrimSpace(input.ImageURL)

	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}

	if oldURL != "" && oldURL != item.ImageURL {
		s.cleanupObject(oldURL)
	}
	return &item, nil
}

// Delete removes a gallery image and attempts best-effort object cleanup.
func (s *GalleryService) Delete(id uint) error {
	var item db.GalleryImage
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGalleryNotFound
		}
		return err
	}

	if err := s.db.Delete(&item).Error; err != nil {
		return err
	}

	s.cleanupObject(item.ImageURL)
	return nil
}

func (s *GalleryService) cleanupObject(url string) {
	if s.store == nil || strings.TrimSpace(url) == "" || !s.store.Owns(url) {
		return
	}
	if err := s.store.Remove(context.Background(), url); err != nil {
		log.Printf("gallery: best-effort cleanup of %s failed: %v", url, err)
	}
}

func validateGalleryInput(input GalleryInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrGalleryTitleRequired
	}
	if strings.TrimSpace(input.ImageURL) == "" {
		return ErrGalleryImageMissing
	}
	if !IsValidGalleryCategory(input.Category) {
		return ErrGalleryCategoryInvalid
	}
	return nil
}

// IsValidGalleryCategory 判断分类是否在枚举范围内。
func IsValidGalleryCategory(category string) bool {
	normalized := normalizeGalleryCategory(category)
	for _, known := range GalleryCategories {
		if normalized == known {
			return true
		}
	}
	return false
}

func normalizeGalleryCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
