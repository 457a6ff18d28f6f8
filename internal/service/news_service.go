package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/farmgate/internal/db"
	"github.com/farmgate/internal/storage"
	"github.com/farmgate/internal/util"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNewsNotFound        = errors.New("news article not found")
	ErrNewsTitleRequired   = errors.New("news title is required")
	ErrNewsContentRequired = errors.New("news content is required")
	ErrNewsSlugInvalid     = errors.New("news slug is invalid")
	ErrNewsSlugTaken       = errors.New("news slug already exists")
)

// NewsService handles news article CRUD and media cleanup.
type NewsService struct {
	db    *gorm.DB
	store storage.Store
}

// NewsFilter describes filters for listing news articles.
type NewsFilter struct {
	Search  string
	Page    int
	PerPage int
}

// NewsListResult aggregates paginated news results.
type NewsListResult struct {
	Items      []db.NewsArticle
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// NewsInput represents fields accepted when creating a news article.
type NewsInput struct {
	Title         string
	Slug          string
	Excerpt       string
	Content       string
	ImageURL      string
	GalleryImages []string
	Author        string
	PublishedDate time.Time
}

// NewsUpdateInput represents fields accepted when editing a news article.
// GalleryImages 为本次新增的附图，RemovedImages 为被显式移除的附图；
// 未提及的已有附图保持原有顺序不变。
type NewsUpdateInput struct {
	NewsInput
	RemovedImages []string
}

// NewNewsService creates a NewsService instance.
func NewNewsService(gdb *gorm.DB, store storage.Store) *NewsService {
	return &NewsService{db: gdb, store: store}
}

// List returns news articles matching the filter, newest first.
func (s *NewsService) List(filter NewsFilter) (NewsListResult, error) {
	result := NewsListResult{
		Page:    normalizePage(filter.Page),
		PerPage: normalizePerPage(filter.PerPage, 9),
	}

	query := s.db.Model(&db.NewsArticle{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR excerpt LIKE ?", like, like)
	}

	if err := query.Count(&result.Total).Error; err != nil {
		return result, err
	}

	result.TotalPages = calculateTotalPages(result.Total, result.PerPage)
	offset := (result.Page - 1) * result.PerPage

	if err := query.Order("published_date desc").Order("id desc").
		Limit(result.PerPage).
		Offset(offset).
		Find(&result.Items).Error; err != nil {
		return result, err
	}

	return result, nil
}

// Get fetches a news article by id.
func (s *NewsService) Get(id uint) (*db.NewsArticle, error) {
	var item db.NewsArticle
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	return &item, nil
}

// GetBySlug fetches a news article by its slug.
func (s *NewsService) GetBySlug(slug string) (*db.NewsArticle, error) {
	var item db.NewsArticle
	if err := s.db.Where("slug = ?", strings.TrimSpace(slug)).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new news article after deriving and reserving its slug.
func (s *NewsService) Create(input NewsInput) (*db.NewsArticle, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrNewsTitleRequired
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrNewsContentRequired
	}

	slug, err := s.resolveSlug(input.Slug, title, 0)
	if err != nil {
		return nil, err
	}

	published := input.PublishedDate
	if published.IsZero() {
		published = time.Now()
	}

	item := db.NewsArticle{
		Title:         title,
		Slug:          slug,
		Excerpt:       strings.TrimSpace(input.Excerpt),
		Content:       input.Content,
		ImageURL:      strings.TrimSpace(input.ImageURL),
		GalleryImages: datatypes.NewJSONSlice(cleanURLList(input.GalleryImages)),
		Author:        strings.TrimSpace(input.Author),
		PublishedDate: published,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update overwrites the mutable fields of an existing article.
// 替换封面或移除附图时，会尽力清理旧的托管对象，清理失败不会中断更新。
func (s *NewsService) Update(id uint, input NewsUpdateInput) (*db.NewsArticle, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrNewsTitleRequired
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrNewsContentRequired
	}

	var item db.NewsArticle
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}

	slug, err := s.resolveSlug(input.Slug, title, item.ID)
	if err != nil {
		return nil, err
	}

	oldCover := item.ImageURL
	newCover := strings.TrimSpace(input.ImageURL)
	merged := mergeGalleryImages(item.GalleryImages, input.GalleryImages, input.RemovedImages)

	item.Title = title
	item.Slug = slug
	item.Excerpt = strings.TrimSpace(input.Excerpt)
	item.Content = input.Content
	item.ImageURL = newCover
	item.GalleryImages = datatypes.NewJSONSlice(merged)
	item.Author = strings.TrimSpace(input.Author)
	if !input.PublishedDate.IsZero() {
		item.PublishedDate = input.PublishedDate
	}

	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}

	if oldCover != "" && oldCover != newCover {
		s.cleanupObject(oldCover)
	}
	for _, url := range input.RemovedImages {
		s.cleanupObject(url)
	}

	return &item, nil
}

// Delete removes a news article, then attempts best-effort media cleanup.
func (s *NewsService) Delete(id uint) error {
	var item db.NewsArticle
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNewsNotFound
		}
		return err
	}

	if err := s.db.Delete(&item).Error; err != nil {
		return err
	}

	s.cleanupObject(item.ImageURL)
	for _, url := range item.GalleryImages {
		s.cleanupObject(url)
	}
	return nil
}

// resolveSlug derives a slug from the submitted value or the title and
// enforces uniqueness within the news table. excludeID 为 0 时不排除任何行。
func (s *NewsService) resolveSlug(submitted, title string, excludeID uint) (string, error) {
	slug := strings.TrimSpace(submitted)
	if slug == "" {
		slug = util.Slugify(title)
	} else {
		slug = util.Slugify(slug)
	}
	if !util.IsValidSlug(slug) {
		return "", ErrNewsSlugInvalid
	}

	query := s.db.Model(&db.NewsArticle{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrNewsSlugTaken
	}
	return slug, nil
}

func (s *NewsService) cleanupObject(url string) {
	if s.store == nil || strings.TrimSpace(url) == "" || !s.store.Owns(url) {
		return
	}
	if err := s.store.Remove(context.Background(), url); err != nil {
		log.Printf("news: best-effort cleanup of %s failed: %v", url, err)
	}
}

// mergeGalleryImages 保序合并附图：保留未被移除的旧图，再追加尚未出现的新图。
func mergeGalleryImages(existing []string, added, removed []string) []string {
	removedSet := make(map[string]struct{}, len(removed))
	for _, url := range removed {
		removedSet[strings.TrimSpace(url)] = struct{}{}
	}

	merged := make([]string, 0, len(existing)+len(added))
	seen := make(map[string]struct{}, len(existing)+len(added))
	for _, url := range existing {
		if _, gone := removedSet[url]; gone {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}
		merged = append(merged, url)
		seen[url] = struct{}{}
	}

	for _, url := range cleanURLList(added) {
		if _, gone := removedSet[url]; gone {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}
		merged = append(merged, url)
		seen[url] = struct{}{}
	}

	return merged
}

func cleanURLList(urls []string) []string {
	cleaned := make([]string, 0, len(urls))
	for _, url := range urls {
		trimmed := strings.TrimSpace(url)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	return cleaned
}
