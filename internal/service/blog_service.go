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
	ErrBlogNotFound        = errors.New("blog post not found")
	ErrBlogTitleRequired   = errors.New("blog title is required")
	ErrBlogContentRequired = errors.New("blog content is required")
	ErrBlogSlugInvalid     = errors.New("blog slug is invalid")
	ErrBlogSlugTaken       = errors.New("blog slug already exists")
)

// BlogService handles blog post CRUD and media cleanup.
// 与 NewsService 行为一致，但 slug 唯一性只在 blogs 表内约束。
type BlogService struct {
	db    *gorm.DB
	store storage.Store
}

// BlogFilter describes filters for listing blog posts.
type BlogFilter struct {
	Search  string
	Page    int
	PerPage int
}

// BlogListResult aggregates paginated blog results.
type BlogListResult struct {
	Items      []db.BlogPost
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// BlogInput represents fields accepted when creating a blog post.
type BlogInput struct {
	Title         string
	Slug          string
	Excerpt       string
	Content       string
	ImageURL      string
	GalleryImages []string
	Author        string
	PublishedDate time.Time
}

// BlogUpdateInput represents fields accepted when editing a blog post.
type BlogUpdateInput struct {
	BlogInput
	RemovedImages []string
}

// NewBlogService creates a BlogService instance.
func NewBlogService(gdb *gorm.DB, store storage.Store) *BlogService {
	return &BlogService{db: gdb, store: store}
}

// List returns blog posts matching the filter, newest first.
func (s *BlogService) List(filter BlogFilter) (BlogListResult, error) {
	result := BlogListResult{
		Page:    normalizePage(filter.Page),
		PerPage: normalizePerPage(filter.PerPage, 9),
	}

	query := s.db.Model(&db.BlogPost{})
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

// Get fetches a blog post by id.
func (s *BlogService) Get(id uint) (*db.BlogPost, error) {
	var item db.BlogPost
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return &item, nil
}

// GetBySlug fetches a blog post by its slug.
func (s *BlogService) GetBySlug(slug string) (*db.BlogPost, error) {
	var item db.BlogPost
	if err := s.db.Where("slug = ?", strings.TrimSpace(slug)).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new blog post after deriving and reserving its slug.
func (s *BlogService) Create(input BlogInput) (*db.BlogPost, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrBlogTitleRequired
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrBlogContentRequired
	}

	slug, err := s.resolveSlug(input.Slug, title, 0)
	if err != nil {
		return nil, err
	}

	published := input.PublishedDate
	if published.IsZero() {
		published = time.Now()
	}

	item := db.BlogPost{
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

// Update overwrites the mutable fields of an existing blog post.
func (s *BlogService) Update(id uint, input BlogUpdateInput) (*db.BlogPost, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrBlogTitleRequired
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrBlogContentRequired
	}

	var item db.BlogPost
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
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

// Delete removes a blog post, then attempts best-effort media cleanup.
func (s *BlogService) Delete(id uint) error {
	var item db.BlogPost
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBlogNotFound
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

func (s *BlogService) resolveSlug(submitted, title string, excludeID uint) (string, error) {
	slug := strings.TrimSpace(submitted)
	if slug == "" {
		slug = util.Slugify(title)
	} else {
		slug = util.Slugify(slug)
	}
	if !util.IsValidSlug(slug) {
		return "", ErrBlogSlugInvalid
	}

	query := s.db.Model(&db.BlogPost{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrBlogSlugTaken
	}
	return slug, nil
}

func (s *BlogService) cleanupObject(url string) {
	if s.store == nil || strings.TrimSpace(url) == "" || !s.store.Owns(url) {
		return
	}
	if err := s.store.Remove(context.Background(), url); err != nil {
		log.Printf("blog: best-effort cleanup of %s failed: %v", url, err)
	}
}
