package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/farmgate/internal/db"
	"github.com/farmgate/internal/mailer"
	"github.com/farmgate/internal/service"
	"github.com/gin-gonic/gin"
)

type blogPayload struct {
	Title         string   `json:"title"`
	Slug          string   `json:"slug"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content"`
	ImageURL      string   `json:"image_url"`
	GalleryImages []string `json:"gallery_images"`
	RemovedImages []string `json:"removed_images"`
	Author        string   `json:"author"`
	PublishedDate string   `json:"published_date"`
}

func (p blogPayload) toInput() service.BlogInput {
	return service.BlogInput{
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		Content:       p.Content,
		ImageURL:      p.ImageURL,
		GalleryImages: p.GalleryImages,
		Author:        p.Author,
		PublishedDate: parseDate(p.PublishedDate),
	}
}

// ListBlogs 获取博客列表（后台）
func (a *API) ListBlogs(c *gin.Context) {
	filter := service.BlogFilter{
		Search:  c.Query("search"),
		Page:    parsePositiveInt(c.DefaultQuery("page", "1"), 1),
		PerPage: parsePositiveInt(c.DefaultQuery("per_page", "9"), 9),
	}

	result, err := a.blogs.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取博客列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       result.Items,
		"total":       result.Total,
		"page":        result.Page,
		"total_pages": result.TotalPages,
	})
}

// GetBlog 获取单篇博客
func (a *API) GetBlog(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的博客ID")
		return
	}

	item, err := a.blogs.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrBlogNotFound) {
			respondError(c, http.StatusNotFound, "博客不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取博客失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// CreateBlog 创建博客并触发订阅者通知
func (a *API) CreateBlog(c *gin.Context) {
	var payload blogPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	item, err := a.blogs.Create(payload.toInput())
	if err != nil {
		respondBlogError(c, err)
		return
	}

	notified := 0
	if a.dispatcher != nil {
		count, err := a.dispatcher.Enqueue(mailer.Notification{
			SourceType: db.DeliverySourceBlog,
			SourceID:   item.ID,
			Title:      item.Title,
			Excerpt:    item.Excerpt,
			Slug:       item.Slug,
		})
		if err != nil {
			log.Printf("blog: failed to enqueue notifications for %d: %v", item.ID, err)
		}
		notified = count
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "item": item, "notified": notified})
}

// UpdateBlog 更新博客
func (a *API) UpdateBlog(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的博客ID")
		return
	}

	var payload blogPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	item, err := a.blogs.Update(id, service.BlogUpdateInput{
		BlogInput:     payload.toInput(),
		RemovedImages: payload.RemovedImages,
	})
	if err != nil {
		respondBlogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}

// DeleteBlog 删除博客
func (a *API) DeleteBlog(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的博客ID")
		return
	}

	if err := a.blogs.Delete(id); err != nil {
		if errors.Is(err, service.ErrBlogNotFound) {
			respondError(c, http.StatusNotFound, "博客不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除博客失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondBlogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBlogNotFound):
		respondError(c, http.StatusNotFound, "博客不存在")
	case errors.Is(err, service.ErrBlogTitleRequired):
		respondError(c, http.StatusBadRequest, "请填写博客标题")
	case errors.Is(err, service.ErrBlogContentRequired):
		respondError(c, http.StatusBadRequest, "请填写博客内容")
	case errors.Is(err, service.ErrBlogSlugInvalid):
		respondError(c, http.StatusBadRequest, "标题无法生成有效链接，请手动指定 slug")
	case errors.Is(err, service.ErrBlogSlugTaken):
		respondError(c, http.StatusConflict, "链接标识已被占用")
	default:
		respondError(c, http.StatusInternalServerError, "保存博客失败")
	}
}
