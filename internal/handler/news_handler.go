package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/farmgate/internal/db"
	"github.com/farmgate/internal/mailer"
	"github.com/farmgate/internal/service"
	"github.com/gin-gonic/gin"
)

type newsPayload struct {
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

func (p newsPayload) toInput() service.NewsInput {
	return service.NewsInput{
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

// parseDate 解析 2006-01-02 或 RFC3339 格式的日期，失败返回零值。
func parseDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return parsed
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed
	}
	return time.Time{}
}

// ListNews 获取新闻列表（后台）
func (a *API) ListNews(c *gin.Context) {
	filter := service.NewsFilter{
		Search:  c.Query("search"),
		Page:    parsePositiveInt(c.DefaultQuery("page", "1"), 1),
		PerPage: parsePositiveInt(c.DefaultQuery("per_page", "9"), 9),
	}

	result, err := a.news.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取新闻列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       result.Items,
		"total":       result.Total,
		"page":        result.Page,
		"total_pages": result.TotalPages,
	})
}

// GetNews 获取单条新闻
func (a *API) GetNews(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的新闻ID")
		return
	}

	item, err := a.news.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNewsNotFound) {
			respondError(c, http.StatusNotFound, "新闻不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取新闻失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// CreateNews 创建新闻并触发订阅者通知
func (a *API) CreateNews(c *gin.Context) {
	var payload newsPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	item, err := a.news.Create(payload.toInput())
	if err != nil {
		respondNewsError(c, err)
		return
	}

	// 仅创建触发扇出，编辑不再通知
	notified := 0
	if a.dispatcher != nil {
		count, err := a.dispatcher.Enqueue(mailer.Notification{
			SourceType: db.DeliverySourceNews,
			SourceID:   item.ID,
			Title:      item.Title,
			Excerpt:    item.Excerpt,
			Slug:       item.Slug,
		})
		if err != nil {
			log.Printf("news: failed to enqueue notifications for %d: %v", item.ID, err)
		}
		notified = count
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "item": item, "notified": notified})
}

// UpdateNews 更新新闻
func (a *API) UpdateNews(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的新闻ID")
		return
	}

	var payload newsPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	item, err := a.news.Update(id, service.NewsUpdateInput{
		NewsInput:     payload.toInput(),
		RemovedImages: payload.RemovedImages,
	})
	if err != nil {
		respondNewsError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}

// DeleteNews 删除新闻
func (a *API) DeleteNews(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的新闻ID")
		return
	}

	if err := a.news.Delete(id); err != nil {
		if errors.Is(err, service.ErrNewsNotFound) {
			respondError(c, http.StatusNotFound, "新闻不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除新闻失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondNewsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNewsNotFound):
		respondError(c, http.StatusNotFound, "新闻不存在")
	case errors.Is(err, service.ErrNewsTitleRequired):
		respondError(c, http.StatusBadRequest, "请填写新闻标题")
	case errors.Is(err, service.ErrNewsContentRequired):
		respondError(c, http.StatusBadRequest, "请填写新闻内容")
	case errors.Is(err, service.ErrNewsSlugInvalid):
		respondError(c, http.StatusBadRequest, "标题无法生成有效链接，请手动指定 slug")
	case errors.Is(err, service.ErrNewsSlugTaken):
		respondError(c, http.StatusConflict, "链接标识已被占用")
	default:
		respondError(c, http.StatusInternalServerError, "保存新闻失败")
	}
}
