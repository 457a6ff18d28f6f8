package handler

import (
	"errors"
	"net/http"

	"github.com/farmgate/internal/service"
	"github.com/gin-gonic/gin"
)

type galleryPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
}

func (p galleryPayload) toInput() service.GalleryInput {
	return service.GalleryInput{
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
	}
}

// ListGalleryImages 获取相册图片列表，支持分类与关键词过滤
func (a *API) ListGalleryImages(c *gin.Context) {
	filter := service.GalleryFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Page:     parsePositiveInt(c.DefaultQuery("page", "1"), 1),
		PerPage:  parsePositiveInt(c.DefaultQuery("per_page", "12"), 12),
	}

	result, err := a.galleries.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取相册失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       result.Items,
		"total":       result.Total,
		"page":        result.Page,
		"total_pages": result.TotalPages,
		"categories":  service.GalleryCategories,
	})
}

// CreateGalleryImage 新增相册图片
func (a *API) CreateGalleryImage(c *gin.Context) {
	var payload galleryPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	item, err := a.galleries.Create(payload.toInput())
	if err != nil {
		respondGalleryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}

// UpdateGalleryImage 更新相册图片
func (a *API) UpdateGalleryImage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的图片ID")
		return
	}

	var payload galleryPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	item, err := a.galleries.Update(id, payload.toInput())
	if err != nil {
		respondGalleryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}

// DeleteGalleryImage 删除相册图片
func (a *API) DeleteGalleryImage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的图片ID")
		return
	}

	if err := a.galleries.Delete(id); err != nil {
		if errors.Is(err, service.ErrGalleryNotFound) {
			respondError(c, http.StatusNotFound, "图片不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除图片失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondGalleryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGalleryNotFound):
		respondError(c, http.StatusNotFound, "图片不存在")
	case errors.Is(err, service.ErrGalleryTitleRequired):
		respondError(c, http.StatusBadRequest, "请填写图片标题")
	case errors.Is(err, service.ErrGalleryImageMissing):
		respondError(c, http.StatusBadRequest, "请上传图片")
	case errors.Is(err, service.ErrGalleryCategoryInvalid):
		respondError(c, http.StatusBadRequest, "图片分类无效")
	default:
		respondError(c, http.StatusInternalServerError, "保存图片失败")
	}
}
