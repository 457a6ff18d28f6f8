package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/farmgate/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// renderMarkdown 将正文 Markdown 渲染为净化后的 HTML。
func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return ""
	}
	return sanitizer.Sanitize(buf.String())
}

// PublicListNews 公开新闻列表
func (a *API) PublicListNews(c *gin.Context) {
	filter := service.NewsFilter{
		Search:  c.Query("search"),
		Page:    parsePositiveInt(c.DefaultQuery("page", "1"), 1),
		PerPage: parsePositiveInt(c.DefaultQuery("per_page", "9"), 9),
	}

	result, err := a.news.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取新闻失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       result.Items,
		"total":       result.Total,
		"page":        result.Page,
		"total_pages": result.TotalPages,
	})
}

// PublicGetNews 公开新闻详情，按 slug 查找并附带渲染后的正文
func (a *API) PublicGetNews(c *gin.Context) {
	item, err := a.news.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNewsNotFound) {
			respondError(c, http.StatusNotFound, "新闻不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取新闻失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item":         item,
		"content_html": renderMarkdown(item.Content),
	})
}

// PublicListBlogs 公开博客列表
func (a *API) PublicListBlogs(c *gin.Context) {
	filter := service.BlogFilter{
		Search:  c.Query("search"),
		Page:    parsePositiveInt(c.DefaultQuery("page", "1"), 1),
		PerPage: parsePositiveInt(c.DefaultQuery("per_page", "9"), 9),
	}

	result, err := a.blogs.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取博客失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       result.Items,
		"total":       result.Total,
		"page":        result.Page,
		"total_pages": result.TotalPages,
	})
}

// PublicGetBlog 公开博客详情，按 slug 查找并附带渲染后的正文
func (a *API) PublicGetBlog(c *gin.Context) {
	item, err := a.blogs.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrBlogNotFound) {
			respondError(c, http.StatusNotFound, "博客不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取博客失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item":         item,
		"content_html": renderMarkdown(item.Content),
	})
}
