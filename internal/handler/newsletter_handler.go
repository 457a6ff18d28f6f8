package handler

import (
	"errors"
	"net/http"

	"github.com/farmgate/internal/service"
	"github.com/gin-gonic/gin"
)

type newsletterPayload struct {
	Email string `json:"email"`
}

// SubscribeNewsletter 处理公开订阅表单提交
func (a *API) SubscribeNewsletter(c *gin.Context) {
	var payload newsletterPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	item, err := a.subscribers.Subscribe(payload.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubscriberInvalidEmail):
			respondError(c, http.StatusBadRequest, "邮箱格式不正确")
		case errors.Is(err, service.ErrAlreadySubscribed):
			respondError(c, http.StatusConflict, "该邮箱已订阅")
		default:
			respondError(c, http.StatusInternalServerError, "订阅失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "email": item.Email})
}

// ListSubscribers 获取订阅者列表（后台）
func (a *API) ListSubscribers(c *gin.Context) {
	page := parsePositiveInt(c.DefaultQuery("page", "1"), 1)
	perPage := parsePositiveInt(c.DefaultQuery("per_page", "50"), 50)

	result, err := a.subscribers.List(page, perPage)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取订阅者列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       result.Items,
		"total":       result.Total,
		"page":        result.Page,
		"total_pages": result.TotalPages,
	})
}

// RemoveSubscriber 删除订阅者（后台）
func (a *API) RemoveSubscriber(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的订阅者ID")
		return
	}

	if err := a.subscribers.Remove(id); err != nil {
		if errors.Is(err, service.ErrSubscriberNotFound) {
			respondError(c, http.StatusNotFound, "订阅者不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除订阅者失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListDeliveries 查看通知投递结果（后台），可按状态过滤
func (a *API) ListDeliveries(c *gin.Context) {
	filter := service.DeliveryFilter{
		Status:  c.Query("status"),
		Page:    parsePositiveInt(c.DefaultQuery("page", "1"), 1),
		PerPage: parsePositiveInt(c.DefaultQuery("per_page", "50"), 50),
	}

	result, err := a.deliveries.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取投递记录失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       result.Items,
		"total":       result.Total,
		"sent":        result.SentCount,
		"dead":        result.DeadCount,
		"page":        result.Page,
		"total_pages": result.TotalPages,
	})
}
