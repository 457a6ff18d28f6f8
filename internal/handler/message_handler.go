package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/farmgate/internal/service"
	"github.com/gin-gonic/gin"
)

type contactPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SubmitContact 处理公开联系表单提交
// 留言先落库，再尽力通过转发服务抄送站点邮箱，转发失败不影响提交结果
func (a *API) SubmitContact(c *gin.Context) {
	var payload contactPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	item, err := a.messages.Create(service.MessageInput{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Subject: payload.Subject,
		Message: payload.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMessageInvalidInput):
			respondError(c, http.StatusBadRequest, "请填写姓名、主题与留言内容")
		case errors.Is(err, service.ErrMessageInvalidEmail):
			respondError(c, http.StatusBadRequest, "邮箱格式不正确")
		default:
			respondError(c, http.StatusInternalServerError, "提交留言失败")
		}
		return
	}

	if a.relay != nil && a.relay.Enabled() {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()

			if err := a.relay.Forward(ctx, map[string]string{
				"from_name":  item.Name,
				"from_email": item.Email,
				"phone":      item.Phone,
				"subject":    item.Subject,
				"message":    item.Message,
			}); err != nil {
				log.Printf("contact: relay forward for message %d failed: %v", item.ID, err)
			}
		}()
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListMessages 获取留言列表（后台）
func (a *API) ListMessages(c *gin.Context) {
	filter := service.MessageFilter{
		Status:  c.Query("status"),
		Page:    parsePositiveInt(c.DefaultQuery("page", "1"), 1),
		PerPage: parsePositiveInt(c.DefaultQuery("per_page", "20"), 20),
	}

	result, err := a.messages.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取留言列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       result.Items,
		"total":       result.Total,
		"unread":      result.Unread,
		"page":        result.Page,
		"total_pages": result.TotalPages,
	})
}

// MarkMessageRead 将留言标记为已读，重复调用结果不变
func (a *API) MarkMessageRead(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的留言ID")
		return
	}

	item, err := a.messages.MarkRead(id)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			respondError(c, http.StatusNotFound, "留言不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "更新留言状态失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}

// DeleteMessage 删除留言
func (a *API) DeleteMessage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的留言ID")
		return
	}

	if err := a.messages.Delete(id); err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			respondError(c, http.StatusNotFound, "留言不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除留言失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
