package handler

import (
	"errors"
	"net/http"

	"github.com/farmgate/internal/service"
	"github.com/gin-gonic/gin"
)

type leaderPayload struct {
	Name         string `json:"name"`
	Position     string `json:"position"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	Phone        string `json:"phone"`
	LinkedinLink string `json:"linkedin_link"`
	TwitterLink  string `json:"twitter_link"`
	IsCEO        bool   `json:"is_ceo"`
	DisplayOrder int    `json:"display_order"`
}

func (p leaderPayload) toInput() service.LeaderInput {
	return service.LeaderInput{
		Name:         p.Name,
		Position:     p.Position,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		Phone:        p.Phone,
		LinkedinLink: p.LinkedinLink,
		TwitterLink:  p.TwitterLink,
		IsCEO:        p.IsCEO,
		DisplayOrder: p.DisplayOrder,
	}
}

// ListLeaders 获取管理团队列表
func (a *API) ListLeaders(c *gin.Context) {
	items, err := a.leaders.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取团队列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetLeader 获取单个团队成员
func (a *API) GetLeader(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的成员ID")
		return
	}

	item, err := a.leaders.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrLeaderNotFound) {
			respondError(c, http.StatusNotFound, "成员不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取成员失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// CreateLeader 新增团队成员
func (a *API) CreateLeader(c *gin.Context) {
	var payload leaderPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	item, err := a.leaders.Create(payload.toInput())
	if err != nil {
		if errors.Is(err, service.ErrLeaderInvalidInput) {
			respondError(c, http.StatusBadRequest, "请填写成员姓名与职位")
			return
		}
		respondError(c, http.StatusInternalServerError, "创建成员失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}

// UpdateLeader 更新团队成员
func (a *API) UpdateLeader(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的成员ID")
		return
	}

	var payload leaderPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	item, err := a.leaders.Update(id, payload.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLeaderNotFound):
			respondError(c, http.StatusNotFound, "成员不存在")
		case errors.Is(err, service.ErrLeaderInvalidInput):
			respondError(c, http.StatusBadRequest, "请填写成员姓名与职位")
		default:
			respondError(c, http.StatusInternalServerError, "更新成员失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}

// DeleteLeader 删除团队成员
func (a *API) DeleteLeader(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的成员ID")
		return
	}

	if err := a.leaders.Delete(id); err != nil {
		if errors.Is(err, service.ErrLeaderNotFound) {
			respondError(c, http.StatusNotFound, "成员不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除成员失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
