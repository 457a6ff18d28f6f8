package handler

import (
	"net/http"
	"strings"

	"github.com/farmgate/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionKeyAdminID    = "admin_id"
	sessionKeyAdminEmail = "admin_email"
)

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type credentialsPayload struct {
	CurrentPassword string `json:"current_password"`
	Email           string `json:"email"`
	NewPassword     string `json:"new_password"`
}

// Login 处理管理员登录请求
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))

	// 查找管理员
	var admin db.AdminUser
	if err := a.db.Where("email = ?", email).First(&admin).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "邮箱或密码错误")
		return
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(payload.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "邮箱或密码错误")
		return
	}

	// 设置会话
	session := sessions.Default(c)
	session.Set(sessionKeyAdminID, admin.ID)
	session.Set(sessionKeyAdminEmail, admin.Email)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "email": admin.Email})
}

// Logout 处理管理员登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateCredentials 修改管理员邮箱或密码，需先校验当前密码
// 修改成功后清除会话，要求重新登录
func (a *API) UpdateCredentials(c *gin.Context) {
	var payload credentialsPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	session := sessions.Default(c)
	adminID, ok := session.Get(sessionKeyAdminID).(uint)
	if !ok {
		respondError(c, http.StatusUnauthorized, "会话已失效")
		return
	}

	var admin db.AdminUser
	if err := a.db.First(&admin, adminID).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "会话已失效")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(payload.CurrentPassword)); err != nil {
		respondError(c, http.StatusUnauthorized, "当前密码错误")
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if email != "" {
		admin.Email = email
	}
	if newPassword := strings.TrimSpace(payload.NewPassword); newPassword != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "密码加密失败")
			return
		}
		admin.Password = string(hashed)
	}

	if err := a.db.Save(&admin).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "更新凭据失败")
		return
	}

	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AuthRequired 是一个简单的认证中间件
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(sessionKeyAdminID) == nil {
			respondError(c, http.StatusUnauthorized, "请先登录")
			c.Abort()
			return
		}
		c.Next()
	}
}
