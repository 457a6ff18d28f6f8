package handler

import (
	"errors"
	"net/http"

	"github.com/farmgate/internal/storage"
	"github.com/gin-gonic/gin"
)

// UploadImage 处理图片上传请求
// 大小与类型在服务端按文件内容校验，不信任客户端声明
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "未找到上传的图片")
		return
	}

	if file.Size > storage.MaxUploadSize {
		respondError(c, http.StatusBadRequest, "图片大小不能超过5MB")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "读取上传文件失败")
		return
	}
	defer src.Close()

	result, err := a.store.Save(c.Request.Context(), storage.Upload{
		Filename: file.Filename,
		Size:     file.Size,
		Reader:   src,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			respondError(c, http.StatusBadRequest, "图片大小不能超过5MB")
		case errors.Is(err, storage.ErrUnsupportedType):
			respondError(c, http.StatusBadRequest, "仅支持 JPEG、PNG、WebP 格式")
		case errors.Is(err, storage.ErrInvalidImage):
			respondError(c, http.StatusBadRequest, "图片内容无法解析")
		default:
			respondError(c, http.StatusInternalServerError, "保存文件失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     result.URL,
		"width":   result.Width,
		"height":  result.Height,
	})
}
