package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

// allowedTypes 列出接受的图片 MIME 类型及其落盘扩展名。
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// LocalStore 将图片保存到本地目录并以静态路径对外提供。
type LocalStore struct {
	dir     string
	urlPath string
}

// NewLocalStore 构造 LocalStore。urlPath 为对外访问前缀，如 /static/uploads。
func NewLocalStore(dir, urlPath string) *LocalStore {
	return &LocalStore{
		dir:     dir,
		urlPath: strings.TrimRight(urlPath, "/"),
	}
}

// Save 校验大小与真实类型后写入磁盘。
// 文件名由日期加随机 UUID 组成，避免覆盖已有对象。
func (s *LocalStore) Save(_ context.Context, upload Upload) (*Result, error) {
	if upload.Size > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	// 读入内容时再次限制大小，防止声明值与实际不符
	data, err := io.ReadAll(io.LimitReader(upload.Reader, MaxUploadSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	// 按内容嗅探类型，不信任客户端声明的 Content-Type
	contentType := http.DetectContentType(data)
	ext, ok := allowedTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedType
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidImage
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return nil, err
	}

	return &Result{
		URL:    s.urlPath + "/" + filename,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// Remove 删除本存储管理的对象；非本存储的 URL 直接忽略。
func (s *LocalStore) Remove(_ context.Context, url string) error {
	if !s.Owns(url) {
		return nil
	}

	filename := path.Base(url)
	if filename == "." || filename == "/" {
		return nil
	}

	if err := os.Remove(filepath.Join(s.dir, filename)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Owns 通过 URL 前缀判断对象归属。
func (s *LocalStore) Owns(url string) bool {
	return strings.HasPrefix(url, s.urlPath+"/")
}
