// Package storage 提供图片对象的保存、公开访问链接生成与尽力而为的删除。
package storage

import (
	"context"
	"errors"
	"io"
)

// MaxUploadSize 是单个上传文件的字节数上限（5MB）。
const MaxUploadSize = 5 << 20

var (
	// ErrFileTooLarge 在文件超出 MaxUploadSize 时返回
	ErrFileTooLarge = errors.New("upload exceeds size limit")
	// ErrUnsupportedType 在文件不是 jpeg/png/webp 时返回
	ErrUnsupportedType = errors.New("unsupported image type")
	// ErrInvalidImage 在文件无法按图片解码时返回
	ErrInvalidImage = errors.New("invalid image data")
)

// Upload 描述一次待保存的上传。
type Upload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// Result 描述保存成功后的对象信息。
type Result struct {
	URL    string
	Width  int
	Height int
}

// Store 抽象对象存储，方便测试替换实现。
type Store interface {
	// Save 校验并持久化上传内容，返回可公开访问的 URL。
	Save(ctx context.Context, upload Upload) (*Result, error)
	// Remove 删除此前由 Save 生成的对象。调用方按尽力而为处理失败。
	Remove(ctx context.Context, url string) error
	// Owns 判断 URL 是否指向本存储管理的对象。
	Owns(url string) bool
}
