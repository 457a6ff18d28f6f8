// Package util 提供通用工具函数，目前包含 URL slug 生成与校验。
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// slugRegex 匹配除小写字母、数字与连字符外的字符
	slugRegex = regexp.MustCompile(`[^a-z0-9-]+`)
	// multipleHyphens 匹配连续出现的连字符
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify 将任意标题转换为 URL 友好的 slug：
// 小写化、去除重音符号、空白转连字符、剔除其余非法字符并折叠多余连字符。
// 对仅含符号的输入返回空字符串，重复调用结果不变。
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = strings.ReplaceAll(result, " ", "-")
	result = slugRegex.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

// IsValidSlug 判断字符串是否为合法 slug。
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	return !strings.Contains(s, "--")
}
