package utils

import "strings"

// ResolveKey 将图片引用（公开 URL 或对象键）还原为对象存储键。
// 不以公开地址开头的值原样返回（已经是键，或是历史遗留的外部 URL）。
func ResolveKey(publicBaseURL, raw string) string {
	if publicBaseURL == "" {
		return raw
	}
	for strings.HasPrefix(raw, publicBaseURL) {
		raw = raw[len(publicBaseURL):]
	}
	return raw
}

// PublicURL 根据对象键生成可直接展示的地址
func PublicURL(publicBaseURL, key string) string {
	if key == "" || IsAbsoluteURL(key) {
		return key
	}
	return publicBaseURL + key
}

// IsAbsoluteURL 判断是否为 http(s) 绝对地址
func IsAbsoluteURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
