package utils

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExcerptLength 列表页摘要长度（字符数）
const ExcerptLength = 120

// Excerpt 提取 HTML 正文的纯文本摘要
func Excerpt(content string, limit int) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}

	doc.Find("script, style").Remove()
	// 块级元素之间补空格，避免段落文字粘连
	doc.Find("p, div, br, li, h1, h2, h3, h4, h5, h6, blockquote, pre").AfterHtml(" ")

	text := strings.Join(strings.Fields(doc.Text()), " ")
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
