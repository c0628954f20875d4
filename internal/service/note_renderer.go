package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	noteMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	noteSanitizer = bluemonday.UGCPolicy()
)

// RenderNote 将打卡备注从 Markdown 渲染为净化后的 HTML
// 备注来自用户输入，渲染结果必须经过白名单过滤才能进入 API 响应
func RenderNote(markdown string) (string, error) {
	trimmed := strings.TrimSpace(markdown)
	if trimmed == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := noteMarkdown.Convert([]byte(trimmed), &buf); err != nil {
		return "", fmt.Errorf("render note markdown: %w", err)
	}

	return noteSanitizer.Sanitize(buf.String()), nil
}
