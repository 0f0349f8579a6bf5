package tui

import (
	"fmt"
	"strings"

	"studio/internal/history"
	"studio/internal/i18n"
	"studio/internal/script"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown 使用 Glamour 渲染 markdown 文本
// RenderMarkdown renders markdown text using Glamour
func RenderMarkdown(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimRight(rendered, "\n")
}

// ScriptMarkdown 把口播脚本展开为 markdown 文档
// ScriptMarkdown lays a script out as a markdown document
func ScriptMarkdown(title, hook, body, cta, duration string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**%s**\n\n%s\n\n", i18n.T("script.hook"), hook)
	fmt.Fprintf(&b, "**%s**\n\n%s\n\n", i18n.T("script.body"), body)
	fmt.Fprintf(&b, "**%s**\n\n%s\n\n", i18n.T("script.cta"), cta)
	if duration != "" {
		fmt.Fprintf(&b, "*%s: %s*\n", i18n.T("script.duration"), duration)
	}
	return b.String()
}

// BreakdownMarkdown 把视频制作稿的场景分解展开为 markdown 文档
// BreakdownMarkdown lays a video script's scene breakdown out as markdown
func BreakdownMarkdown(v script.VideoScript) string {
	breakdown := script.Segment(v.FullText)

	var b strings.Builder
	if v.TotalDuration != "" {
		fmt.Fprintf(&b, "**%s:** %s", i18n.T("video.total_duration"), v.TotalDuration)
		if v.SceneCount != "" {
			fmt.Fprintf(&b, " · **%s:** %s", i18n.T("video.scene_count"), v.SceneCount)
		}
		b.WriteString("\n\n")
	}
	if breakdown.StyleDirective != "" {
		fmt.Fprintf(&b, "*%s: %s*\n\n", i18n.T("video.style"), breakdown.StyleDirective)
	}
	for _, scene := range breakdown.Scenes {
		fmt.Fprintf(&b, "## Scene %d: %s\n\n", scene.Index, scene.Title)
		if scene.Visual != "" {
			fmt.Fprintf(&b, "- Visual: %s\n", scene.Visual)
		}
		if scene.Voiceover != "" {
			fmt.Fprintf(&b, "- VO: %s\n", scene.Voiceover)
		}
		if scene.Duration != "" {
			fmt.Fprintf(&b, "- Duration: %s\n", scene.Duration)
		}
		if scene.Other != "" {
			fmt.Fprintf(&b, "- %s\n", scene.Other)
		}
		b.WriteString("\n")
	}
	if len(breakdown.Scenes) == 0 && breakdown.StyleDirective == "" {
		b.WriteString(v.FullText)
		b.WriteString("\n")
	}
	return b.String()
}

// EntrySummary 历史列表里的一行摘要 / EntrySummary is one history list line
func EntrySummary(e history.Entry, theme Theme) string {
	badge := theme.BadgeDraftStyle.Render(string(e.Status))
	if e.Status == history.StatusVideoScriptGenerated {
		badge = theme.BadgeDoneStyle.Render(string(e.Status))
	}
	idea := e.ContentIdea
	if len(idea) > 60 {
		idea = idea[:57] + "..."
	}
	return fmt.Sprintf("%s  %s  %s %s", e.CreatedAt, badge, idea, theme.MutedStyle.Render("["+e.ContentType+"]"))
}

// EntryMarkdown 历史条目展开后的完整正文
// EntryMarkdown is a history entry's expanded body
func EntryMarkdown(e history.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s:** %s\n\n", i18n.T("form.idea"), e.ContentIdea)
	if e.Notes != "" {
		fmt.Fprintf(&b, "**%s:** %s\n\n", i18n.T("form.notes"), e.Notes)
	}
	if e.Script != nil {
		b.WriteString(ScriptMarkdown(e.Script.Title, e.Script.Hook, e.Script.Body, e.Script.CTA, e.Script.EstimatedDuration))
		b.WriteString("\n")
	}
	if e.VideoScript != nil && e.VideoScript.Generated() {
		b.WriteString("---\n\n")
		b.WriteString(BreakdownMarkdown(*e.VideoScript))
	}
	return b.String()
}
