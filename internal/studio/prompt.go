package studio

import (
	"fmt"
	"strings"

	"studio/internal/script"
)

// GeneratePrompt 首次生成的用户消息。备注为空时整段省略。侧栏用它
// 预估提示词开销。
// GeneratePrompt is the first-generation user message. Blank notes drop the
// whole section. The sidebar uses it to preview prompt cost.
func GeneratePrompt(contentType, idea, notes string) string {
	message := fmt.Sprintf("Content Type: %s\n\nContent Idea: %s", contentType, idea)
	if strings.TrimSpace(notes) != "" {
		message += fmt.Sprintf("\n\nAdditional Notes: %s", notes)
	}
	return message
}

// revisePrompt 修订请求携带当前（可能已手工编辑的）草稿全文与用户反馈。
// revisePrompt carries the current draft, hand edits included, plus the user
// feedback.
func revisePrompt(title, hook, body, cta, feedback string) string {
	return fmt.Sprintf(
		"REVISION REQUEST\n\nCurrent Script:\nTitle: %s\nHook: %s\nBody: %s\nCTA: %s\n\nUser Feedback: %s\n\nPlease revise the script based on the feedback above. Keep the same JSON output format.",
		title, hook, body, cta, feedback,
	)
}

// FormatScript 把脚本展平为纯文本，同时用作视频智能体的输入与剪贴板
// 导出格式。
// FormatScript flattens a script to plain text, used both as the video
// agent's input and as the clipboard export format.
func FormatScript(s script.Script) string {
	return fmt.Sprintf(
		"Title: %s\n\nHOOK:\n%s\n\nBODY:\n%s\n\nCTA:\n%s\n\nEstimated Duration: %s",
		s.Title, s.Hook, s.Body, s.CTA, s.EstimatedDuration,
	)
}
