package i18n

// EnMessages English message catalog
var EnMessages = map[string]string{
	// UI (TUI) - Tabs
	"tab.studio":  "Studio",
	"tab.script":  "Video Script",
	"tab.history": "History",

	// UI (TUI sidebar)
	"sidebar.agents":  "Agents",
	"sidebar.model":   "Model",
	"sidebar.storage": "Storage",
	"sidebar.tokens":  "Prompt tokens",
	"sidebar.sample":  "Sample data",
	"sidebar.on":      "on",
	"sidebar.off":     "off",

	// UI - Form
	"form.idea":     "Content Idea",
	"form.type":     "Content Type",
	"form.notes":    "Additional Notes (optional)",
	"form.feedback": "Revision Feedback",

	// UI - Pipeline status
	"status.idle":        "Enter a content idea to get started",
	"status.generating":  "Generating script...",
	"status.draft":       "Draft ready. Edit, revise, or approve.",
	"status.revising":    "Revising script...",
	"status.approved":    "Script approved",
	"status.video_wait":  "Generating video script...",
	"status.video_ready": "Video script ready",

	// UI - Script panel
	"script.title":    "Title",
	"script.hook":     "Hook",
	"script.body":     "Body",
	"script.cta":      "CTA",
	"script.duration": "Estimated Duration",

	// UI - Video script panel
	"video.total_duration": "Total Duration",
	"video.scene_count":    "Scenes",
	"video.style":          "Style",
	"video.empty":          "Approve a script to generate the video script.",

	// UI - History
	"history.empty":   "No history yet",
	"history.count":   "%d saved sessions",
	"history.reused":  "Inputs loaded from %s",
	"history.cleared": "History cleared",

	// UI - Clipboard
	"copy.hint": "copy",
	"copy.done": "Copied!",
	"copy.fail": "Clipboard error: %s",
	"copy.none": "Nothing to copy yet.",

	// UI - Keybindings (TUI)
	"keys.tab":      "tab switch",
	"keys.generate": "ctrl+g generate",
	"keys.revise":   "ctrl+r revise",
	"keys.approve":  "ctrl+a approve",
	"keys.video":    "ctrl+v video script",
	"keys.copy":     "ctrl+y copy",
	"keys.sample":   "ctrl+s sample",
	"keys.quit":     "ctrl+c quit",

	// Commands (REPL)
	"cmd.generate": "Generate a script from the current idea",
	"cmd.revise":   "Revise the draft with feedback",
	"cmd.approve":  "Approve the draft script",
	"cmd.video":    "Generate the video production script",
	"cmd.copy":     "Copy the approved script to the clipboard",
	"cmd.history":  "List saved sessions",
	"cmd.show":     "Show one saved session",
	"cmd.reuse":    "Reuse a saved session's inputs",
	"cmd.clear":    "Clear all history",
	"cmd.sample":   "Toggle sample data mode",
	"cmd.idea":     "Set the content idea",
	"cmd.type":     "Set the content type",
	"cmd.notes":    "Set the additional notes",
	"cmd.edit":     "Edit a draft field (title/hook/body/cta)",
	"cmd.status":   "Show the pipeline state",
	"cmd.help":     "Show available commands",
	"cmd.quit":     "Exit",

	// REPL
	"repl.welcome":  "UGC Studio. Type /help for commands.",
	"repl.goodbye":  "Bye.",
	"repl.approved": "Script approved and saved to history.",
	"repl.updated":  "Video script saved to %d history entries.",

	// Errors
	"error.unknown_command": "Unknown command: %s",
	"error.unknown_field":   "Unknown field: %s",
	"error.missing_arg":     "Missing argument: %s",
	"error.not_found":       "No history entry %s",
}
