package i18n

// ZhCNMessages 简体中文消息目录
var ZhCNMessages = map[string]string{
	// UI (TUI) - 标签页
	"tab.studio":  "创作台",
	"tab.script":  "视频脚本",
	"tab.history": "历史",

	// UI (TUI 侧栏)
	"sidebar.agents":  "智能体",
	"sidebar.model":   "模型",
	"sidebar.storage": "存储",
	"sidebar.tokens":  "提示词 token",
	"sidebar.sample":  "示例数据",
	"sidebar.on":      "开",
	"sidebar.off":     "关",

	// UI - 表单
	"form.idea":     "内容想法",
	"form.type":     "内容类型",
	"form.notes":    "补充备注（可选）",
	"form.feedback": "修订反馈",

	// UI - 流水线状态
	"status.idle":        "输入内容想法开始创作",
	"status.generating":  "正在生成脚本...",
	"status.draft":       "草稿已就绪，可编辑、修订或批准。",
	"status.revising":    "正在修订脚本...",
	"status.approved":    "脚本已批准",
	"status.video_wait":  "正在生成视频脚本...",
	"status.video_ready": "视频脚本已就绪",

	// UI - 脚本面板
	"script.title":    "标题",
	"script.hook":     "开场钩子",
	"script.body":     "正文",
	"script.cta":      "行动号召",
	"script.duration": "预计时长",

	// UI - 视频脚本面板
	"video.total_duration": "总时长",
	"video.scene_count":    "场景数",
	"video.style":          "风格",
	"video.empty":          "先批准脚本，再生成视频脚本。",

	// UI - 历史
	"history.empty":   "暂无历史",
	"history.count":   "%d 条已保存会话",
	"history.reused":  "已从 %s 载入输入",
	"history.cleared": "历史已清空",

	// UI - 剪贴板
	"copy.hint": "复制",
	"copy.done": "已复制！",
	"copy.fail": "剪贴板错误：%s",
	"copy.none": "暂无可复制的脚本。",

	// UI - 快捷键 (TUI)
	"keys.tab":      "tab 切换",
	"keys.generate": "ctrl+g 生成",
	"keys.revise":   "ctrl+r 修订",
	"keys.approve":  "ctrl+a 批准",
	"keys.video":    "ctrl+v 视频脚本",
	"keys.copy":     "ctrl+y 复制",
	"keys.sample":   "ctrl+s 示例",
	"keys.quit":     "ctrl+c 退出",

	// 命令 (REPL)
	"cmd.generate": "根据当前想法生成脚本",
	"cmd.revise":   "按反馈修订草稿",
	"cmd.approve":  "批准草稿脚本",
	"cmd.video":    "生成视频制作脚本",
	"cmd.copy":     "把已批准脚本复制到剪贴板",
	"cmd.history":  "列出已保存会话",
	"cmd.show":     "查看一条已保存会话",
	"cmd.reuse":    "复用一条会话的输入",
	"cmd.clear":    "清空全部历史",
	"cmd.sample":   "切换示例数据模式",
	"cmd.idea":     "设置内容想法",
	"cmd.type":     "设置内容类型",
	"cmd.notes":    "设置补充备注",
	"cmd.edit":     "编辑草稿字段 (title/hook/body/cta)",
	"cmd.status":   "查看流水线状态",
	"cmd.help":     "显示可用命令",
	"cmd.quit":     "退出",

	// REPL
	"repl.welcome":  "UGC 创作台。输入 /help 查看命令。",
	"repl.goodbye":  "再见。",
	"repl.approved": "脚本已批准并存入历史。",
	"repl.updated":  "视频脚本已写入 %d 条历史。",

	// 错误
	"error.unknown_command": "未知命令：%s",
	"error.unknown_field":   "未知字段：%s",
	"error.missing_arg":     "缺少参数：%s",
	"error.not_found":       "未找到历史条目 %s",
}
