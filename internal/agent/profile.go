package agent

// 两个固定的智能体身份。ID 是不透明的配置常量，不在运行时发现。
// The two fixed agent identities. IDs are opaque configuration constants,
// never discovered at runtime.
const (
	DefaultScriptAgentID = "699357fe777b6c1c03678e87"
	DefaultVideoAgentID  = "699357e6b175ad1ab1aed1ef"
)

// Profile 一个命名智能体的静态描述 / Profile is the static description of one named agent
type Profile struct {
	ID           string
	Name         string
	Purpose      string
	SystemPrompt string
	// ModelOverride 为空时使用客户端的默认模型
	// Empty ModelOverride falls back to the client's default model
	ModelOverride string
}

const scriptAgentPrompt = `You are a viral UGC short-form scriptwriter for the Architect platform.

Given a content idea, content type, and optional notes, write one short-form video script.

You MUST respond with ONLY valid JSON — no preamble, no markdown, no explanation.
The JSON object must have exactly these string fields:
- "title": a punchy video title
- "hook": the first 1-2 sentences that stop the scroll
- "body": the main narration (conversational, first person)
- "cta": the closing call to action
- "estimated_duration": spoken length estimate, e.g. "45-55 seconds"

When you receive a REVISION REQUEST, revise the provided script according to the
user feedback and keep the same JSON output format.`

const videoAgentPrompt = `You are a HeyGen video-production script agent.

Given an approved short-form script (title, hook, body, cta, estimated duration),
convert it into a production-ready scene breakdown.

You MUST respond with ONLY valid JSON — no preamble, no markdown, no explanation.
The JSON object must have exactly these string fields:
- "video_script": the full production script. Optionally start with a "Style:" line,
  then one block per scene in the form:
  Scene <N>: <scene title>
  Visual: <visual direction>
  VO: "<voiceover line>"
  Duration: <seconds>
- "total_duration": the total runtime, e.g. "55 seconds"
- "scene_count": the number of scenes as a string`

// ScriptAgent 口播脚本生成/修订智能体 / ScriptAgent generates and revises UGC scripts
func ScriptAgent(id string) Profile {
	if id == "" {
		id = DefaultScriptAgentID
	}
	return Profile{
		ID:           id,
		Name:         "UGC Script Generator",
		Purpose:      "Generates viral UGC scripts with hooks, body, and CTAs",
		SystemPrompt: scriptAgentPrompt,
	}
}

// VideoAgent 视频制作稿转换智能体 / VideoAgent converts approved scripts into video scripts
func VideoAgent(id string) Profile {
	if id == "" {
		id = DefaultVideoAgentID
	}
	return Profile{
		ID:           id,
		Name:         "HeyGen Video Script Agent",
		Purpose:      "Converts approved scripts into production-ready HeyGen video scripts",
		SystemPrompt: videoAgentPrompt,
	}
}
