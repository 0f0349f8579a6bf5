package script

import "encoding/json"

// DefaultTitle 缺失标题时的兜底值
// DefaultTitle is the fallback when the agent reply carries no title
const DefaultTitle = "Untitled Script"

// Coerce 将智能体的原始回复规整为 Script。回复可能是 JSON 对象，
// 也可能是包含 JSON 的字符串；无法解析或不是对象时返回 nil。
// 所有字段缺失/类型不符都回落为空串（标题回落为 DefaultTitle），
// 绝不 panic，下游永远拿不到未定义字段。
// Coerce normalizes a raw agent payload into a Script. The payload may be a
// JSON object or a string containing JSON; unparseable or non-object input
// yields nil. Missing or non-string fields default to "" (title defaults to
// DefaultTitle).
func Coerce(payload any) *Script {
	obj, ok := toObject(payload)
	if !ok {
		return nil
	}
	return &Script{
		Hook:              stringField(obj, "hook", ""),
		Body:              stringField(obj, "body", ""),
		CTA:               stringField(obj, "cta", ""),
		Title:             stringField(obj, "title", DefaultTitle),
		EstimatedDuration: stringField(obj, "estimated_duration", ""),
	}
}

// CoerceVideo 将原始回复规整为 VideoScript。与 Coerce 不同，它从不返回
// nil：缺失字段直接回落为空串，FullText 是否为空由调用方判定成败。
// CoerceVideo normalizes a raw agent payload into a VideoScript. Unlike
// Coerce it never signals failure itself: missing fields default to "" and
// the caller decides success by whether FullText is non-empty.
func CoerceVideo(payload any) VideoScript {
	obj, ok := toObject(payload)
	if !ok {
		return VideoScript{}
	}
	return VideoScript{
		FullText:      stringField(obj, "video_script", ""),
		TotalDuration: stringField(obj, "total_duration", ""),
		SceneCount:    stringField(obj, "scene_count", ""),
	}
}

func toObject(payload any) (map[string]any, bool) {
	switch v := payload.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return v, true
	case string:
		var parsed any
		if err := json.Unmarshal([]byte(v), &parsed); err != nil {
			return nil, false
		}
		obj, ok := parsed.(map[string]any)
		return obj, ok
	default:
		return nil, false
	}
}

func stringField(obj map[string]any, key, fallback string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return fallback
}
