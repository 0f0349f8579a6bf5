package tokens

import (
	"strings"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// Estimator 口播时长与 token 估算器，tiktoken 不可用时回退到启发式。
// 侧栏用它在发送前预估提示词开销。
// Estimator estimates spoken length and token counts, falling back to a
// heuristic when tiktoken is unavailable. The sidebar uses it to preview
// prompt cost before sending.
type Estimator struct {
	encoder      *tiktoken.Tiktoken
	encodingName string
	fallback     bool
	mu           sync.RWMutex
}

var (
	defaultEstimator     *Estimator
	defaultEstimatorOnce sync.Once
)

// Default 返回全局默认估算器 / Default returns the global default estimator
func Default() *Estimator {
	defaultEstimatorOnce.Do(func() {
		defaultEstimator = New("cl100k_base")
	})
	return defaultEstimator
}

// New 创建估算器，tiktoken 初始化失败则回退到启发式
// New creates an estimator, falling back to the heuristic if tiktoken init fails
func New(encodingName string) *Estimator {
	e := &Estimator{encodingName: encodingName}

	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		// 离线环境可能没有 BPE 缓存 / Offline environments may lack the BPE cache
		e.fallback = true
		return e
	}
	e.encoder = enc
	return e
}

// ForModel 根据模型名自动选择编码 / ForModel auto-selects the encoding per model name
func ForModel(model string) *Estimator {
	return New(modelToEncoding(model))
}

// Count 计算单个文本的 token 数 / Count counts tokens for one text
func (e *Estimator) Count(text string) int {
	if text == "" {
		return 0
	}
	if e.fallback {
		return heuristicCount(text)
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.encoder.Encode(text, nil, nil))
}

// CountPrompt 计算一次 chat completion 的开销：系统与用户消息各带
// 约 4 token 的结构开销。
// CountPrompt estimates one chat completion's cost: system and user messages
// each carry about 4 tokens of structure overhead.
func (e *Estimator) CountPrompt(systemPrompt, userMessage string) int {
	return 8 + e.Count(systemPrompt) + e.Count(userMessage)
}

// IsPrecise 返回是否为精确计数 / IsPrecise reports whether counting is exact
func (e *Estimator) IsPrecise() bool {
	return !e.fallback
}

// EncodingName 返回编码名称 / EncodingName returns the encoding name
func (e *Estimator) EncodingName() string {
	return e.encodingName
}

// SpokenSeconds 按约 150 词/分钟估算口播秒数
// SpokenSeconds estimates spoken duration at roughly 150 words per minute
func SpokenSeconds(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	seconds := words * 60 / 150
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}

// heuristicCount 启发式 token 估算 / heuristicCount is the heuristic token estimate
func heuristicCount(text string) int {
	// CJK 字符通常 1-2 token/字, 英文约 4 chars/token
	// CJK characters are typically 1-2 tokens each, English ~4 chars/token
	cjkCount := 0
	asciiCount := 0
	for _, r := range text {
		if isCJK(r) {
			cjkCount++
		} else {
			asciiCount++
		}
	}
	estimate := int(float64(cjkCount)*1.5 + float64(asciiCount)*0.25)
	if estimate < 1 {
		estimate = 1
	}
	return estimate
}

func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || // CJK Unified
		(r >= 0x3400 && r <= 0x4DBF) || // CJK Extension A
		(r >= 0x3000 && r <= 0x303F) || // CJK Symbols
		(r >= 0xFF00 && r <= 0xFFEF) || // Fullwidth Forms
		(r >= 0xAC00 && r <= 0xD7AF) // Korean Hangul
}

// modelToEncoding 根据模型名推断编码 / modelToEncoding maps model name to encoding
func modelToEncoding(model string) string {
	m := strings.ToLower(strings.TrimSpace(model))
	switch {
	case m == "":
		return "cl100k_base"
	case strings.HasPrefix(m, "o1"), strings.HasPrefix(m, "o3"):
		return "o200k_base"
	case strings.HasPrefix(m, "gpt-4o"), strings.HasPrefix(m, "chatgpt-4o"):
		return "o200k_base"
	default:
		return "cl100k_base"
	}
}
