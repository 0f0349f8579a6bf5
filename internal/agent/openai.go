package agent

import (
	"context"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig OpenAI 兼容端点的连接配置
// OpenAIConfig configures the OpenAI-compatible endpoint
type OpenAIConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	TimeoutMS int
}

// OpenAIClient 使用 go-openai SDK 的 Client 实现。agentID 选择一个已注册
// 的智能体档案（系统提示词 + 可选模型覆盖），一次 Invoke 恰好发起一次
// chat completion 调用。
// OpenAIClient implements Client using the go-openai SDK. The agentID selects
// a registered agent profile (system prompt + optional model override); one
// Invoke performs exactly one chat completion call.
type OpenAIClient struct {
	client   *openai.Client
	model    string
	profiles map[string]Profile
}

// NewOpenAIClient 创建 SDK 客户端并注册智能体档案
// NewOpenAIClient creates the SDK client and registers agent profiles
func NewOpenAIClient(cfg OpenAIConfig, profiles ...Profile) *OpenAIClient {
	sdkConfig := openai.DefaultConfig(cfg.APIKey)
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		sdkConfig.BaseURL = base
	}

	httpClient := &http.Client{}
	if cfg.TimeoutMS > 0 {
		httpClient.Timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	sdkConfig.HTTPClient = httpClient

	byID := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}
	return &OpenAIClient{
		client:   openai.NewClientWithConfig(sdkConfig),
		model:    cfg.Model,
		profiles: byID,
	}
}

// Profiles 返回已注册的智能体档案（按注册顺序无保证）
// Profiles returns the registered agent profiles (order not guaranteed)
func (c *OpenAIClient) Profiles() []Profile {
	out := make([]Profile, 0, len(c.profiles))
	for _, p := range c.profiles {
		out = append(out, p)
	}
	return out
}

// Invoke 单次调用指定智能体 / Invoke performs one call to the named agent
func (c *OpenAIClient) Invoke(ctx context.Context, message, agentID string) Result {
	profile, ok := c.profiles[agentID]
	if !ok {
		return Result{Success: false, Error: "unknown agent: " + agentID}
	}

	model := profile.ModelOverride
	if model == "" {
		model = c.model
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: profile.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	if len(resp.Choices) == 0 {
		return Result{Success: false, Error: "agent returned an empty reply"}
	}

	// 回复文本原样作为不透明载荷，由上层矫正器解析
	// The reply text is the opaque payload; the coercer upstream parses it
	return Result{
		Success:  true,
		Response: &Response{Result: resp.Choices[0].Message.Content},
	}
}
