package agent

import "context"

// Response 智能体回复的载荷信封 / Response is the agent reply payload envelope
type Response struct {
	// Result 是不透明载荷：通常是一段包含 JSON 的文本
	// Result is the opaque payload, usually text containing JSON
	Result any `json:"result"`
}

// Result 一次智能体调用的结果信封：要么成功携带载荷，要么失败携带消息
// Result is the envelope of one agent invocation: success with a payload or
// failure with a message
type Result struct {
	Success  bool      `json:"success"`
	Response *Response `json:"response,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Client 外部智能体调用边界。实现只负责单次调用并如实报告成败，
// 不重试、不解析、不校验。
// Client is the external agent invocation boundary. Implementations perform
// exactly one call and report raw success/failure: no retry, no parsing, no
// validation.
type Client interface {
	Invoke(ctx context.Context, message, agentID string) Result
}

// ClientFunc 函数式 Client 适配器 / ClientFunc adapts a function to Client
type ClientFunc func(ctx context.Context, message, agentID string) Result

func (f ClientFunc) Invoke(ctx context.Context, message, agentID string) Result {
	return f(ctx, message, agentID)
}
