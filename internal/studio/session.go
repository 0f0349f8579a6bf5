package studio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"studio/internal/agent"
	"studio/internal/history"
	"studio/internal/script"
)

// Phase 会话所处的流水线阶段 / Phase is the pipeline stage the session is in
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseGenerating
	PhaseDraft
	PhaseRevising
	PhaseApproved
	PhaseGeneratingVideo
	PhaseVideoReady
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseGenerating:
		return "generating"
	case PhaseDraft:
		return "draft"
	case PhaseRevising:
		return "revising"
	case PhaseApproved:
		return "approved"
	case PhaseGeneratingVideo:
		return "generatingVideoScript"
	case PhaseVideoReady:
		return "videoScriptGenerated"
	default:
		return "unknown"
	}
}

// Busy 报告该阶段是否有调用在途 / Busy reports whether a call is in flight
func (p Phase) Busy() bool {
	return p == PhaseGenerating || p == PhaseRevising || p == PhaseGeneratingVideo
}

// ContentTypes 可选的内容类型，General 为默认
// ContentTypes are the selectable content types; General is the default
var ContentTypes = []string{"Case Study", "Educational", "How-To", "Use Case", "General"}

const DefaultContentType = "General"

// 前置条件错误，直接作为用户可见文案
// Precondition errors, surfaced to the user verbatim
var (
	ErrNoIdea      = errors.New("Please enter a content idea first.")
	ErrNoFeedback  = errors.New("Please enter revision feedback first.")
	ErrNotDraft    = errors.New("Only a draft script can be revised or approved.")
	ErrNotApproved = errors.New("Approve the script before generating a video script.")
	ErrBusy        = errors.New("Another request is already running.")
)

// 每种操作的失败文案 / Per-operation failure wording
var (
	generateMsgs = agent.Messages{
		TransportFallback: "Failed to generate script.",
		ParseFailure:      "Could not parse script response.",
	}
	reviseMsgs = agent.Messages{
		TransportFallback: "Failed to revise script.",
		ParseFailure:      "Could not parse revised script response.",
	}
	videoMsgs = agent.Messages{
		TransportFallback: "Failed to generate video script.",
		ParseFailure:      "Video script was empty.",
	}
)

// Options 组装一个会话所需的依赖 / Options carries a session's dependencies
type Options struct {
	Client        agent.Client
	History       *history.Store
	ScriptAgentID string
	VideoAgentID  string
	Retry         agent.RetryOptions
}

// Session 单个创作会话的状态机：想法 → 草稿 → （修订循环）→ 批准 →
// 视频制作稿。两个前端共享同一个实例；所有读写都经互斥锁，智能体调用
// 在锁外进行，调用期间由 Busy 阶段挡住并发操作。
// Session is the state machine for one authoring session: idea to draft,
// through the revision loop, to approval and the production video script.
// Both frontends share one instance; all access goes through the mutex, and
// agent calls run outside the lock with the Busy phase blocking concurrent
// operations.
type Session struct {
	mu   sync.Mutex
	opts Options

	phase       Phase
	idea        string
	contentType string
	notes       string
	feedback    string

	// 草稿的可编辑副本；批准时快照回 script
	// The draft's editable copies, snapshotted back into script on approval
	title, hook, body, cta string

	script  *script.Script
	video   script.VideoScript
	lastErr string
}

func NewSession(opts Options) *Session {
	if opts.ScriptAgentID == "" {
		opts.ScriptAgentID = agent.DefaultScriptAgentID
	}
	if opts.VideoAgentID == "" {
		opts.VideoAgentID = agent.DefaultVideoAgentID
	}
	return &Session{
		opts:        opts,
		contentType: DefaultContentType,
	}
}

// View 渲染用的一致性快照 / View is a consistent snapshot for rendering
type View struct {
	Phase       Phase
	Idea        string
	ContentType string
	Notes       string
	Feedback    string

	HasScript         bool
	Title             string
	Hook              string
	Body              string
	CTA               string
	EstimatedDuration string

	Video script.VideoScript
	Err   string
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		Phase:       s.phase,
		Idea:        s.idea,
		ContentType: s.contentType,
		Notes:       s.notes,
		Feedback:    s.feedback,
		Video:       s.video,
		Err:         s.lastErr,
	}
	if s.script != nil {
		v.HasScript = true
		v.Title = s.title
		v.Hook = s.hook
		v.Body = s.body
		v.CTA = s.cta
		v.EstimatedDuration = s.script.EstimatedDuration
	}
	return v
}

func (s *Session) SetIdea(idea string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idea = idea
}

// SetContentType 仅接受已知类型 / SetContentType accepts known types only
func (s *Session) SetContentType(ct string) error {
	for _, known := range ContentTypes {
		if strings.EqualFold(known, strings.TrimSpace(ct)) {
			s.mu.Lock()
			s.contentType = known
			s.mu.Unlock()
			return nil
		}
	}
	return fmt.Errorf("unknown content type %q", ct)
}

func (s *Session) SetNotes(notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = notes
}

func (s *Session) SetFeedback(feedback string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback = feedback
}

// 草稿编辑器，仅在草稿阶段生效 / Draft editors, effective in the draft phase only
func (s *Session) SetTitle(v string) { s.editField(&s.title, v) }
func (s *Session) SetHook(v string)  { s.editField(&s.hook, v) }
func (s *Session) SetBody(v string)  { s.editField(&s.body, v) }
func (s *Session) SetCTA(v string)   { s.editField(&s.cta, v) }

func (s *Session) editField(field *string, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseDraft {
		return
	}
	*field = value
}

// ClearError 清除上一条用户可见错误 / ClearError drops the last user-visible error
func (s *Session) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

// Generate 从想法生成脚本。成功后进入草稿阶段并填充可编辑字段。
// Generate turns the idea into a script. Success enters the draft phase and
// fills the editable fields.
func (s *Session) Generate(ctx context.Context) error {
	s.mu.Lock()
	if s.phase.Busy() {
		s.mu.Unlock()
		return ErrBusy
	}
	if strings.TrimSpace(s.idea) == "" {
		s.lastErr = ErrNoIdea.Error()
		s.mu.Unlock()
		return ErrNoIdea
	}
	prev := s.phase
	s.phase = PhaseGenerating
	s.lastErr = ""
	message := GeneratePrompt(s.contentType, s.idea, s.notes)
	s.mu.Unlock()

	generated, err := agent.Call(ctx, s.opts.Client, message, s.opts.ScriptAgentID,
		coerceScript, generateMsgs, s.opts.Retry)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.phase = prev
		s.lastErr = err.Error() + " Please try again."
		return err
	}
	s.adoptDraft(generated)
	return nil
}

// Revise 用当前编辑内容与反馈重新生成草稿；反馈在成功后清空。
// Revise regenerates the draft from the current edits and the feedback; the
// feedback clears on success.
func (s *Session) Revise(ctx context.Context) error {
	s.mu.Lock()
	if s.phase.Busy() {
		s.mu.Unlock()
		return ErrBusy
	}
	if s.phase != PhaseDraft || s.script == nil {
		s.mu.Unlock()
		return ErrNotDraft
	}
	if strings.TrimSpace(s.feedback) == "" {
		s.lastErr = ErrNoFeedback.Error()
		s.mu.Unlock()
		return ErrNoFeedback
	}
	s.phase = PhaseRevising
	s.lastErr = ""
	message := revisePrompt(s.title, s.hook, s.body, s.cta, s.feedback)
	s.mu.Unlock()

	revised, err := agent.Call(ctx, s.opts.Client, message, s.opts.ScriptAgentID,
		coerceScript, reviseMsgs, s.opts.Retry)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.phase = PhaseDraft
		s.lastErr = err.Error() + " Please try again."
		return err
	}
	s.adoptDraft(revised)
	s.feedback = ""
	return nil
}

// Approve 把编辑字段快照回脚本，头插一条已批准的历史会话。
// Approve snapshots the edits back into the script and prepends an approved
// session to the history.
func (s *Session) Approve() (history.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase.Busy() {
		return history.Entry{}, ErrBusy
	}
	if s.phase != PhaseDraft || s.script == nil {
		return history.Entry{}, ErrNotDraft
	}

	s.script.Title = s.title
	s.script.Hook = s.hook
	s.script.Body = s.body
	s.script.CTA = s.cta
	s.phase = PhaseApproved
	s.lastErr = ""

	snapshot := *s.script
	entry := history.Entry{
		ID:          history.NewID(),
		ContentIdea: s.idea,
		ContentType: s.contentType,
		Notes:       s.notes,
		Script:      &snapshot,
		Status:      history.StatusApproved,
	}
	s.opts.History.Append(entry)
	return entry, nil
}

// GenerateVideo 把已批准脚本交给视频智能体，成功后把视频稿写回所有
// 同想法的已批准历史条目，返回更新条数。
// GenerateVideo hands the approved script to the video agent. Success writes
// the video script back into every approved history entry with the same idea
// and returns the update count.
func (s *Session) GenerateVideo(ctx context.Context) (int, error) {
	s.mu.Lock()
	if s.phase.Busy() {
		s.mu.Unlock()
		return 0, ErrBusy
	}
	if s.phase != PhaseApproved || s.script == nil {
		s.mu.Unlock()
		return 0, ErrNotApproved
	}
	s.phase = PhaseGeneratingVideo
	s.lastErr = ""
	message := FormatScript(*s.script)
	idea := s.idea
	s.mu.Unlock()

	video, err := agent.Call(ctx, s.opts.Client, message, s.opts.VideoAgentID,
		coerceVideo, videoMsgs, s.opts.Retry)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.phase = PhaseApproved
		s.lastErr = err.Error() + " Please try again."
		return 0, err
	}

	s.video = video
	s.phase = PhaseVideoReady
	count := s.opts.History.UpdateMatching(
		func(e history.Entry) bool {
			return e.ContentIdea == idea && e.Status == history.StatusApproved
		},
		func(e *history.Entry) {
			v := video
			e.VideoScript = &v
			e.Status = history.StatusVideoScriptGenerated
		},
	)
	return count, nil
}

// Reset 清空会话回到空白表单 / Reset returns the session to a blank form
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase.Busy() {
		return
	}
	s.phase = PhaseIdle
	s.idea = ""
	s.contentType = DefaultContentType
	s.notes = ""
	s.feedback = ""
	s.title, s.hook, s.body, s.cta = "", "", "", ""
	s.script = nil
	s.video = script.VideoScript{}
	s.lastErr = ""
}

// ReuseIdea 把一条历史会话的输入装回表单，重新开始流水线。
// ReuseIdea loads a history entry's inputs back into the form to restart the
// pipeline.
func (s *Session) ReuseIdea(entry history.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase.Busy() {
		return
	}
	s.phase = PhaseIdle
	s.idea = entry.ContentIdea
	s.contentType = entry.ContentType
	if s.contentType == "" {
		s.contentType = DefaultContentType
	}
	s.notes = entry.Notes
	s.feedback = ""
	s.title, s.hook, s.body, s.cta = "", "", "", ""
	s.script = nil
	s.video = script.VideoScript{}
	s.lastErr = ""
}

// adoptDraft 以生成结果替换草稿，调用方持锁
// adoptDraft replaces the draft with a generated result; caller holds the lock
func (s *Session) adoptDraft(generated *script.Script) {
	s.script = generated
	s.title = generated.Title
	s.hook = generated.Hook
	s.body = generated.Body
	s.cta = generated.CTA
	s.video = script.VideoScript{}
	s.phase = PhaseDraft
}

func coerceScript(payload any) (*script.Script, bool) {
	parsed := script.Coerce(payload)
	return parsed, parsed != nil
}

func coerceVideo(payload any) (script.VideoScript, bool) {
	v := script.CoerceVideo(payload)
	return v, v.Generated()
}
