package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"studio/internal/agent"
	"studio/internal/history"
	"studio/internal/i18n"
	"studio/internal/script"
	"studio/internal/studio"
	"studio/internal/tokens"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Tab 标签页标识 / Tab identifies a tab
type Tab int

const (
	TabStudio Tab = iota
	TabVideo
	TabHistory
)

// 表单焦点字段 / Form focus fields
type field int

const (
	fieldIdea field = iota
	fieldNotes
	fieldFeedback
	fieldTitle
	fieldHook
	fieldBody
	fieldCTA
	fieldCount
)

// --- Tea Messages ---

// pipelineDoneMsg 生成或修订调用返回 / pipelineDoneMsg reports a generate or revise call
type pipelineDoneMsg struct{ err error }

// videoDoneMsg 视频稿调用返回，count 为更新的历史条数
// videoDoneMsg reports the video call; count is the history entries updated
type videoDoneMsg struct {
	count int
	err   error
}

// copiedMsg 剪贴板写入结果 / copiedMsg reports the clipboard write
type copiedMsg struct{ err error }

// copyRevertMsg 复制提示回退 / copyRevertMsg reverts the copied indicator
type copyRevertMsg struct{}

// Options 组装 TUI 所需的依赖 / Options carries the TUI's dependencies
type Options struct {
	Session   *studio.Session
	History   *history.Store
	Estimator *tokens.Estimator
	Agents    []agent.Profile
	Model     string
	Backend   string
}

// App Bubble Tea 主 Model
// App is the main Bubble Tea model
type App struct {
	// 布局 / Layout
	width  int
	height int

	// 标签页与面板 / Tabs and panels
	activeTab   Tab
	videoView   viewport.Model
	historyView viewport.Model

	// 表单 / Form
	inputs  [fieldCount]textarea.Model
	focused field

	// 历史浏览 / History browsing
	historySel int
	expanded   map[string]bool

	// 剪贴板提示 / Clipboard indicator
	copied  bool
	copyErr string

	// 状态 / State
	notice string

	// 依赖 / Dependencies
	session   *studio.Session
	store     *history.Store
	estimator *tokens.Estimator
	agents    []agent.Profile
	model     string
	backend   string

	// 配置 / Config
	theme  Theme
	keys   KeyMap
	locale *i18n.I18n
}

// NewApp 创建 TUI 应用
// NewApp creates a new TUI application
func NewApp(opts Options) App {
	a := App{
		session:   opts.Session,
		store:     opts.History,
		estimator: opts.Estimator,
		agents:    opts.Agents,
		model:     opts.Model,
		backend:   opts.Backend,
		expanded:  make(map[string]bool),
		theme:     DarkTheme(),
		keys:      DefaultKeyMap(),
		locale:    i18n.Global(),
	}
	if a.estimator == nil {
		a.estimator = tokens.Default()
	}

	placeholders := map[field]string{
		fieldIdea:     a.locale.T("form.idea"),
		fieldNotes:    a.locale.T("form.notes"),
		fieldFeedback: a.locale.T("form.feedback"),
		fieldTitle:    a.locale.T("script.title"),
		fieldHook:     a.locale.T("script.hook"),
		fieldBody:     a.locale.T("script.body"),
		fieldCTA:      a.locale.T("script.cta"),
	}
	heights := map[field]int{
		fieldIdea: 3, fieldNotes: 2, fieldFeedback: 2,
		fieldTitle: 1, fieldHook: 2, fieldBody: 4, fieldCTA: 2,
	}
	for f := fieldIdea; f < fieldCount; f++ {
		ta := textarea.New()
		ta.Placeholder = placeholders[f]
		ta.CharLimit = 4096
		ta.SetHeight(heights[f])
		a.inputs[f] = ta
	}
	a.inputs[fieldIdea].Focus()
	a.focused = fieldIdea
	return a
}

func (a App) Init() tea.Cmd {
	return textarea.Blink
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, a.keys.SwitchTab):
			a.activeTab = (a.activeTab + 1) % 3
			a.refreshPanels()
			return a, nil

		case key.Matches(msg, a.keys.NextField):
			if a.activeTab == TabStudio {
				a.focusNext()
			}
			return a, nil

		case key.Matches(msg, a.keys.CycleType):
			a.cycleContentType()
			return a, nil

		case key.Matches(msg, a.keys.Generate):
			a.syncForm()
			return a, a.generateCmd()

		case key.Matches(msg, a.keys.Revise):
			a.syncForm()
			return a, a.reviseCmd()

		case key.Matches(msg, a.keys.Approve):
			a.syncForm()
			if _, err := a.session.Approve(); err == nil {
				a.notice = a.locale.T("status.approved")
			}
			return a, nil

		case key.Matches(msg, a.keys.Video):
			return a, a.videoCmd()

		case key.Matches(msg, a.keys.Copy):
			return a, a.copyCmd()

		case key.Matches(msg, a.keys.Sample):
			a.store.SetSampleMode(!a.store.SampleMode())
			a.historySel = 0
			a.refreshPanels()
			return a, nil

		case key.Matches(msg, a.keys.NewSession):
			a.session.Reset()
			a.resetForm()
			a.notice = ""
			return a, nil
		}

		if a.activeTab == TabHistory {
			return a.updateHistoryKeys(msg)
		}
		if a.activeTab == TabVideo {
			var cmd tea.Cmd
			a.videoView, cmd = a.videoView.Update(msg)
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.relayout()
		return a, nil

	case pipelineDoneMsg:
		a.adoptDraftIntoForm()
		return a, nil

	case videoDoneMsg:
		if msg.err == nil {
			a.notice = a.locale.T("repl.updated", msg.count)
			a.activeTab = TabVideo
		}
		a.refreshPanels()
		return a, nil

	case copiedMsg:
		if msg.err != nil {
			a.copyErr = a.locale.T("copy.fail", msg.err.Error())
			return a, nil
		}
		a.copied = true
		// 2 秒后恢复提示文案 / The indicator reverts after 2 seconds
		return a, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
			return copyRevertMsg{}
		})

	case copyRevertMsg:
		a.copied = false
		return a, nil
	}

	// 更新聚焦的输入区 / Update the focused input
	if a.activeTab == TabStudio {
		var cmd tea.Cmd
		a.inputs[a.focused], cmd = a.inputs[a.focused].Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Initializing..."
	}

	sidebarWidth := a.width * 25 / 100
	if sidebarWidth < 22 {
		sidebarWidth = 22
	}
	if sidebarWidth > 40 {
		sidebarWidth = 40
	}
	if a.width < 80 {
		sidebarWidth = 0
	}

	mainWidth := a.width - sidebarWidth
	if sidebarWidth > 0 {
		mainWidth-- // border
	}

	statusHeight := 1
	tabHeight := 1
	panelHeight := a.height - statusHeight - tabHeight
	if panelHeight < 3 {
		panelHeight = 3
	}

	tabs := a.renderTabs()
	panel := a.renderActiveTab(mainWidth, panelHeight)
	statusBar := a.renderStatusBar(a.width)

	main := lipgloss.JoinVertical(lipgloss.Left, tabs, panel)
	if sidebarWidth > 0 {
		sidebar := a.renderSidebar(sidebarWidth, a.height-statusHeight)
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, sidebar)
	}
	return lipgloss.JoinVertical(lipgloss.Left, main, statusBar)
}

// --- 命令 / Commands ---

func (a App) generateCmd() tea.Cmd {
	session := a.session
	return func() tea.Msg {
		return pipelineDoneMsg{err: session.Generate(context.Background())}
	}
}

func (a App) reviseCmd() tea.Cmd {
	session := a.session
	return func() tea.Msg {
		return pipelineDoneMsg{err: session.Revise(context.Background())}
	}
}

func (a App) videoCmd() tea.Cmd {
	session := a.session
	return func() tea.Msg {
		count, err := session.GenerateVideo(context.Background())
		return videoDoneMsg{count: count, err: err}
	}
}

func (a App) copyCmd() tea.Cmd {
	v := a.session.View()
	if !v.HasScript {
		return nil
	}
	text := studio.FormatScript(viewScript(v))
	return func() tea.Msg {
		return copiedMsg{err: CopyText(text)}
	}
}

// viewScript 从渲染快照还原脚本值 / viewScript rebuilds the script from a snapshot
func viewScript(v studio.View) script.Script {
	return script.Script{
		Title:             v.Title,
		Hook:              v.Hook,
		Body:              v.Body,
		CTA:               v.CTA,
		EstimatedDuration: v.EstimatedDuration,
	}
}

// --- 内部方法 / Internal methods ---

func (a *App) relayout() {
	mainWidth := a.width * 3 / 4
	panelHeight := a.height - 2
	if panelHeight < 3 {
		panelHeight = 3
	}

	a.videoView = viewport.New(mainWidth, panelHeight)
	a.historyView = viewport.New(mainWidth, panelHeight)
	for f := fieldIdea; f < fieldCount; f++ {
		a.inputs[f].SetWidth(mainWidth - 4)
	}
	a.refreshPanels()
}

// syncForm 把输入区的内容推进会话 / syncForm pushes the inputs into the session
func (a *App) syncForm() {
	a.session.SetIdea(a.inputs[fieldIdea].Value())
	a.session.SetNotes(a.inputs[fieldNotes].Value())
	a.session.SetFeedback(a.inputs[fieldFeedback].Value())
	a.session.SetTitle(a.inputs[fieldTitle].Value())
	a.session.SetHook(a.inputs[fieldHook].Value())
	a.session.SetBody(a.inputs[fieldBody].Value())
	a.session.SetCTA(a.inputs[fieldCTA].Value())
}

// adoptDraftIntoForm 把生成结果写回草稿输入区
// adoptDraftIntoForm writes the generated draft back into the inputs
func (a *App) adoptDraftIntoForm() {
	v := a.session.View()
	if !v.HasScript {
		return
	}
	a.inputs[fieldTitle].SetValue(v.Title)
	a.inputs[fieldHook].SetValue(v.Hook)
	a.inputs[fieldBody].SetValue(v.Body)
	a.inputs[fieldCTA].SetValue(v.CTA)
	a.inputs[fieldFeedback].SetValue(v.Feedback)
}

func (a *App) resetForm() {
	for f := fieldIdea; f < fieldCount; f++ {
		a.inputs[f].Reset()
	}
	a.setFocus(fieldIdea)
}

func (a *App) focusNext() {
	order := a.fieldOrder()
	for i, f := range order {
		if f == a.focused {
			a.setFocus(order[(i+1)%len(order)])
			return
		}
	}
	a.setFocus(order[0])
}

func (a *App) setFocus(f field) {
	a.inputs[a.focused].Blur()
	a.focused = f
	a.inputs[a.focused].Focus()
}

// fieldOrder 焦点顺序，草稿字段仅在草稿阶段可编辑
// fieldOrder is the focus cycle; draft fields join in the draft phase only
func (a *App) fieldOrder() []field {
	order := []field{fieldIdea, fieldNotes}
	if a.session.View().Phase == studio.PhaseDraft {
		order = append(order, fieldTitle, fieldHook, fieldBody, fieldCTA, fieldFeedback)
	}
	return order
}

func (a *App) cycleContentType() {
	current := a.session.View().ContentType
	for i, ct := range studio.ContentTypes {
		if ct == current {
			next := studio.ContentTypes[(i+1)%len(studio.ContentTypes)]
			_ = a.session.SetContentType(next)
			return
		}
	}
	_ = a.session.SetContentType(studio.ContentTypes[0])
}

func (a *App) updateHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := a.store.Entries()
	switch {
	case key.Matches(msg, a.keys.ScrollUp):
		if a.historySel > 0 {
			a.historySel--
		}
	case key.Matches(msg, a.keys.ScrollDown):
		if a.historySel < len(entries)-1 {
			a.historySel++
		}
	case key.Matches(msg, a.keys.Expand):
		if a.historySel < len(entries) {
			id := entries[a.historySel].ID
			a.expanded[id] = !a.expanded[id]
		}
	case key.Matches(msg, a.keys.Reuse):
		if a.historySel < len(entries) {
			entry := entries[a.historySel]
			a.session.ReuseIdea(entry)
			a.resetForm()
			a.inputs[fieldIdea].SetValue(entry.ContentIdea)
			a.inputs[fieldNotes].SetValue(entry.Notes)
			a.notice = a.locale.T("history.reused", entry.ID)
			a.activeTab = TabStudio
			return a, nil
		}
	default:
		var cmd tea.Cmd
		a.historyView, cmd = a.historyView.Update(msg)
		a.refreshPanels()
		return a, cmd
	}
	a.refreshPanels()
	return a, nil
}

func (a *App) refreshPanels() {
	width := a.videoView.Width
	if width <= 0 {
		width = 80
	}

	v := a.session.View()
	if v.Video.Generated() {
		a.videoView.SetContent(RenderMarkdown(BreakdownMarkdown(v.Video), width))
	} else {
		a.videoView.SetContent(a.theme.MutedStyle.Render("  " + a.locale.T("video.empty")))
	}

	entries := a.store.Entries()
	if len(entries) == 0 {
		a.historyView.SetContent(a.theme.MutedStyle.Render("  " + a.locale.T("history.empty")))
		return
	}
	var b strings.Builder
	b.WriteString(a.theme.MutedStyle.Render(a.locale.T("history.count", len(entries))) + "\n\n")
	for i, e := range entries {
		cursor := "  "
		if i == a.historySel {
			cursor = a.theme.FocusedLabelStyle.Render("> ")
		}
		b.WriteString(cursor + EntrySummary(e, a.theme) + "\n")
		if a.expanded[e.ID] {
			b.WriteString(RenderMarkdown(EntryMarkdown(e), width-4) + "\n")
		}
	}
	a.historyView.SetContent(b.String())
}

// --- 渲染方法 / Render methods ---

func (a App) renderTabs() string {
	tabs := []struct {
		id   Tab
		name string
	}{
		{TabStudio, a.locale.T("tab.studio")},
		{TabVideo, a.locale.T("tab.script")},
		{TabHistory, a.locale.T("tab.history")},
	}

	var parts []string
	for _, tab := range tabs {
		style := a.theme.InactiveTabStyle
		if tab.id == a.activeTab {
			style = a.theme.ActiveTabStyle
		}
		parts = append(parts, style.Render(tab.name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a App) renderActiveTab(width, height int) string {
	style := lipgloss.NewStyle().Width(width).Height(height)

	switch a.activeTab {
	case TabVideo:
		return style.Render(a.videoView.View())
	case TabHistory:
		return style.Render(a.historyView.View())
	default:
		return style.Render(a.renderStudioTab())
	}
}

func (a App) renderStudioTab() string {
	v := a.session.View()
	var parts []string

	parts = append(parts, a.renderField(fieldIdea, a.locale.T("form.idea")))
	parts = append(parts, a.renderChips(v.ContentType))
	parts = append(parts, a.renderField(fieldNotes, a.locale.T("form.notes")))

	if v.HasScript {
		parts = append(parts, "")
		parts = append(parts, a.renderField(fieldTitle, a.locale.T("script.title")))
		parts = append(parts, a.renderField(fieldHook, a.locale.T("script.hook")))
		parts = append(parts, a.renderField(fieldBody, a.locale.T("script.body")))
		parts = append(parts, a.renderField(fieldCTA, a.locale.T("script.cta")))
		if v.EstimatedDuration != "" {
			parts = append(parts, a.theme.MutedStyle.Render("  "+a.locale.T("script.duration")+": "+v.EstimatedDuration))
		}
		if v.Phase == studio.PhaseDraft {
			parts = append(parts, a.renderField(fieldFeedback, a.locale.T("form.feedback")))
		}
	}

	if v.Err != "" {
		parts = append(parts, a.theme.ErrorStyle.Render("  "+v.Err))
	}
	if a.copyErr != "" {
		parts = append(parts, a.theme.ErrorStyle.Render("  "+a.copyErr))
	}
	if a.notice != "" {
		parts = append(parts, a.theme.SuccessStyle.Render("  "+a.notice))
	}

	return strings.Join(parts, "\n")
}

func (a App) renderField(f field, label string) string {
	style := a.theme.LabelStyle
	if f == a.focused {
		style = a.theme.FocusedLabelStyle
	}
	return style.Render(" "+label) + "\n" + a.inputs[f].View()
}

func (a App) renderChips(active string) string {
	parts := []string{a.theme.LabelStyle.Render(" " + a.locale.T("form.type") + ":")}
	for _, ct := range studio.ContentTypes {
		style := a.theme.ChipStyle
		if ct == active {
			style = a.theme.ActiveChipStyle
		}
		parts = append(parts, style.Render(ct))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a App) renderSidebar(width, height int) string {
	v := a.session.View()
	var parts []string

	parts = append(parts, a.theme.TitleStyle.Render(" Studio"))
	parts = append(parts, "")

	// 智能体档案；调用进行中的一项带指示点
	// Agent profiles; the one with a call in flight gets an indicator dot
	parts = append(parts, a.theme.TitleStyle.Render(" "+a.locale.T("sidebar.agents")))
	for i, p := range a.agents {
		name := "  " + p.Name
		if a.agentBusy(v.Phase, i) {
			name = a.theme.FocusedLabelStyle.Render("● ") + p.Name
		}
		parts = append(parts, name)
		parts = append(parts, a.theme.MutedStyle.Render("  "+p.Purpose))
		parts = append(parts, a.theme.MutedStyle.Render("  "+p.ID))
	}
	parts = append(parts, "")

	parts = append(parts, a.theme.TitleStyle.Render(" "+a.locale.T("sidebar.model")))
	parts = append(parts, "  "+a.model)
	parts = append(parts, "")

	parts = append(parts, a.theme.TitleStyle.Render(" "+a.locale.T("sidebar.storage")))
	parts = append(parts, "  "+a.backend)
	parts = append(parts, "")

	// 发送前的提示词开销预估 / Prompt cost preview before sending
	prompt := studio.GeneratePrompt(v.ContentType, a.inputs[fieldIdea].Value(), a.inputs[fieldNotes].Value())
	count := a.estimator.Count(prompt)
	marker := "~"
	if a.estimator.IsPrecise() {
		marker = ""
	}
	parts = append(parts, a.theme.TitleStyle.Render(" "+a.locale.T("sidebar.tokens")))
	parts = append(parts, fmt.Sprintf("  %s%d", marker, count))
	parts = append(parts, "")

	sample := a.locale.T("sidebar.off")
	if a.store.SampleMode() {
		sample = a.locale.T("sidebar.on")
	}
	parts = append(parts, a.theme.TitleStyle.Render(" "+a.locale.T("sidebar.sample")))
	parts = append(parts, "  "+sample)

	content := strings.Join(parts, "\n")
	return a.theme.SidebarStyle.Width(width).Height(height).Render(content)
}

// agentBusy 档案列表约定第 0 项为脚本智能体、第 1 项为视频智能体
// agentBusy assumes profile 0 is the script agent and profile 1 the video agent
func (a App) agentBusy(p studio.Phase, index int) bool {
	switch index {
	case 0:
		return p == studio.PhaseGenerating || p == studio.PhaseRevising
	case 1:
		return p == studio.PhaseGeneratingVideo
	}
	return false
}

func (a App) renderStatusBar(width int) string {
	v := a.session.View()
	status := a.phaseText(v.Phase)
	if a.copied {
		status = a.locale.T("copy.done")
	}

	left := fmt.Sprintf(" %s · %s", a.model, status)
	hints := strings.Join([]string{
		a.locale.T("keys.tab"),
		a.locale.T("keys.generate"),
		a.locale.T("keys.approve"),
		a.locale.T("keys.video"),
		a.locale.T("keys.quit"),
	}, " · ")
	right := hints + "  "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	bar := left + strings.Repeat(" ", gap) + right
	return a.theme.StatusBarStyle.Width(width).Render(bar)
}

func (a App) phaseText(p studio.Phase) string {
	switch p {
	case studio.PhaseGenerating:
		return a.locale.T("status.generating")
	case studio.PhaseDraft:
		return a.locale.T("status.draft")
	case studio.PhaseRevising:
		return a.locale.T("status.revising")
	case studio.PhaseApproved:
		return a.locale.T("status.approved")
	case studio.PhaseGeneratingVideo:
		return a.locale.T("status.video_wait")
	case studio.PhaseVideoReady:
		return a.locale.T("status.video_ready")
	default:
		return a.locale.T("status.idle")
	}
}

// Run 启动 Bubble Tea TUI
// Run starts the Bubble Tea TUI application
func Run(opts Options) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
