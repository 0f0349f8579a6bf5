package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"studio/internal/history"
	"studio/internal/i18n"
	"studio/internal/script"
	"studio/internal/studio"

	"github.com/atotto/clipboard"
)

// ANSI colors for the prompt
const (
	ansiReset = "\x1b[0m"
	ansiDim   = "\x1b[90m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
)

// copyText 剪贴板写入，可在测试中替换 / copyText writes the clipboard, stubbed in tests
var copyText = clipboard.WriteAll

// Options 组装 REPL 所需的依赖 / Options carries the REPL's dependencies
type Options struct {
	Session     *studio.Session
	History     *history.Store
	Model       string
	HistoryPath string

	// 测试钩子：覆盖输入输出 / Test hooks overriding the I/O
	Input  lineInput
	Output io.Writer
}

// Loop 斜杠命令行前端，与 TUI 共享同一个会话状态机。
// Loop is the slash-command frontend sharing the session state machine with
// the TUI.
type Loop struct {
	session *studio.Session
	store   *history.Store
	model   string
	in      lineInput
	out     io.Writer
	locale  *i18n.I18n
}

// NewLoop 创建 REPL / NewLoop builds the REPL loop
func NewLoop(opts Options) (*Loop, error) {
	in := opts.Input
	if in == nil {
		historyPath := opts.HistoryPath
		if historyPath == "" {
			if home, err := os.UserHomeDir(); err == nil {
				historyPath = filepath.Join(home, ".studio", "repl.history")
			}
		}
		reader, err := newLineInput(historyPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "line editor unavailable, fallback to basic input: %v\n", err)
		}
		in = reader
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	return &Loop{
		session: opts.Session,
		store:   opts.History,
		model:   opts.Model,
		in:      in,
		out:     out,
		locale:  i18n.Global(),
	}, nil
}

// replCommands 命令表，/help 按此顺序输出
// replCommands is the command table, listed by /help in this order
var replCommands = []struct {
	name  string
	usage string
	desc  string
}{
	{"idea", "/idea <text>", "cmd.idea"},
	{"type", "/type <content type>", "cmd.type"},
	{"notes", "/notes <text>", "cmd.notes"},
	{"generate", "/generate", "cmd.generate"},
	{"edit", "/edit <title|hook|body|cta> <text>", "cmd.edit"},
	{"revise", "/revise <feedback>", "cmd.revise"},
	{"approve", "/approve", "cmd.approve"},
	{"video", "/video", "cmd.video"},
	{"copy", "/copy", "cmd.copy"},
	{"status", "/status", "cmd.status"},
	{"history", "/history", "cmd.history"},
	{"show", "/show <n>", "cmd.show"},
	{"reuse", "/reuse <n>", "cmd.reuse"},
	{"clear", "/clear", "cmd.clear"},
	{"sample", "/sample", "cmd.sample"},
	{"help", "/help", "cmd.help"},
	{"quit", "/quit", "cmd.quit"},
}

// Run 运行命令循环直到 /quit 或输入流结束
// Run drives the command loop until /quit or the input stream ends
func (l *Loop) Run(ctx context.Context) error {
	fmt.Fprintln(l.out, l.locale.T("repl.welcome"))

	for {
		line, err := l.in.ReadLine(l.prompt())
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(l.out, l.locale.T("repl.goodbye"))
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		quit := l.dispatch(ctx, line)
		if quit {
			fmt.Fprintln(l.out, l.locale.T("repl.goodbye"))
			return nil
		}
	}
}

// prompt 单行提示符：[阶段] studio>
// prompt is the one-line prompt: [phase] studio>
func (l *Loop) prompt() string {
	phase := l.session.View().Phase.String()
	text := fmt.Sprintf("[%s] studio> ", phase)
	if useColor() {
		return ansiGreen + text + ansiReset
	}
	return text
}

// dispatch 解析并执行一行输入，返回是否退出。裸文本视为设置想法。
// dispatch parses and runs one input line, reporting quit. Bare text sets the
// idea.
func (l *Loop) dispatch(ctx context.Context, line string) bool {
	if !strings.HasPrefix(line, "/") {
		l.session.SetIdea(line)
		l.printStatus()
		return false
	}

	fields := strings.Fields(line)
	cmd := strings.TrimPrefix(fields[0], "/")
	rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))

	switch cmd {
	case "idea":
		if rest == "" {
			l.printError(l.locale.T("error.missing_arg", "idea"))
			return false
		}
		l.session.SetIdea(rest)
	case "type":
		if err := l.session.SetContentType(rest); err != nil {
			l.printError(err.Error())
		}
	case "notes":
		l.session.SetNotes(rest)
	case "generate":
		if err := l.session.Generate(ctx); err == nil {
			l.printScript()
		} else {
			l.printError(l.session.View().Err)
		}
	case "edit":
		l.runEdit(rest)
	case "revise":
		if rest != "" {
			l.session.SetFeedback(rest)
		}
		if err := l.session.Revise(ctx); err == nil {
			l.printScript()
		} else {
			l.printError(l.session.View().Err)
		}
	case "approve":
		if _, err := l.session.Approve(); err != nil {
			l.printError(err.Error())
		} else {
			fmt.Fprintln(l.out, l.locale.T("repl.approved"))
		}
	case "video":
		count, err := l.session.GenerateVideo(ctx)
		if err != nil {
			l.printError(l.session.View().Err)
			return false
		}
		l.printVideo()
		fmt.Fprintln(l.out, l.locale.T("repl.updated", count))
	case "copy":
		l.runCopy()
	case "status":
		l.printStatus()
	case "history":
		l.printHistory()
	case "show":
		if entry, ok := l.resolveEntry(rest); ok {
			l.printEntry(entry)
		}
	case "reuse":
		if entry, ok := l.resolveEntry(rest); ok {
			l.session.ReuseIdea(entry)
			fmt.Fprintln(l.out, l.locale.T("history.reused", entry.ID))
		}
	case "clear":
		l.store.Clear()
		fmt.Fprintln(l.out, l.locale.T("history.cleared"))
	case "sample":
		l.store.SetSampleMode(!l.store.SampleMode())
		state := l.locale.T("sidebar.off")
		if l.store.SampleMode() {
			state = l.locale.T("sidebar.on")
		}
		fmt.Fprintf(l.out, "%s: %s\n", l.locale.T("sidebar.sample"), state)
	case "help":
		l.printHelp()
	case "quit", "exit":
		return true
	default:
		l.printError(l.locale.T("error.unknown_command", cmd))
	}
	return false
}

func (l *Loop) runEdit(rest string) {
	parts := strings.SplitN(rest, " ", 2)
	if len(parts) < 2 {
		l.printError(l.locale.T("error.missing_arg", "field text"))
		return
	}
	value := strings.TrimSpace(parts[1])
	switch strings.ToLower(parts[0]) {
	case "title":
		l.session.SetTitle(value)
	case "hook":
		l.session.SetHook(value)
	case "body":
		l.session.SetBody(value)
	case "cta":
		l.session.SetCTA(value)
	default:
		l.printError(l.locale.T("error.unknown_field", parts[0]))
		return
	}
	l.printScript()
}

func (l *Loop) runCopy() {
	v := l.session.View()
	if !v.HasScript {
		l.printError(l.locale.T("copy.none"))
		return
	}
	text := studio.FormatScript(scriptFromView(v))
	if err := copyText(text); err != nil {
		l.printError(l.locale.T("copy.fail", err.Error()))
		return
	}
	fmt.Fprintln(l.out, l.locale.T("copy.done"))
}

// resolveEntry 按 1 起始序号或 ID 前缀定位历史条目
// resolveEntry finds a history entry by 1-based index or ID prefix
func (l *Loop) resolveEntry(arg string) (history.Entry, bool) {
	entries := l.store.Entries()
	if arg == "" {
		l.printError(l.locale.T("error.missing_arg", "entry"))
		return history.Entry{}, false
	}
	if n, err := strconv.Atoi(arg); err == nil {
		if n >= 1 && n <= len(entries) {
			return entries[n-1], true
		}
		l.printError(l.locale.T("error.not_found", arg))
		return history.Entry{}, false
	}
	for _, e := range entries {
		if strings.HasPrefix(e.ID, arg) {
			return e, true
		}
	}
	l.printError(l.locale.T("error.not_found", arg))
	return history.Entry{}, false
}

// --- 输出 / Output ---

func (l *Loop) printStatus() {
	v := l.session.View()
	fmt.Fprintf(l.out, "phase: %s · %s: %s\n", v.Phase, l.locale.T("sidebar.model"), l.model)
	fmt.Fprintf(l.out, "%s: %s\n", l.locale.T("form.idea"), v.Idea)
	fmt.Fprintf(l.out, "%s: %s\n", l.locale.T("form.type"), v.ContentType)
	if v.Notes != "" {
		fmt.Fprintf(l.out, "%s: %s\n", l.locale.T("form.notes"), v.Notes)
	}
}

func (l *Loop) printScript() {
	v := l.session.View()
	if !v.HasScript {
		return
	}
	fmt.Fprintln(l.out)
	fmt.Fprintln(l.out, studio.FormatScript(scriptFromView(v)))
	fmt.Fprintln(l.out)
}

func (l *Loop) printVideo() {
	v := l.session.View()
	if !v.Video.Generated() {
		return
	}
	fmt.Fprintln(l.out)
	fmt.Fprintln(l.out, v.Video.FullText)
	if v.Video.TotalDuration != "" {
		fmt.Fprintf(l.out, "\n%s: %s", l.locale.T("video.total_duration"), v.Video.TotalDuration)
		if v.Video.SceneCount != "" {
			fmt.Fprintf(l.out, " · %s: %s", l.locale.T("video.scene_count"), v.Video.SceneCount)
		}
		fmt.Fprintln(l.out)
	}
}

func (l *Loop) printHistory() {
	entries := l.store.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(l.out, l.locale.T("history.empty"))
		return
	}
	fmt.Fprintln(l.out, l.locale.T("history.count", len(entries)))
	for i, e := range entries {
		fmt.Fprintf(l.out, "%3d. [%s] %s (%s) %s\n", i+1, e.Status, e.ContentIdea, e.ContentType, dim(e.CreatedAt))
	}
}

func (l *Loop) printEntry(e history.Entry) {
	fmt.Fprintf(l.out, "id: %s\n", e.ID)
	fmt.Fprintf(l.out, "%s: %s\n", l.locale.T("form.idea"), e.ContentIdea)
	fmt.Fprintf(l.out, "%s: %s\n", l.locale.T("form.type"), e.ContentType)
	if e.Notes != "" {
		fmt.Fprintf(l.out, "%s: %s\n", l.locale.T("form.notes"), e.Notes)
	}
	fmt.Fprintf(l.out, "status: %s\n", e.Status)
	if e.Script != nil {
		fmt.Fprintln(l.out)
		fmt.Fprintln(l.out, studio.FormatScript(*e.Script))
	}
	if e.VideoScript != nil && e.VideoScript.Generated() {
		fmt.Fprintln(l.out)
		fmt.Fprintln(l.out, e.VideoScript.FullText)
	}
}

func (l *Loop) printHelp() {
	fmt.Fprintln(l.out, "commands:")
	for _, cmd := range replCommands {
		fmt.Fprintf(l.out, "  %-38s %s\n", cmd.usage, l.locale.T(cmd.desc))
	}
}

func (l *Loop) printError(msg string) {
	if msg == "" {
		return
	}
	if useColor() {
		fmt.Fprintf(l.out, "%s%s%s\n", ansiRed, msg, ansiReset)
		return
	}
	fmt.Fprintln(l.out, msg)
}

// Close 释放输入资源 / Close releases the input resources
func (l *Loop) Close() error {
	if l.in == nil {
		return nil
	}
	return l.in.Close()
}

func scriptFromView(v studio.View) script.Script {
	return script.Script{
		Title:             v.Title,
		Hook:              v.Hook,
		Body:              v.Body,
		CTA:               v.CTA,
		EstimatedDuration: v.EstimatedDuration,
	}
}

func useColor() bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}
	if strings.TrimSpace(os.Getenv("STUDIO_NO_COLOR")) != "" {
		return false
	}
	return strings.ToLower(strings.TrimSpace(os.Getenv("TERM"))) != "dumb"
}

func dim(s string) string {
	if !useColor() {
		return s
	}
	return ansiDim + s + ansiReset
}
