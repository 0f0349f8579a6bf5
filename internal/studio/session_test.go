package studio

import (
	"context"
	"strings"
	"testing"
	"time"

	"studio/internal/agent"
	"studio/internal/history"
	"studio/internal/storage"
)

// scriptedAgent 按 agentID 回放载荷并记录收到的消息
// scriptedAgent replays payloads per agentID and records received messages
type scriptedAgent struct {
	payloads map[string][]agent.Result
	calls    map[string]int
	messages []string
}

func newScriptedAgent() *scriptedAgent {
	return &scriptedAgent{
		payloads: make(map[string][]agent.Result),
		calls:    make(map[string]int),
	}
}

func (a *scriptedAgent) queue(agentID string, results ...agent.Result) {
	a.payloads[agentID] = append(a.payloads[agentID], results...)
}

func (a *scriptedAgent) Invoke(ctx context.Context, message, agentID string) agent.Result {
	a.messages = append(a.messages, message)
	queue := a.payloads[agentID]
	idx := a.calls[agentID]
	a.calls[agentID]++
	if idx >= len(queue) {
		return agent.Result{Success: false, Error: "no scripted result"}
	}
	return queue[idx]
}

func jsonResult(payload string) agent.Result {
	return agent.Result{Success: true, Response: &agent.Response{Result: payload}}
}

const scriptPayload = `{"title":"Stop Guessing","hook":"You are wasting hours.","body":"Here is the fix.","cta":"Try it today.","estimated_duration":"45 seconds"}`

const videoPayload = `{"video_script":"Scene 1: Open\nVisual: Desk shot\nVO: \"You are wasting hours.\"\nDuration: 5 seconds","total_duration":"45 seconds","scene_count":"1"}`

func newTestSession(t *testing.T, client agent.Client) (*Session, *history.Store) {
	t.Helper()
	store := history.New(storage.NewMemorySlot())
	session := NewSession(Options{
		Client:  client,
		History: store,
		Retry:   agent.RetryOptions{Sleep: func(time.Duration) {}},
	})
	return session, store
}

func TestGenerate_RequiresIdea(t *testing.T) {
	session, _ := newTestSession(t, newScriptedAgent())
	if err := session.Generate(context.Background()); err != ErrNoIdea {
		t.Fatalf("err=%v, want ErrNoIdea", err)
	}
	if v := session.View(); v.Err != ErrNoIdea.Error() {
		t.Fatalf("Err=%q", v.Err)
	}
}

func TestGenerate_EntersDraftWithEditableFields(t *testing.T) {
	client := newScriptedAgent()
	client.queue(agent.DefaultScriptAgentID, jsonResult(scriptPayload))
	session, _ := newTestSession(t, client)
	session.SetIdea("time tracking for freelancers")
	session.SetNotes("keep it under a minute")

	if err := session.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	v := session.View()
	if v.Phase != PhaseDraft || !v.HasScript {
		t.Fatalf("phase=%v hasScript=%v", v.Phase, v.HasScript)
	}
	if v.Title != "Stop Guessing" || v.Hook != "You are wasting hours." {
		t.Fatalf("draft=%+v", v)
	}
	// 提示词布局：类型、想法、可选备注 / Prompt layout: type, idea, optional notes
	want := "Content Type: General\n\nContent Idea: time tracking for freelancers\n\nAdditional Notes: keep it under a minute"
	if client.messages[0] != want {
		t.Fatalf("prompt=%q", client.messages[0])
	}
}

func TestGenerate_BlankNotesOmitted(t *testing.T) {
	client := newScriptedAgent()
	client.queue(agent.DefaultScriptAgentID, jsonResult(scriptPayload))
	session, _ := newTestSession(t, client)
	session.SetIdea("an idea")

	if err := session.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if strings.Contains(client.messages[0], "Additional Notes") {
		t.Fatalf("prompt should omit notes: %q", client.messages[0])
	}
}

func TestGenerate_FailureSurfacesRetryHint(t *testing.T) {
	client := newScriptedAgent()
	session, _ := newTestSession(t, client)
	session.SetIdea("an idea")

	if err := session.Generate(context.Background()); err == nil {
		t.Fatal("Generate should fail with no scripted results")
	}
	v := session.View()
	if v.Phase != PhaseIdle {
		t.Fatalf("phase=%v, want idle after failure", v.Phase)
	}
	if !strings.HasSuffix(v.Err, " Please try again.") {
		t.Fatalf("Err=%q, want retry hint suffix", v.Err)
	}
}

func TestGenerate_UnparseableRetriesThenFails(t *testing.T) {
	client := newScriptedAgent()
	client.queue(agent.DefaultScriptAgentID,
		jsonResult("definitely not json"),
		jsonResult("still not json"),
		jsonResult("nope"),
	)
	session, _ := newTestSession(t, client)
	session.SetIdea("an idea")

	err := session.Generate(context.Background())
	if err == nil || err.Error() != "Could not parse script response." {
		t.Fatalf("err=%v", err)
	}
	if client.calls[agent.DefaultScriptAgentID] != 3 {
		t.Fatalf("calls=%d, want 3", client.calls[agent.DefaultScriptAgentID])
	}
}

func TestRevise_UsesEditsAndClearsFeedback(t *testing.T) {
	client := newScriptedAgent()
	client.queue(agent.DefaultScriptAgentID,
		jsonResult(scriptPayload),
		jsonResult(`{"title":"Sharper","hook":"New hook.","body":"New body.","cta":"New CTA.","estimated_duration":"40 seconds"}`),
	)
	session, _ := newTestSession(t, client)
	session.SetIdea("an idea")
	if err := session.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// 手工编辑进入修订提示词 / Hand edits flow into the revision prompt
	session.SetHook("Edited hook.")
	session.SetFeedback("make it punchier")
	if err := session.Revise(context.Background()); err != nil {
		t.Fatalf("Revise: %v", err)
	}

	prompt := client.messages[1]
	if !strings.Contains(prompt, "REVISION REQUEST") ||
		!strings.Contains(prompt, "Hook: Edited hook.") ||
		!strings.Contains(prompt, "User Feedback: make it punchier") {
		t.Fatalf("prompt=%q", prompt)
	}

	v := session.View()
	if v.Title != "Sharper" || v.Hook != "New hook." {
		t.Fatalf("draft=%+v", v)
	}
	if v.Feedback != "" {
		t.Fatalf("feedback=%q, want cleared", v.Feedback)
	}
	if v.Phase != PhaseDraft {
		t.Fatalf("phase=%v", v.Phase)
	}
}

func TestRevise_RequiresFeedback(t *testing.T) {
	client := newScriptedAgent()
	client.queue(agent.DefaultScriptAgentID, jsonResult(scriptPayload))
	session, _ := newTestSession(t, client)
	session.SetIdea("an idea")
	if err := session.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if err := session.Revise(context.Background()); err != ErrNoFeedback {
		t.Fatalf("err=%v, want ErrNoFeedback", err)
	}
}

func TestRevise_FailureKeepsDraft(t *testing.T) {
	client := newScriptedAgent()
	client.queue(agent.DefaultScriptAgentID, jsonResult(scriptPayload))
	session, _ := newTestSession(t, client)
	session.SetIdea("an idea")
	if err := session.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	session.SetFeedback("try again")

	if err := session.Revise(context.Background()); err == nil {
		t.Fatal("Revise should fail with no scripted results")
	}
	v := session.View()
	if v.Phase != PhaseDraft || v.Title != "Stop Guessing" {
		t.Fatalf("draft lost: %+v", v)
	}
	if v.Feedback != "try again" {
		t.Fatalf("feedback=%q, want preserved on failure", v.Feedback)
	}
}

func TestApprove_SnapshotsEditsAndRecordsHistory(t *testing.T) {
	client := newScriptedAgent()
	client.queue(agent.DefaultScriptAgentID, jsonResult(scriptPayload))
	session, store := newTestSession(t, client)
	session.SetIdea("an idea")
	if err := session.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	session.SetCTA("Edited CTA.")

	entry, err := session.Approve()
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if entry.Status != history.StatusApproved {
		t.Fatalf("status=%q", entry.Status)
	}
	if entry.Script == nil || entry.Script.CTA != "Edited CTA." {
		t.Fatalf("script=%+v, want edited CTA snapshotted", entry.Script)
	}

	entries := store.Entries()
	if len(entries) != 1 || entries[0].ID != entry.ID {
		t.Fatalf("entries=%+v", entries)
	}
	if session.View().Phase != PhaseApproved {
		t.Fatalf("phase=%v", session.View().Phase)
	}
}

func TestApprove_RequiresDraft(t *testing.T) {
	session, _ := newTestSession(t, newScriptedAgent())
	if _, err := session.Approve(); err != ErrNotDraft {
		t.Fatalf("err=%v, want ErrNotDraft", err)
	}
}

func TestGenerateVideo_FullPipeline(t *testing.T) {
	client := newScriptedAgent()
	client.queue(agent.DefaultScriptAgentID, jsonResult(scriptPayload))
	client.queue(agent.DefaultVideoAgentID, jsonResult(videoPayload))
	session, store := newTestSession(t, client)
	session.SetIdea("an idea")
	if err := session.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := session.Approve(); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	count, err := session.GenerateVideo(context.Background())
	if err != nil {
		t.Fatalf("GenerateVideo: %v", err)
	}
	if count != 1 {
		t.Fatalf("count=%d, want 1 history entry updated", count)
	}

	v := session.View()
	if v.Phase != PhaseVideoReady || !v.Video.Generated() {
		t.Fatalf("view=%+v", v)
	}

	// 视频提示词是展平后的已批准脚本 / The video prompt is the flattened approved script
	prompt := client.messages[len(client.messages)-1]
	if !strings.HasPrefix(prompt, "Title: Stop Guessing\n\nHOOK:\n") {
		t.Fatalf("prompt=%q", prompt)
	}

	entries := store.Entries()
	if entries[0].Status != history.StatusVideoScriptGenerated {
		t.Fatalf("status=%q", entries[0].Status)
	}
	if entries[0].VideoScript == nil || !entries[0].VideoScript.Generated() {
		t.Fatalf("videoScript=%+v", entries[0].VideoScript)
	}
}

func TestGenerateVideo_RequiresApproval(t *testing.T) {
	client := newScriptedAgent()
	client.queue(agent.DefaultScriptAgentID, jsonResult(scriptPayload))
	session, _ := newTestSession(t, client)
	session.SetIdea("an idea")
	if err := session.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := session.GenerateVideo(context.Background()); err != ErrNotApproved {
		t.Fatalf("err=%v, want ErrNotApproved", err)
	}
}

func TestGenerateVideo_EmptyScriptFailsAndKeepsApproval(t *testing.T) {
	client := newScriptedAgent()
	client.queue(agent.DefaultScriptAgentID, jsonResult(scriptPayload))
	client.queue(agent.DefaultVideoAgentID,
		jsonResult(`{"video_script":"","total_duration":"","scene_count":""}`),
		jsonResult(`{"video_script":"","total_duration":"","scene_count":""}`),
		jsonResult(`{"video_script":"","total_duration":"","scene_count":""}`),
	)
	session, store := newTestSession(t, client)
	session.SetIdea("an idea")
	if err := session.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := session.Approve(); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	_, err := session.GenerateVideo(context.Background())
	if err == nil || err.Error() != "Video script was empty." {
		t.Fatalf("err=%v", err)
	}
	if session.View().Phase != PhaseApproved {
		t.Fatalf("phase=%v, want approval preserved", session.View().Phase)
	}
	if store.Entries()[0].Status != history.StatusApproved {
		t.Fatalf("history status changed on failure")
	}
}

func TestGenerateVideo_UpdatesAllMatchingEntries(t *testing.T) {
	client := newScriptedAgent()
	client.queue(agent.DefaultScriptAgentID, jsonResult(scriptPayload), jsonResult(scriptPayload))
	client.queue(agent.DefaultVideoAgentID, jsonResult(videoPayload))
	session, store := newTestSession(t, client)

	// 同一想法批准两次 / Approve the same idea twice
	session.SetIdea("duplicate idea")
	if err := session.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := session.Approve(); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	session.ReuseIdea(store.Entries()[0])
	if err := session.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := session.Approve(); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	count, err := session.GenerateVideo(context.Background())
	if err != nil {
		t.Fatalf("GenerateVideo: %v", err)
	}
	if count != 2 {
		t.Fatalf("count=%d, want both approved entries updated", count)
	}
	for _, e := range store.Entries() {
		if e.Status != history.StatusVideoScriptGenerated {
			t.Fatalf("entry %s status=%q", e.ID, e.Status)
		}
	}
}

func TestReuseIdea_RestoresInputsOnly(t *testing.T) {
	client := newScriptedAgent()
	client.queue(agent.DefaultScriptAgentID, jsonResult(scriptPayload))
	session, store := newTestSession(t, client)
	session.SetIdea("reusable idea")
	if err := session.SetContentType("How-To"); err != nil {
		t.Fatalf("SetContentType: %v", err)
	}
	session.SetNotes("some notes")
	if err := session.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := session.Approve(); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	session.Reset()
	session.ReuseIdea(store.Entries()[0])

	v := session.View()
	if v.Idea != "reusable idea" || v.ContentType != "How-To" || v.Notes != "some notes" {
		t.Fatalf("view=%+v", v)
	}
	if v.Phase != PhaseIdle || v.HasScript {
		t.Fatalf("view=%+v, want blank pipeline", v)
	}
}

func TestSetContentType_RejectsUnknown(t *testing.T) {
	session, _ := newTestSession(t, newScriptedAgent())
	if err := session.SetContentType("Vlog"); err == nil {
		t.Fatal("SetContentType should reject unknown types")
	}
	if err := session.SetContentType("case study"); err != nil {
		t.Fatalf("SetContentType should match case-insensitively: %v", err)
	}
	if session.View().ContentType != "Case Study" {
		t.Fatalf("ContentType=%q, want canonical casing", session.View().ContentType)
	}
}

func TestEditFields_IgnoredOutsideDraft(t *testing.T) {
	session, _ := newTestSession(t, newScriptedAgent())
	session.SetHook("should not stick")
	if v := session.View(); v.Hook != "" {
		t.Fatalf("Hook=%q, want edit ignored outside draft", v.Hook)
	}
}
