package script

import (
	"strings"
	"testing"
)

func TestSegment_StyleAndScenes(t *testing.T) {
	b := Segment("Style: minimal\nScene 1: Intro\nVisual: a room\nScene 2: Outro\nVisual: fade")
	if b.StyleDirective != "minimal" {
		t.Fatalf("StyleDirective=%q, want %q", b.StyleDirective, "minimal")
	}
	if len(b.Scenes) != 2 {
		t.Fatalf("scene count=%d, want 2", len(b.Scenes))
	}
	if b.Scenes[0].Title != "Intro" || b.Scenes[1].Title != "Outro" {
		t.Fatalf("titles=%q,%q", b.Scenes[0].Title, b.Scenes[1].Title)
	}
	if b.Scenes[0].Visual != "a room" || b.Scenes[1].Visual != "fade" {
		t.Fatalf("visuals=%q,%q", b.Scenes[0].Visual, b.Scenes[1].Visual)
	}
}

func TestSegment_SingleScene(t *testing.T) {
	b := Segment("Scene 1: Hook\nVO: \"hi\"\nDuration: 5 seconds")
	if b.StyleDirective != "" {
		t.Fatalf("StyleDirective=%q, want empty", b.StyleDirective)
	}
	if len(b.Scenes) != 1 {
		t.Fatalf("scene count=%d, want 1", len(b.Scenes))
	}
	s := b.Scenes[0]
	if s.Title != "Hook" {
		t.Fatalf("Title=%q", s.Title)
	}
	// VO 行去掉引号 / Surrounding quotes are stripped from VO lines
	if s.Voiceover != "hi" {
		t.Fatalf("Voiceover=%q", s.Voiceover)
	}
	if s.Duration != "5 seconds" {
		t.Fatalf("Duration=%q", s.Duration)
	}
}

func TestSegment_MultilineGroupsJoined(t *testing.T) {
	b := Segment("Scene 3: Demo\nVisual: first cut\nVisual: second cut\nVO: part one\nVO: part two\nnote line\nanother note")
	if len(b.Scenes) != 1 {
		t.Fatalf("scene count=%d, want 1", len(b.Scenes))
	}
	s := b.Scenes[0]
	if s.Visual != "first cut second cut" {
		t.Fatalf("Visual=%q", s.Visual)
	}
	if s.Voiceover != "part one part two" {
		t.Fatalf("Voiceover=%q", s.Voiceover)
	}
	if s.Other != "note line another note" {
		t.Fatalf("Other=%q", s.Other)
	}
}

func TestSegment_LastDurationWins(t *testing.T) {
	b := Segment("Scene 1: Hook\nDuration: 3 seconds\nDuration: 8 seconds")
	if b.Scenes[0].Duration != "8 seconds" {
		t.Fatalf("Duration=%q, want %q", b.Scenes[0].Duration, "8 seconds")
	}
}

func TestSegment_CaseInsensitivePrefixes(t *testing.T) {
	b := Segment("scene 2: Reveal\nvo: whispered line\nvisual: slow zoom\nduration: 4 seconds")
	if len(b.Scenes) != 1 {
		t.Fatalf("scene count=%d, want 1", len(b.Scenes))
	}
	s := b.Scenes[0]
	if s.Title != "Reveal" || s.Voiceover != "whispered line" || s.Visual != "slow zoom" || s.Duration != "4 seconds" {
		t.Fatalf("unexpected scene: %+v", s)
	}
}

func TestSegment_NoSceneHeaders(t *testing.T) {
	// 没有场景头时全文成为风格说明 / Without headers the whole text is the style directive
	b := Segment("Just some loose production notes.")
	if b.StyleDirective != "Just some loose production notes." {
		t.Fatalf("StyleDirective=%q", b.StyleDirective)
	}
	if len(b.Scenes) != 0 {
		t.Fatalf("scene count=%d, want 0", len(b.Scenes))
	}
}

func TestSegment_Empty(t *testing.T) {
	b := Segment("")
	if b.StyleDirective != "" || len(b.Scenes) != 0 {
		t.Fatalf("empty input should yield empty breakdown: %+v", b)
	}
	b = Segment("   \n\n  ")
	if b.StyleDirective != "" || len(b.Scenes) != 0 {
		t.Fatalf("whitespace input should yield empty breakdown: %+v", b)
	}
}

func TestSegment_MalformedNeverDrops(t *testing.T) {
	raw := "Scene 1:\nweird ::: line\nVO:\nScene 2: Ok"
	b := Segment(raw)
	if len(b.Scenes) != 2 {
		t.Fatalf("scene count=%d, want 2", len(b.Scenes))
	}
	// 标题模式匹配不到时回落为原始头部行 / Header falls back to the raw line
	if b.Scenes[0].Title != "Scene 1:" {
		t.Fatalf("Title=%q", b.Scenes[0].Title)
	}
	if !strings.Contains(b.Scenes[0].Other, "weird ::: line") {
		t.Fatalf("unrecognized lines must be preserved, got Other=%q", b.Scenes[0].Other)
	}
}

func TestSegment_SampleFixtureShape(t *testing.T) {
	raw := "Style: Use minimal, clean styled visuals.\n\n" +
		"Scene 1: Hook (A-roll)\nVisual: Avatar on dark background\nVO: \"Wait -- really?\"\nDuration: 5 seconds\n\n" +
		"Scene 2: CTA\nVisual: Animated text overlay\nVO: \"Link in bio\"\nDuration: 8 seconds"
	b := Segment(raw)
	if b.StyleDirective != "Use minimal, clean styled visuals." {
		t.Fatalf("StyleDirective=%q", b.StyleDirective)
	}
	if len(b.Scenes) != 2 {
		t.Fatalf("scene count=%d, want 2", len(b.Scenes))
	}
	if b.Scenes[0].Index != 1 || b.Scenes[1].Index != 2 {
		t.Fatalf("indexes=%d,%d", b.Scenes[0].Index, b.Scenes[1].Index)
	}
	if b.Scenes[1].Voiceover != "Link in bio" {
		t.Fatalf("Voiceover=%q", b.Scenes[1].Voiceover)
	}
}
