package script

import "testing"

func TestCoerce_ObjectPayload(t *testing.T) {
	payload := map[string]any{
		"hook":               "H",
		"body":               "B",
		"cta":                "C",
		"title":              "T",
		"estimated_duration": "45 seconds",
	}
	s := Coerce(payload)
	if s == nil {
		t.Fatal("Coerce returned nil for a valid object")
	}
	if s.Hook != "H" || s.Body != "B" || s.CTA != "C" || s.Title != "T" || s.EstimatedDuration != "45 seconds" {
		t.Fatalf("unexpected script: %+v", s)
	}
}

func TestCoerce_StringPayload(t *testing.T) {
	s := Coerce(`{"hook":"from json","title":"Parsed"}`)
	if s == nil {
		t.Fatal("Coerce returned nil for a JSON string payload")
	}
	if s.Hook != "from json" || s.Title != "Parsed" {
		t.Fatalf("unexpected script: %+v", s)
	}
	// 缺失字段回落为空串 / Missing fields default to ""
	if s.Body != "" || s.CTA != "" || s.EstimatedDuration != "" {
		t.Fatalf("missing fields should be empty: %+v", s)
	}
}

func TestCoerce_DefaultsNonStringFields(t *testing.T) {
	payload := map[string]any{
		"hook":  "only hook",
		"body":  42,
		"cta":   nil,
		"title": []any{"not", "a", "string"},
	}
	s := Coerce(payload)
	if s == nil {
		t.Fatal("Coerce returned nil for an object with one valid string field")
	}
	if s.Hook != "only hook" {
		t.Fatalf("Hook=%q", s.Hook)
	}
	if s.Body != "" || s.CTA != "" {
		t.Fatalf("non-string fields should default to empty: %+v", s)
	}
	if s.Title != DefaultTitle {
		t.Fatalf("Title=%q, want %q", s.Title, DefaultTitle)
	}
}

func TestCoerce_Unparseable(t *testing.T) {
	cases := []any{
		nil,
		"not json at all",
		`"just a string"`,
		`[1,2,3]`,
		3.14,
		true,
	}
	for _, payload := range cases {
		if s := Coerce(payload); s != nil {
			t.Fatalf("Coerce(%v) should be nil, got %+v", payload, s)
		}
	}
}

func TestCoerceVideo_NeverNil(t *testing.T) {
	// 不可解析的载荷得到全空记录 / Unparseable payloads yield an all-empty record
	for _, payload := range []any{nil, "garbage", 7, `[true]`} {
		v := CoerceVideo(payload)
		if v.FullText != "" || v.TotalDuration != "" || v.SceneCount != "" {
			t.Fatalf("CoerceVideo(%v) should be empty, got %+v", payload, v)
		}
		if v.Generated() {
			t.Fatalf("empty video script must not count as generated")
		}
	}
}

func TestCoerceVideo_StringPayload(t *testing.T) {
	v := CoerceVideo(`{"video_script":"Scene 1: Hook","total_duration":"5 seconds","scene_count":"1"}`)
	if v.FullText != "Scene 1: Hook" {
		t.Fatalf("FullText=%q", v.FullText)
	}
	if v.TotalDuration != "5 seconds" || v.SceneCount != "1" {
		t.Fatalf("unexpected video script: %+v", v)
	}
	if !v.Generated() {
		t.Fatal("non-empty FullText should count as generated")
	}
}

func TestCoerceVideo_PartialObject(t *testing.T) {
	v := CoerceVideo(map[string]any{"video_script": "Scene 1: Intro", "scene_count": 3})
	if v.FullText != "Scene 1: Intro" {
		t.Fatalf("FullText=%q", v.FullText)
	}
	if v.SceneCount != "" {
		t.Fatalf("non-string scene_count should default to empty, got %q", v.SceneCount)
	}
}
