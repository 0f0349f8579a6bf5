package cli

import (
	"testing"

	"studio/internal/history"
)

func TestFindEntry(t *testing.T) {
	entries := []history.Entry{
		{ID: "01ARZ3NDEKTSV4RRFFQ69G5FAA", ContentIdea: "first"},
		{ID: "01BRZ3NDEKTSV4RRFFQ69G5FBB", ContentIdea: "second"},
	}

	if e, ok := findEntry(entries, "2"); !ok || e.ContentIdea != "second" {
		t.Fatalf("by index: ok=%v entry=%+v", ok, e)
	}
	if e, ok := findEntry(entries, "01ARZ"); !ok || e.ContentIdea != "first" {
		t.Fatalf("by prefix: ok=%v entry=%+v", ok, e)
	}
	if _, ok := findEntry(entries, "0"); ok {
		t.Fatal("index 0 should not resolve")
	}
	if _, ok := findEntry(entries, "3"); ok {
		t.Fatal("out-of-range index should not resolve")
	}
	if _, ok := findEntry(entries, "ZZZ"); ok {
		t.Fatal("unknown prefix should not resolve")
	}
	if _, ok := findEntry(nil, "1"); ok {
		t.Fatal("empty history should not resolve")
	}
}
