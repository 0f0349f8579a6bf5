package history

import (
	"encoding/json"
	"testing"

	"studio/internal/script"
	"studio/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.MemorySlot) {
	t.Helper()
	slot := storage.NewMemorySlot()
	return New(slot), slot
}

func TestStore_LoadEmptyOnAbsence(t *testing.T) {
	store, _ := newTestStore(t)
	if len(store.Entries()) != 0 {
		t.Fatalf("fresh store should be empty, got %d entries", len(store.Entries()))
	}
}

func TestStore_LoadEmptyOnCorruption(t *testing.T) {
	slot := storage.NewMemorySlot()
	if err := slot.Set(SlotKey, "{not valid json"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	store := New(slot)
	if len(store.Entries()) != 0 {
		t.Fatal("corrupt slot must yield an empty history, not an error")
	}
}

func TestStore_AppendPrepends(t *testing.T) {
	store, slot := newTestStore(t)

	store.Append(Entry{ID: "a", ContentIdea: "first", Status: StatusApproved})
	store.Append(Entry{ID: "b", ContentIdea: "second", Status: StatusApproved})

	entries := store.Entries()
	if len(entries) != 2 {
		t.Fatalf("count=%d, want 2", len(entries))
	}
	if entries[0].ID != "b" || entries[1].ID != "a" {
		t.Fatalf("order=%s,%s, want b,a", entries[0].ID, entries[1].ID)
	}
	if entries[0].CreatedAt == "" {
		t.Fatal("Append should stamp CreatedAt")
	}

	// 整表落盘 / The full list is persisted
	value, ok, _ := slot.Get(SlotKey)
	if !ok {
		t.Fatal("Append should persist the list")
	}
	var persisted []Entry
	if err := json.Unmarshal([]byte(value), &persisted); err != nil {
		t.Fatalf("persisted list is not valid JSON: %v", err)
	}
	if len(persisted) != 2 || persisted[0].ID != "b" {
		t.Fatalf("persisted order unexpected: %+v", persisted)
	}
}

func TestStore_UpdateMatchingAll(t *testing.T) {
	store, _ := newTestStore(t)
	store.Append(Entry{ID: "a", ContentIdea: "same idea", Status: StatusApproved})
	store.Append(Entry{ID: "b", ContentIdea: "same idea", Status: StatusApproved})
	store.Append(Entry{ID: "c", ContentIdea: "other", Status: StatusDraft})

	video := script.VideoScript{FullText: "Scene 1: Hook", SceneCount: "1"}
	count := store.UpdateMatching(
		func(e Entry) bool { return e.ContentIdea == "same idea" && e.Status == StatusApproved },
		func(e *Entry) {
			v := video
			e.VideoScript = &v
			e.Status = StatusVideoScriptGenerated
		},
	)
	if count != 2 {
		t.Fatalf("count=%d, want 2 (duplicate ideas all match)", count)
	}
	for _, e := range store.Entries() {
		if e.ContentIdea == "same idea" {
			if e.Status != StatusVideoScriptGenerated || e.VideoScript == nil {
				t.Fatalf("entry %s not updated: %+v", e.ID, e)
			}
		} else if e.Status != StatusDraft {
			t.Fatalf("entry %s should be untouched", e.ID)
		}
	}
}

func TestStore_ClearPersistsEmpty(t *testing.T) {
	store, slot := newTestStore(t)
	store.Append(Entry{ID: "a", ContentIdea: "x", Status: StatusApproved})

	store.Clear()
	if len(store.Entries()) != 0 {
		t.Fatal("Clear should empty the list")
	}
	value, ok, _ := slot.Get(SlotKey)
	if !ok || value != "null" && value != "[]" {
		t.Fatalf("Clear should persist an empty list, got %q ok=%v", value, ok)
	}
}

func TestStore_ReloadIdempotent(t *testing.T) {
	slot := storage.NewMemorySlot()
	store := New(slot)
	store.Append(Entry{ID: "a", ContentIdea: "x", Status: StatusApproved})

	first := store.Reload()
	second := store.Reload()
	if len(first) != len(second) || first[0].ID != second[0].ID {
		t.Fatalf("Reload not idempotent: %+v vs %+v", first, second)
	}
}

func TestStore_SampleModeSuppressesWrites(t *testing.T) {
	store, slot := newTestStore(t)
	store.Append(Entry{ID: "real", ContentIdea: "real idea", Status: StatusApproved})

	store.SetSampleMode(true)
	entries := store.Entries()
	if len(entries) != 2 || entries[0].ID != "sample-1" {
		t.Fatalf("sample mode should swap in fixtures: %+v", entries)
	}
	if entries[0].Status != StatusVideoScriptGenerated || entries[1].Status != StatusApproved {
		t.Fatalf("fixture statuses unexpected: %s, %s", entries[0].Status, entries[1].Status)
	}

	// 示例模式下的变更不得落盘 / Mutations in sample mode must not persist
	store.Append(Entry{ID: "ephemeral", ContentIdea: "y", Status: StatusApproved})
	store.Clear()

	store.SetSampleMode(false)
	entries = store.Entries()
	if len(entries) != 1 || entries[0].ID != "real" {
		t.Fatalf("leaving sample mode should restore persisted history: %+v", entries)
	}
	value, _, _ := slot.Get(SlotKey)
	var persisted []Entry
	if err := json.Unmarshal([]byte(value), &persisted); err != nil || len(persisted) != 1 {
		t.Fatalf("persisted history was touched by sample mode: %q", value)
	}
}

func TestStore_PersistFailureSwallowed(t *testing.T) {
	slot := storage.NewMemorySlot()
	store := New(slot)
	slot.FailWrites = true

	// 不应 panic 也不应报错 / Must neither panic nor surface an error
	store.Append(Entry{ID: "a", ContentIdea: "x", Status: StatusApproved})
	if len(store.Entries()) != 1 {
		t.Fatal("in-memory list should still update when persistence fails")
	}
}

func TestNewID_TimeOrderedUnique(t *testing.T) {
	a := NewID()
	b := NewID()
	if a == "" || a == b {
		t.Fatalf("IDs must be unique: %q vs %q", a, b)
	}
	if len(a) != 26 {
		t.Fatalf("ULID length=%d, want 26", len(a))
	}
}
