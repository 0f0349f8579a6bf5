package history

import (
	"encoding/json"
	"sync"
	"time"

	"studio/internal/script"
	"studio/internal/storage"

	"github.com/oklog/ulid/v2"
)

// SlotKey 持久化槽位名，沿用浏览器版的存储键
// SlotKey is the persistence slot name, carried over from the browser build
const SlotKey = "ugc_pipeline_history"

// Status 会话生命周期状态 / Status is the session lifecycle state
type Status string

const (
	StatusDraft                Status = "draft"
	StatusApproved             Status = "approved"
	StatusVideoScriptGenerated Status = "videoScriptGenerated"
)

// Entry 一次完整的创作会话（历史记录的单位）。JSON 字段名与浏览器版的
// localStorage 布局保持一致，便于迁移既有数据。
// Entry is one full authoring session, the unit of history. JSON field names
// match the browser build's localStorage layout so existing data migrates.
type Entry struct {
	ID          string              `json:"id"`
	ContentIdea string              `json:"contentIdea"`
	ContentType string              `json:"contentType"`
	Notes       string              `json:"notes"`
	Script      *script.Script      `json:"scriptData"`
	VideoScript *script.VideoScript `json:"promptData"`
	Status      Status              `json:"status"`
	CreatedAt   string              `json:"createdAt"`
}

// NewID 生成时间有序的唯一条目 ID / NewID generates a time-ordered unique entry ID
func NewID() string {
	return ulid.Make().String()
}

// Store 有序的会话历史，最新在前，每次变更整体落盘到一个槽位。
// 示例数据模式下换用固定样例列表并抑制所有写入。
// Store is the ordered session history, most-recent-first, persisted
// wholesale into one slot on every mutation. Sample mode substitutes the
// fixture list and suppresses all writes.
type Store struct {
	mu      sync.Mutex
	slot    storage.Slot
	entries []Entry
	sample  bool
}

// New 创建历史存储并读入已持久化的列表。槽位缺失或内容损坏一律视为
// 空历史，绝不向调用方抛解析错误。
// New creates the store and loads the persisted list. Absence or corruption
// yields an empty history; parse errors never propagate.
func New(slot storage.Slot) *Store {
	s := &Store{slot: slot}
	s.entries = s.load()
	return s
}

func (s *Store) load() []Entry {
	value, ok, err := s.slot.Get(SlotKey)
	if err != nil || !ok {
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(value), &entries); err != nil {
		return nil
	}
	return entries
}

func (s *Store) persist() {
	if s.sample {
		return
	}
	data, err := json.Marshal(s.entries)
	if err != nil {
		return
	}
	// 持久化失败被吞掉：历史只是缓存，不值得让会话失败
	// Persistence failures are swallowed: history is a cache, not worth
	// failing the session over
	_ = s.slot.Set(SlotKey, string(data))
}

// Entries 返回当前列表的副本 / Entries returns a copy of the current list
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Reload 重新从槽位读取列表（示例模式下为 no-op）
// Reload re-reads the list from the slot (no-op in sample mode)
func (s *Store) Reload() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.sample {
		s.entries = s.load()
	}
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Append 头插一条会话并整体落盘 / Append prepends one session and persists
func (s *Store) Append(entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.CreatedAt == "" {
		entry.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	s.entries = append([]Entry{entry}, s.entries...)
	s.persist()
}

// UpdateMatching 对所有满足谓词的条目应用变更并落盘，返回命中数。
// 注意：按内容文本匹配时同文多条会全部命中（与浏览器版一致）。
// UpdateMatching applies the mutation to every entry satisfying the
// predicate, persists, and returns the match count. When matching by idea
// text, duplicate ideas all match (same as the browser build).
func (s *Store) UpdateMatching(match func(Entry) bool, mutate func(*Entry)) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for i := range s.entries {
		if match(s.entries[i]) {
			mutate(&s.entries[i])
			count++
		}
	}
	if count > 0 {
		s.persist()
	}
	return count
}

// Clear 清空全部历史并落盘空列表 / Clear wipes the history and persists the empty list
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.persist()
}

// SetSampleMode 切换示例数据模式。开启时换入样例列表并停写；关闭时
// 重新读入持久化历史。
// SetSampleMode toggles sample mode: on substitutes the fixture list and
// stops writing; off restores the persisted history.
func (s *Store) SetSampleMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sample == on {
		return
	}
	s.sample = on
	if on {
		s.entries = SampleEntries()
	} else {
		s.entries = s.load()
	}
}

// SampleMode 返回是否处于示例模式 / SampleMode reports whether sample mode is on
func (s *Store) SampleMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sample
}
