package storage

import "sync"

// MemorySlot 内存 Slot 实现，用于测试和示例数据模式
// MemorySlot is the in-memory Slot implementation for tests and sample mode
type MemorySlot struct {
	mu    sync.RWMutex
	slots map[string]string

	// FailWrites 置为 true 时所有写入报错，用于验证持久化失败被吞掉
	// When FailWrites is set, writes fail; used to verify persistence
	// failures are swallowed by callers
	FailWrites bool
}

// NewMemorySlot 创建内存槽位存储 / NewMemorySlot creates an in-memory slot store
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{slots: make(map[string]string)}
}

func (m *MemorySlot) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.slots[key]
	return value, ok, nil
}

func (m *MemorySlot) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errSlotUnavailable
	}
	m.slots[key] = value
	return nil
}

func (m *MemorySlot) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errSlotUnavailable
	}
	delete(m.slots, key)
	return nil
}

func (m *MemorySlot) Close() error {
	return nil
}

var errSlotUnavailable = errSlot("slot backend unavailable")

type errSlot string

func (e errSlot) Error() string { return string(e) }
