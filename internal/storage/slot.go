package storage

// Slot 命名键值槽的持久化接口，支持多后端 (SQLite / JSON 文件 / 内存)
// Slot is the named key-value persistence interface supporting multiple
// backends (SQLite / JSON file / in-memory)
type Slot interface {
	// Get 读取一个槽位；不存在时 ok=false 而不是错误
	// Get reads one slot; a missing key yields ok=false, not an error
	Get(key string) (value string, ok bool, err error)

	// Set 整体覆写一个槽位 / Set overwrites one slot wholesale
	Set(key, value string) error

	// Delete 移除一个槽位；不存在时为 no-op
	// Delete removes one slot; missing keys are a no-op
	Delete(key string) error

	// Close 释放后端资源 / Close releases backend resources
	Close() error
}
