package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileSlot 基于单文件 JSON 落盘的 Slot 实现（每个键一个文件）
// FileSlot implements Slot with one file per key under a base directory
type FileSlot struct {
	baseDir string
	mu      sync.Mutex
}

// NewFileSlot 创建文件槽位存储 / NewFileSlot creates a file-backed slot store
func NewFileSlot(baseDir string) (*FileSlot, error) {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		return nil, fmt.Errorf("storage base dir is empty")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", baseDir, err)
	}
	return &FileSlot{baseDir: baseDir}, nil
}

func (f *FileSlot) slotPath(key string) string {
	// 键名直接做文件名；调用方只使用固定的槽位名
	// Keys map directly to file names; callers only use fixed slot names
	return filepath.Join(f.baseDir, key+".json")
}

// Get 读取槽位 / Get reads one slot
func (f *FileSlot) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.slotPath(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read slot %q: %w", key, err)
	}
	return string(data), true, nil
}

// Set 整体覆写槽位（先写临时文件再改名，保证原子性）
// Set overwrites one slot wholesale (temp file + rename for atomicity)
func (f *FileSlot) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.slotPath(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write slot %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace slot %q: %w", key, err)
	}
	return nil
}

// Delete 移除槽位 / Delete removes one slot
func (f *FileSlot) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.slotPath(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete slot %q: %w", key, err)
	}
	return nil
}

// Close 无需释放资源 / Close has nothing to release
func (f *FileSlot) Close() error {
	return nil
}
