package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AgentConfig 智能体边界配置：OpenAI 兼容端点加两个固定智能体身份与重试策略
// AgentConfig configures the agent boundary: the OpenAI-compatible endpoint,
// the two fixed agent identities, and the retry policy
type AgentConfig struct {
	BaseURL       string `json:"base_url"`
	APIKey        string `json:"api_key"`
	Model         string `json:"model"`
	TimeoutMS     int    `json:"timeout_ms"`
	ScriptAgentID string `json:"script_agent_id"`
	VideoAgentID  string `json:"video_agent_id"`
	MaxRetries    int    `json:"max_retries"`
	BaseDelayMS   int    `json:"base_delay_ms"`
}

// StorageConfig 历史持久化配置 / StorageConfig configures history persistence
type StorageConfig struct {
	// Backend 取值 sqlite | file | memory / Backend is sqlite | file | memory
	Backend string `json:"backend"`
	BaseDir string `json:"base_dir"`
}

// UIConfig 前端配置 / UIConfig configures the frontends
type UIConfig struct {
	Locale string `json:"locale"`
	// Sample 启动时直接进入示例数据模式
	// Sample starts directly in sample-data mode
	Sample bool `json:"sample"`
}

type Config struct {
	Agent   AgentConfig   `json:"agent"`
	Storage StorageConfig `json:"storage"`
	UI      UIConfig      `json:"ui"`
}

type fileConfig struct {
	Agent   *AgentConfig   `json:"agent"`
	Storage *StorageConfig `json:"storage"`
	UI      *fileUIConfig  `json:"ui"`
}

type fileUIConfig struct {
	Locale *string `json:"locale"`
	Sample *bool   `json:"sample"`
}

func Default() Config {
	return Config{
		Agent: AgentConfig{
			BaseURL:       "https://api.openai.com/v1",
			Model:         "gpt-4o-mini",
			TimeoutMS:     60000,
			ScriptAgentID: "699357fe777b6c1c03678e87",
			VideoAgentID:  "699357e6b175ad1ab1aed1ef",
			MaxRetries:    2,
			BaseDelayMS:   1500,
		},
		Storage: StorageConfig{
			Backend: "sqlite",
			BaseDir: "~/.studio",
		},
		UI: UIConfig{
			Locale: "en",
		},
	}
}

// Load 读取配置：默认值 → 全局 ~/.studio/config.json → 项目配置或显式
// 路径 → 环境变量，后者覆盖前者。
// Load reads configuration: defaults, then the global ~/.studio/config.json,
// then the project config or an explicit path, then env vars, later layers
// overriding earlier ones.
func Load(path string) (Config, error) {
	cfg := Default()

	for _, globalPath := range globalConfigPaths() {
		if err := mergeFromFile(&cfg, globalPath); err != nil {
			return Config{}, err
		}
	}

	resolvedPath := strings.TrimSpace(path)
	if envPath := strings.TrimSpace(os.Getenv("STUDIO_CONFIG_PATH")); envPath != "" {
		resolvedPath = envPath
	}
	if resolvedPath == "" {
		resolvedPath = findProjectConfigPath()
	}
	if err := mergeFromFile(&cfg, resolvedPath); err != nil {
		return Config{}, err
	}

	cfg, err := applyEnv(cfg)
	if err != nil {
		return Config{}, err
	}
	if err := normalize(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func globalConfigPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(home, ".studio", "config.json")}
}

func findProjectConfigPath() string {
	candidates := []string{
		"studio.config.json",
		".studio/config.json",
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

func mergeFromFile(cfg *Config, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	resolved, err := ExpandPath(path)
	if err != nil {
		return fmt.Errorf("expand config path %q: %w", path, err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %q: %w", resolved, err)
	}

	cleaned := stripJSONComments(data)
	var fileCfg fileConfig
	if err := json.Unmarshal(cleaned, &fileCfg); err != nil {
		return fmt.Errorf("parse config %q: %w", resolved, err)
	}
	applyFileConfig(cfg, fileCfg)
	return nil
}

func applyFileConfig(cfg *Config, fc fileConfig) {
	if fc.Agent != nil {
		cfg.Agent = mergeAgent(cfg.Agent, *fc.Agent)
	}
	if fc.Storage != nil {
		cfg.Storage = mergeStorage(cfg.Storage, *fc.Storage)
	}
	if fc.UI != nil {
		if fc.UI.Locale != nil {
			cfg.UI.Locale = *fc.UI.Locale
		}
		if fc.UI.Sample != nil {
			cfg.UI.Sample = *fc.UI.Sample
		}
	}
}

func mergeAgent(base AgentConfig, override AgentConfig) AgentConfig {
	if strings.TrimSpace(override.BaseURL) != "" {
		base.BaseURL = override.BaseURL
	}
	if strings.TrimSpace(override.APIKey) != "" {
		base.APIKey = override.APIKey
	}
	if strings.TrimSpace(override.Model) != "" {
		base.Model = override.Model
	}
	if override.TimeoutMS > 0 {
		base.TimeoutMS = override.TimeoutMS
	}
	if strings.TrimSpace(override.ScriptAgentID) != "" {
		base.ScriptAgentID = override.ScriptAgentID
	}
	if strings.TrimSpace(override.VideoAgentID) != "" {
		base.VideoAgentID = override.VideoAgentID
	}
	if override.MaxRetries > 0 {
		base.MaxRetries = override.MaxRetries
	}
	if override.BaseDelayMS > 0 {
		base.BaseDelayMS = override.BaseDelayMS
	}
	return base
}

func mergeStorage(base StorageConfig, override StorageConfig) StorageConfig {
	if strings.TrimSpace(override.Backend) != "" {
		base.Backend = override.Backend
	}
	if strings.TrimSpace(override.BaseDir) != "" {
		base.BaseDir = override.BaseDir
	}
	return base
}

func applyEnv(cfg Config) (Config, error) {
	if v := strings.TrimSpace(os.Getenv("STUDIO_BASE_URL")); v != "" {
		cfg.Agent.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDIO_MODEL")); v != "" {
		cfg.Agent.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDIO_API_KEY")); v != "" {
		cfg.Agent.APIKey = v
	} else if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		cfg.Agent.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDIO_DATA_DIR")); v != "" {
		cfg.Storage.BaseDir = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDIO_MAX_RETRIES")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid STUDIO_MAX_RETRIES: %q", v)
		}
		cfg.Agent.MaxRetries = n
	}
	return cfg, nil
}

func normalize(cfg *Config) error {
	switch cfg.Storage.Backend {
	case "sqlite", "file", "memory":
	case "":
		cfg.Storage.Backend = "sqlite"
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	resolved, err := ExpandPath(cfg.Storage.BaseDir)
	if err != nil {
		return err
	}
	cfg.Storage.BaseDir = resolved

	if cfg.UI.Locale == "" {
		cfg.UI.Locale = "en"
	}
	return nil
}

// ExpandPath 展开 ~ 前缀并转为绝对路径 / ExpandPath expands ~ and makes the path absolute
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		if path == "~" {
			path = home
		} else {
			path = filepath.Join(home, strings.TrimPrefix(path, "~/"))
		}
	}
	return filepath.Abs(path)
}

// stripJSONComments 允许配置文件携带 // 与 /* */ 注释
// stripJSONComments lets config files carry // and /* */ comments
func stripJSONComments(data []byte) []byte {
	const (
		stateNormal = iota
		stateString
		stateLineComment
		stateBlockComment
	)

	state := stateNormal
	escaped := false
	out := bytes.Buffer{}

	for i := 0; i < len(data); i++ {
		c := data[i]
		next := byte(0)
		if i+1 < len(data) {
			next = data[i+1]
		}

		switch state {
		case stateNormal:
			if c == '"' {
				state = stateString
				out.WriteByte(c)
				continue
			}
			if c == '/' && next == '/' {
				state = stateLineComment
				i++
				continue
			}
			if c == '/' && next == '*' {
				state = stateBlockComment
				i++
				continue
			}
			out.WriteByte(c)
		case stateString:
			out.WriteByte(c)
			if escaped {
				escaped = false
				continue
			}
			if c == '\\' {
				escaped = true
				continue
			}
			if c == '"' {
				state = stateNormal
			}
		case stateLineComment:
			if c == '\n' {
				state = stateNormal
				out.WriteByte(c)
			}
		case stateBlockComment:
			if c == '*' && next == '/' {
				state = stateNormal
				i++
			}
		}
	}

	return out.Bytes()
}
