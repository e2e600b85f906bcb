package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// 会话传输模式
const (
	// ModeThread 有状态模式：历史存在远端线程里
	ModeThread = "thread"
	// ModeCompletion 无状态模式：历史由客户端逐请求回放
	ModeCompletion = "completion"
)

// Config 应用配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	OpenAI OpenAIConfig `yaml:"openai"`
	Chat   ChatConfig   `yaml:"chat"`
	Upload UploadConfig `yaml:"upload"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTPPort string `yaml:"http_port"`
}

// OpenAIConfig 远端助手服务配置
type OpenAIConfig struct {
	// APIKey 必填，缺失是启动期致命错误
	APIKey string `yaml:"api_key"`

	// AssistantID 必填，目标助手标识
	AssistantID string `yaml:"assistant_id"`

	// BaseURL 留空使用官方地址
	BaseURL string `yaml:"base_url"`

	// Model completion 模式使用的模型
	Model string `yaml:"model"`
}

// ChatConfig 会话编排配置
type ChatConfig struct {
	// Mode 部署级传输模式：thread 或 completion，所有路由统一生效
	Mode string `yaml:"mode"`

	// PollInterval 运行状态轮询间隔
	PollInterval time.Duration `yaml:"poll_interval"`

	// RunTimeout 单次运行的轮询时限，超时返回明确的超时错误
	RunTimeout time.Duration `yaml:"run_timeout"`

	// ForwardBaseURL 非空时，上传管道通过 HTTP 回环转发到本服务的
	// 消息端点，而不是进程内直接调用
	ForwardBaseURL string `yaml:"forward_base_url"`
}

// UploadConfig 上传管道配置
type UploadConfig struct {
	// MaxDocumentTokens 提取文本的 token 上限，0 表示不限制
	MaxDocumentTokens int `yaml:"max_document_tokens"`
}

// NewConfig 创建配置：默认值 → 可选配置文件 → 环境变量覆盖
// 必填项缺失返回错误，由启动流程转为致命退出
func NewConfig() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			HTTPPort: ":8080",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Chat: ChatConfig{
			Mode:         ModeThread,
			PollInterval: time.Second,
			RunTimeout:   2 * time.Minute,
		},
		Upload: UploadConfig{
			MaxDocumentTokens: 0,
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile 读取 YAML 配置文件
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv 环境变量覆盖文件与默认值
func (c *Config) applyEnv() {
	setIfPresent(&c.Server.HTTPPort, "HTTP_PORT")
	setIfPresent(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	setIfPresent(&c.OpenAI.AssistantID, "OPENAI_ASSISTANT_ID")
	setIfPresent(&c.OpenAI.BaseURL, "OPENAI_BASE_URL")
	setIfPresent(&c.OpenAI.Model, "OPENAI_MODEL")
	setIfPresent(&c.Chat.Mode, "CHAT_MODE")
	setIfPresent(&c.Chat.ForwardBaseURL, "FORWARD_BASE_URL")

	if v := os.Getenv("CHAT_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Chat.PollInterval = d
		}
	}
	if v := os.Getenv("CHAT_RUN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Chat.RunTimeout = d
		}
	}
}

// Validate 校验必填项与取值范围
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("missing required configuration: OPENAI_API_KEY")
	}
	if c.OpenAI.AssistantID == "" {
		return fmt.Errorf("missing required configuration: OPENAI_ASSISTANT_ID")
	}
	if c.Chat.Mode != ModeThread && c.Chat.Mode != ModeCompletion {
		return fmt.Errorf("invalid chat mode %q: must be %q or %q", c.Chat.Mode, ModeThread, ModeCompletion)
	}
	if c.Chat.PollInterval <= 0 {
		return fmt.Errorf("chat poll_interval must be positive")
	}
	if c.Chat.RunTimeout <= 0 {
		return fmt.Errorf("chat run_timeout must be positive")
	}
	return nil
}

func setIfPresent(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
