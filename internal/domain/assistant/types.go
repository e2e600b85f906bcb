package assistant

// ThreadIDPrefix 远端服务商线程 ID 的固定前缀
// 所有接口层的线程 ID 校验都以此为准
const ThreadIDPrefix = "thread_"

// RunStatus 运行状态（由远端服务商推进，本系统只读取）
type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusCancelling     RunStatus = "cancelling"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusExpired        RunStatus = "expired"
)

// Terminal 判断运行是否已到达终态
func (s RunStatus) Terminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusFailed, RunStatusCancelled, RunStatusExpired:
		return true
	}
	return false
}

// Run 一次助手调用的生命周期
// 每个用户回合创建一个 Run，绑定唯一线程，不跨回合复用
type Run struct {
	ID        string     `json:"id"`
	ThreadID  string     `json:"thread_id"`
	Status    RunStatus  `json:"status"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"` // requires_action 时待处理的工具调用
	LastError string     `json:"last_error,omitempty"`
}

// ToolCall 运行暂停时要求调用方解决的工具调用
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolOutput 调用方回传的工具执行结果
type ToolOutput struct {
	ToolCallID string `json:"tool_call_id"`
	Output     string `json:"output"`
}

// 消息角色
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message 线程内的一条消息（远端持有权威日志，本地只读）
type Message struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"created_at"`
}

// HistoryEntry 客户端侧回放的历史条目（completion 模式使用）
type HistoryEntry struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// FileStatus 知识库中一个文件的注册状态
// 状态流转（上传中 → 索引中 → 就绪）由远端驱动，本系统仅观察
type FileStatus struct {
	FileID   string `json:"file_id"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
}
