package assistant

import "context"

// Client 远端助手服务的能力接口
// 每个方法一次阻塞网络调用，除传输层外不做客户端重试
// 远端错误统一以 *RemoteError 返回
type Client interface {
	// CreateThread 创建新会话线程，返回线程 ID
	CreateThread(ctx context.Context) (string, error)

	// PostMessage 向线程追加一条消息，返回消息 ID
	PostMessage(ctx context.Context, threadID, role, text string) (string, error)

	// StartRun 在线程上启动一次助手运行；instructions 为空时沿用助手默认指令
	StartRun(ctx context.Context, threadID, assistantID, instructions string) (Run, error)

	// GetRun 查询运行的当前状态
	GetRun(ctx context.Context, threadID, runID string) (Run, error)

	// SubmitToolOutputs 回传工具结果，恢复 requires_action 状态的运行
	SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ToolOutput) (Run, error)

	// ListMessages 按服务商顺序返回线程消息
	// 调用方必须按角色查找最新的助手消息，不能假设位置
	ListMessages(ctx context.Context, threadID string) ([]Message, error)

	// UploadFile 向远端注册文件，返回文件 ID
	UploadFile(ctx context.Context, filename string, data []byte) (string, error)

	// AttachFileToStore 将文件挂载到知识库
	AttachFileToStore(ctx context.Context, fileID, storeID string) error

	// ListStoreFiles 列出知识库中的文件及索引状态
	ListStoreFiles(ctx context.Context, storeID string) ([]FileStatus, error)

	// DetachFileFromStore 从知识库摘除文件
	DetachFileFromStore(ctx context.Context, fileID, storeID string) error

	// DeleteFile 删除远端文件
	DeleteFile(ctx context.Context, fileID string) error

	// GetOrCreateStore 幂等获取助手关联的知识库：已关联则直接返回，
	// 否则创建并挂到助手上。并发首次调用存在 check-then-act 竞态，
	// 可能产生重复库；重复库代价低，本系统不保证单次创建
	GetOrCreateStore(ctx context.Context, assistantID string) (string, error)
}

// Completer 无状态聊天补全能力（completion 模式的传输通道）
// 历史由调用方逐请求回放，远端不保存上下文
type Completer interface {
	Complete(ctx context.Context, history []HistoryEntry, content string) (string, error)
}

// Extractor 文档文本提取能力
type Extractor interface {
	Extract(data []byte, mimeType string) (string, error)
}
