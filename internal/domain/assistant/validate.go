package assistant

import "strings"

// ValidateThreadID 校验线程 ID 的格式约定
func ValidateThreadID(id string) error {
	if id == "" || !strings.HasPrefix(id, ThreadIDPrefix) {
		return NewBadRequest("Invalid thread ID.")
	}
	return nil
}
