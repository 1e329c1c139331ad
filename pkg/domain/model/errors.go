// 指示: miu200521358
package model

import "fmt"

// ConfigurationError は未対応のリグ種別指定を表す。
// マッピング層で唯一の致命エラーであり、セッション構築を中断させる。
type ConfigurationError struct {
	RigType string
}

// Error はエラーメッセージを返す。
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("未対応のリグ種別です: %s", e.RigType)
}
