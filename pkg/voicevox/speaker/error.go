package speaker

import "fmt"

// ErrMissingRequiredField は外部API応答に必要なフィールド（この場合はスタイル）が見つからないことを示します。
type ErrMissingRequiredField struct {
	Field   string
	Context string // 例: "話者データロード時"
}

func (e *ErrMissingRequiredField) Error() string {
	return fmt.Sprintf("%sで必須フィールド '%s' が見つかりません", e.Context, e.Field)
}

// ErrUnknownVoice は指定された声がエンジンの話者一覧に存在しないことを示します。
type ErrUnknownVoice struct {
	Voice string
}

func (e *ErrUnknownVoice) Error() string {
	return fmt.Sprintf("声 %q に対応するStyle IDが見つかりません", e.Voice)
}
