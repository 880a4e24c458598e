package api

import (
	"fmt"
)

// ErrAPINetwork はAPI呼び出しにおける通信エラーやリトライ後の最終失敗を示すカスタムエラー型です。
type ErrAPINetwork struct {
	Endpoint   string
	WrappedErr error
}

func (e *ErrAPINetwork) Error() string {
	return fmt.Sprintf("API通信エラー (%s): %v", e.Endpoint, e.WrappedErr)
}

func (e *ErrAPINetwork) Unwrap() error {
	return e.WrappedErr
}

// ErrInvalidJSON はAPI応答やデータが期待されるJSON形式でなかったことを示します。
type ErrInvalidJSON struct {
	Details    string
	WrappedErr error
}

func (e *ErrInvalidJSON) Error() string {
	return fmt.Sprintf("不正なJSONデータ: %s (詳細: %v)", e.Details, e.WrappedErr)
}

func (e *ErrInvalidJSON) Unwrap() error {
	return e.WrappedErr
}

// ErrInvalidAudio は /synthesis の応答が音声データとして短すぎることを示します。
type ErrInvalidAudio struct {
	Size int
}

func (e *ErrInvalidAudio) Error() string {
	return fmt.Sprintf("WAVデータのサイズが短すぎます (%dバイト)", e.Size)
}
