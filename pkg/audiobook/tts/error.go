package tts

import "fmt"

// ErrInvalidParameter は話速・音量などの合成パラメータが不正であることを示します。
type ErrInvalidParameter struct {
	Name   string
	Value  string
	Reason string
}

func (e *ErrInvalidParameter) Error() string {
	return fmt.Sprintf("合成パラメータ %s の値 %q が不正です: %s", e.Name, e.Value, e.Reason)
}

// ErrCache は合成キャッシュの読み書きに失敗したことを示します。
type ErrCache struct {
	Path       string
	WrappedErr error
}

func (e *ErrCache) Error() string {
	return fmt.Sprintf("合成キャッシュ %s の操作に失敗しました: %v", e.Path, e.WrappedErr)
}

func (e *ErrCache) Unwrap() error {
	return e.WrappedErr
}
