package manuscript

import "fmt"

// ----------------------------------------------------------------------
// 入力エラー (loader.go, docx.go で利用)
// ----------------------------------------------------------------------

// ErrSourceUnreadable は原稿ファイルが存在しない、または読み込めないことを示します。
type ErrSourceUnreadable struct {
	Path       string
	WrappedErr error
}

func (e *ErrSourceUnreadable) Error() string {
	return fmt.Sprintf("原稿ファイル %s を読み込めません: %v", e.Path, e.WrappedErr)
}

func (e *ErrSourceUnreadable) Unwrap() error {
	return e.WrappedErr
}

// ErrInvalidDocument は構造化文書 (DOCX) の構造が不正であることを示します。
type ErrInvalidDocument struct {
	Path    string
	Details string
}

func (e *ErrInvalidDocument) Error() string {
	return fmt.Sprintf("文書 %s の形式が不正です: %s", e.Path, e.Details)
}
