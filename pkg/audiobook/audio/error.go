package audio

import "fmt"

// ----------------------------------------------------------------------
// データ処理エラー (wav.go, track.go で利用)
// ----------------------------------------------------------------------

// ErrInvalidWAVHeader はWAVデータが短すぎる、またはヘッダーの記載とデータ長が一致しないなど、
// ヘッダーに問題があることを示します。
type ErrInvalidWAVHeader struct {
	Index   int // エラーが発生したWAVセグメントのインデックス (不明な場合は -1)
	Details string
}

func (e *ErrInvalidWAVHeader) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("WAVデータ #%d のヘッダーが無効です: %s", e.Index, e.Details)
	}
	return fmt.Sprintf("WAVデータのヘッダーが無効です: %s", e.Details)
}

// ErrNoAudioData はフォーマットが確定したオーディオデータがまだないことを示します。
type ErrNoAudioData struct{}

func (e *ErrNoAudioData) Error() string {
	return "処理対象となる有効なオーディオデータがありません"
}

// ErrFormatMismatch は結合しようとした音声のフォーマットが既存のトラックと異なることを示します。
type ErrFormatMismatch struct {
	Want Format
	Got  Format
}

func (e *ErrFormatMismatch) Error() string {
	return fmt.Sprintf("オーディオフォーマットが一致しません (期待: %s, 実際: %s)", e.Want, e.Got)
}

// ----------------------------------------------------------------------
// 出力エラー (encoder.go, ffmpeg.go で利用)
// ----------------------------------------------------------------------

// ErrEncode はエンコーダーが音声の変換に失敗したことを示します。
type ErrEncode struct {
	Format     string
	Stderr     string
	WrappedErr error
}

func (e *ErrEncode) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s へのエンコードに失敗しました: %v (%s)", e.Format, e.WrappedErr, e.Stderr)
	}
	return fmt.Sprintf("%s へのエンコードに失敗しました: %v", e.Format, e.WrappedErr)
}

func (e *ErrEncode) Unwrap() error {
	return e.WrappedErr
}

// ErrExport は出力ファイルの書き込みに失敗したことを示します。
type ErrExport struct {
	Path       string
	WrappedErr error
}

func (e *ErrExport) Error() string {
	return fmt.Sprintf("音声ファイル %s の書き込みに失敗しました: %v", e.Path, e.WrappedErr)
}

func (e *ErrExport) Unwrap() error {
	return e.WrappedErr
}
