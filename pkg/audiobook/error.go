package audiobook

import "fmt"

// ErrEmptyManuscript は原稿に読み上げる本文が1文字もなかったことを示します。
type ErrEmptyManuscript struct {
	Path string
}

func (e *ErrEmptyManuscript) Error() string {
	return fmt.Sprintf("原稿 %s に本文がありません", e.Path)
}

// ErrSynthesis はチャンクの音声合成、または合成結果の連結に失敗したことを示します。
// Chapter と Chunk は1始まりの番号です。
type ErrSynthesis struct {
	Chapter    int
	Title      string
	Chunk      int
	WrappedErr error
}

func (e *ErrSynthesis) Error() string {
	return fmt.Sprintf("章 %d (%s) のチャンク %d の音声合成に失敗しました: %v", e.Chapter, e.Title, e.Chunk, e.WrappedErr)
}

func (e *ErrSynthesis) Unwrap() error {
	return e.WrappedErr
}

// ErrAssembly は章の音声を結合トラックへ連結できなかったことを示します。
// Chapter は1始まりの番号です。
type ErrAssembly struct {
	Chapter    int
	Title      string
	WrappedErr error
}

func (e *ErrAssembly) Error() string {
	return fmt.Sprintf("章 %d (%s) の音声を結合できませんでした: %v", e.Chapter, e.Title, e.WrappedErr)
}

func (e *ErrAssembly) Unwrap() error {
	return e.WrappedErr
}

// ErrOutput は出力先・一時ディレクトリへの書き込みに失敗したことを示します。
type ErrOutput struct {
	Path       string
	WrappedErr error
}

func (e *ErrOutput) Error() string {
	return fmt.Sprintf("出力先 %s への書き込みに失敗しました: %v", e.Path, e.WrappedErr)
}

func (e *ErrOutput) Unwrap() error {
	return e.WrappedErr
}

// ErrFFmpegNotFound は圧縮形式での出力に必要な ffmpeg が見つからないことを示します。
type ErrFFmpegNotFound struct {
	Path       string
	Format     string
	WrappedErr error
}

func (e *ErrFFmpegNotFound) Error() string {
	return fmt.Sprintf("%s 形式の出力には ffmpeg が必要ですが、%s が見つかりません: %v", e.Format, e.Path, e.WrappedErr)
}

func (e *ErrFFmpegNotFound) Unwrap() error {
	return e.WrappedErr
}
