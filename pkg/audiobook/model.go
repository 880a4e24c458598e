package audiobook

import (
	"context"
	"time"
)

// ----------------------------------------------------------------------
// インターフェース
// ----------------------------------------------------------------------

// Executor は原稿ファイルからオーディオブックを生成するための契約を定義します。
type Executor interface {
	// Execute は原稿を章に分割して音声合成し、出力ファイルを書き出します。
	Execute(ctx context.Context, sourcePath string) (*Result, error)
}

// ----------------------------------------------------------------------
// データモデル
// ----------------------------------------------------------------------

// Result は1回の生成の結果です。
type Result struct {
	// CombinedPath は結合ファイルのパスです。ドライランでは空です。
	CombinedPath string
	Chapters     []ChapterReport
}

// ChapterReport は1章分の処理結果です。
type ChapterReport struct {
	Number   int
	Title    string
	Chunks   int
	Chars    int
	Duration time.Duration
	// Path は章ごとのファイルのパスです。章ごとの出力が無効な場合は空です。
	Path string
}

// TotalDuration は全章の再生時間の合計を返します (章間の無音は含みません)。
func (r *Result) TotalDuration() time.Duration {
	var total time.Duration
	for _, ch := range r.Chapters {
		total += ch.Duration
	}
	return total
}
