package audiobook

import "time"

const (
	// DefaultChunkPause は章内のチャンク間に挿入する無音の長さです。
	DefaultChunkPause = 800 * time.Millisecond
	// DefaultChapterGap は結合ファイルで章と章の間に挿入する無音の長さです。
	DefaultChapterGap = 1200 * time.Millisecond

	// chapterFileFormat は章ごとのファイル名の書式です (例: 01_Luku_1.mp3)。
	chapterFileFormat = "%02d_%s.%s"
	// chunkFileFormat は一時ディレクトリに書き出すチャンクのファイル名の書式です。
	chunkFileFormat = "%02d_%s_%04d.wav"
	// slugPlaceholder は安全な文字が1つも残らなかった場合のスラッグです。
	slugPlaceholder = "chapter"
	tempDirPrefix   = "audiobook-"
)
