package chunker

const (
	// DefaultMaxChars は1回の音声合成リクエストに含める最大文字数です。
	DefaultMaxChars    = 2200
	paragraphSeparator = "\n\n"
)
