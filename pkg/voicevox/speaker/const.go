package speaker

const (
	// DefaultStyleName はスタイルを省略した声の指定で使うスタイル名です。
	DefaultStyleName = "ノーマル"
	// VoiceSeparator は "話者名/スタイル名" 形式の声の指定の区切り文字です。
	VoiceSeparator = "/"
)
