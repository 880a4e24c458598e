package config

const (
	// EnvPrefix は設定を上書きする環境変数の接頭辞です (例: AUDIOBOOK_OUT_DIR)。
	EnvPrefix = "AUDIOBOOK_"
	// LegacyAPIURLEnv は VOICEVOX エンジンの URL を指定する従来の環境変数です。
	LegacyAPIURLEnv = "VOICEVOX_API_URL"
	// DefaultCombinedName は結合ファイルのデフォルト名です。
	DefaultCombinedName = "book_combined.mp3"
)
