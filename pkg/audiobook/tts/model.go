package tts

import "context"

// ----------------------------------------------------------------------
// インターフェース
// ----------------------------------------------------------------------

// Synthesizer はテキストを音声 (WAV) に変換する音声合成バックエンドです。
type Synthesizer interface {
	// Synthesize は1チャンク分のテキストを合成し、WAVデータを返します。
	Synthesize(ctx context.Context, req Request) ([]byte, error)
}

// AudioQueryClient は VOICEVOX の合成 API を呼び出すクライアントです。
// api.Client がこれを満たします。
type AudioQueryClient interface {
	AudioQuery(ctx context.Context, text string, styleID int) ([]byte, error)
	Synthesis(ctx context.Context, queryBody []byte, styleID int) ([]byte, error)
}

// VoiceResolver は声の指定を Style ID に変換します。
// speaker.Catalog がこれを満たします。
type VoiceResolver interface {
	Resolve(voice string) (int, error)
}

// ----------------------------------------------------------------------
// データモデル
// ----------------------------------------------------------------------

// Request は1回の合成リクエストです。
// Rate と Volume は EnsurePercent で正規化されたパーセント文字列 (例: "-5%") です。
type Request struct {
	Text   string
	Voice  string
	Rate   string
	Volume string
}
