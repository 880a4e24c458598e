package speaker

import "context"

// ----------------------------------------------------------------------
// インターフェース定義
// ----------------------------------------------------------------------

// SpeakerClient は /speakers エンドポイントを呼び出す能力を抽象化するインターフェースです。
// api.Client がこれを満たします。
type SpeakerClient interface {
	Speakers(ctx context.Context) ([]byte, error)
}

// ----------------------------------------------------------------------
// 構造体定義
// ----------------------------------------------------------------------

// VVSpeaker はVOICEVOXの /speakers APIの応答JSON構造の一部に対応する型です。
type VVSpeaker struct {
	Name   string `json:"name"`
	Styles []struct {
		Name string `json:"name"`
		ID   int    `json:"id"`
	} `json:"styles"`
}

// Voice は話者とスタイルの組と、そのStyle IDです。
type Voice struct {
	Speaker string
	Style   string
	ID      int
}

// Key は "話者名/スタイル名" 形式の声の指定を返します。
func (v Voice) Key() string {
	return v.Speaker + VoiceSeparator + v.Style
}
