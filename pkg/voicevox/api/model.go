package api

// ----------------------------------------------------------------------
// データモデル (API応答)
// ----------------------------------------------------------------------

// AudioQueryResponse は /audio_query APIの応答構造の一部に対応する型です。
// 合成パラメータの書き換えには ApplyScales を使い、その他のフィールドはそのまま送り返します。
type AudioQueryResponse struct {
	AccentPhrases []map[string]interface{} `json:"accent_phrases"`
	SpeedScale    float64                  `json:"speedScale"`
	VolumeScale   float64                  `json:"volumeScale"`
}

// Scales は /synthesis に送る前に audio_query へ上書きする倍率です。
type Scales struct {
	Speed  float64
	Volume float64
}
