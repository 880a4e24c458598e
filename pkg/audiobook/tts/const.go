package tts

// 話速・音量として受け付けるパーセントの範囲 (VOICEVOX の speedScale 0.5〜2.0、volumeScale 0.0〜2.0 に対応)
const (
	MinRatePercent   = -50.0
	MaxRatePercent   = 100.0
	MinVolumePercent = -100.0
	MaxVolumePercent = 100.0
)

const (
	percentSuffix     = "%"
	decibelSuffix     = "db"
	cacheBucket       = "synthesis"
	cacheKeySeparator = "\x00"
)
