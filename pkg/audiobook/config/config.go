package config

import (
	"time"
)

// Config はオーディオブック生成の設定です。
// 優先順位は デフォルト < .env < 環境変数 < コマンドラインフラグ です。
type Config struct {
	// 出力
	OutDir       string `koanf:"out_dir" validate:"required"`
	Album        string `koanf:"album"`
	Author       string `koanf:"author"`
	PerChapter   bool   `koanf:"per_chapter"`
	CombinedName string `koanf:"combined_name" validate:"required"`
	ChapterGapMS int    `koanf:"chapter_gap_ms" validate:"gte=0"`
	Bitrate      string `koanf:"bitrate"`
	Format       string `koanf:"format" validate:"oneof=mp3 wav ogg opus flac"`
	FFmpegPath   string `koanf:"ffmpeg_path"`

	// 音声合成
	Voice             string        `koanf:"voice" validate:"required"`
	Rate              string        `koanf:"rate" validate:"required,percent"`
	Volume            string        `koanf:"volume" validate:"required,percent"`
	APIURL            string        `koanf:"api_url" validate:"required,url"`
	HTTPTimeout       time.Duration `koanf:"http_timeout" validate:"gt=0"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gte=0"`
	CacheFile         string        `koanf:"cache_file"`

	// 章・チャンク分割
	MaxChars     int    `koanf:"max_chars" validate:"gt=0"`
	KeywordsFile string `koanf:"keywords_file"`

	DryRun bool `koanf:"dry_run"`
}

// Default はデフォルト設定を返します。
func Default() *Config {
	return &Config{
		OutDir:       "output_mp3",
		Album:        "Audiobook",
		Author:       "Unknown Author",
		PerChapter:   true,
		CombinedName: DefaultCombinedName,
		ChapterGapMS: 1200,
		Bitrate:      "192k",
		Format:       "mp3",
		FFmpegPath:   "ffmpeg",

		Voice:       "ずんだもん/ノーマル",
		Rate:        "-5%",
		Volume:      "+0%",
		APIURL:      "http://127.0.0.1:50021",
		HTTPTimeout: 60 * time.Second,

		MaxChars: 2200,
	}
}

// ChapterGap は章間の無音の長さを返します。
func (c *Config) ChapterGap() time.Duration {
	return time.Duration(c.ChapterGapMS) * time.Millisecond
}
