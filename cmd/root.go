package main

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shouni/go-audiobook/pkg/audiobook/config"
)

const (
	flagVerbose = "verbose"
	flagEnvFile = "env-file"
)

// flagKeys はコマンドラインフラグ名と設定キーの対応表です。
var flagKeys = map[string]string{
	"outdir":              "out_dir",
	"album":               "album",
	"author":              "author",
	"voice":               "voice",
	"rate":                "rate",
	"volume":              "volume",
	"combined-name":       "combined_name",
	"chapter-gap-ms":      "chapter_gap_ms",
	"bitrate":             "bitrate",
	"format":              "format",
	"max-chars":           "max_chars",
	"api-url":             "api_url",
	"http-timeout":        "http_timeout",
	"requests-per-second": "requests_per_second",
	"cache-file":          "cache_file",
	"keywords-file":       "keywords_file",
	"ffmpeg-path":         "ffmpeg_path",
	"dry-run":             "dry_run",
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "audiobook",
		Short:         "原稿 (.docx / .txt) から章ごとのオーディオブックを生成します",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogger(cmd)
		},
	}

	root.PersistentFlags().BoolP(flagVerbose, "v", false, "デバッグログを出力する")
	root.PersistentFlags().String(flagEnvFile, ".env", "読み込む .env ファイル")

	root.AddCommand(
		newBuildCmd(),
		newChaptersCmd(),
		newVoicesCmd(),
	)
	return root
}

func setupLogger(cmd *cobra.Command) {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool(flagVerbose); verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// loadConfig は .env・環境変数・明示的に指定されたフラグを順に適用した設定を返します。
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	envFile, _ := cmd.Flags().GetString(flagEnvFile)
	return config.Load(envFile, changedFlags(cmd.Flags()))
}

// changedFlags は利用者が明示的に指定したフラグだけを設定キーの値として返します。
func changedFlags(flags *pflag.FlagSet) map[string]any {
	overrides := make(map[string]any)
	flags.Visit(func(f *pflag.Flag) {
		if f.Name == "no-per-chapter" {
			if disabled, err := strconv.ParseBool(f.Value.String()); err == nil {
				overrides["per_chapter"] = !disabled
			}
			return
		}
		if key, ok := flagKeys[f.Name]; ok {
			overrides[key] = f.Value.String()
		}
	})
	return overrides
}

// addConfigFlags は設定を上書きするフラグを登録します。
// デフォルト値は表示用で、実際のデフォルトは config.Default が決めます。
func addConfigFlags(flags *pflag.FlagSet) {
	def := config.Default()

	flags.StringP("outdir", "o", def.OutDir, "出力ディレクトリ")
	flags.String("album", def.Album, "アルバム名タグ")
	flags.String("author", def.Author, "著者 (アーティスト) タグ")
	flags.String("voice", def.Voice, "声 (\"話者名/スタイル名\"、\"話者名\"、または Style ID)")
	flags.String("rate", def.Rate, "話速 (例: -5%, +10)")
	flags.String("volume", def.Volume, "音量 (例: +0%, -3dB)")
	flags.Bool("no-per-chapter", false, "章ごとのファイルを出力しない")
	flags.String("combined-name", def.CombinedName, "結合ファイル名")
	flags.Int("chapter-gap-ms", def.ChapterGapMS, "章間の無音 (ミリ秒)")
	flags.String("bitrate", def.Bitrate, "圧縮形式のビットレート")
	flags.StringP("format", "f", def.Format, "出力形式 (mp3, wav, ogg, opus, flac)")
	flags.Int("max-chars", def.MaxChars, "1チャンクの最大文字数")
	flags.String("api-url", def.APIURL, "VOICEVOXエンジンの URL")
	flags.Duration("http-timeout", def.HTTPTimeout, "HTTP タイムアウト")
	flags.Float64("requests-per-second", def.RequestsPerSecond, "合成リクエストの上限 (0 で無制限)")
	flags.String("cache-file", def.CacheFile, "合成キャッシュのファイル (空で無効)")
	flags.String("keywords-file", def.KeywordsFile, "章キーワード定義の YAML ファイル")
	flags.String("ffmpeg-path", def.FFmpegPath, "ffmpeg のパス")
	flags.Bool("dry-run", def.DryRun, "音声合成を行わず章とチャンクの分割結果だけを表示する")
}
