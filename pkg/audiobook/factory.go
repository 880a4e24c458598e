package audiobook

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/shouni/go-audiobook/pkg/audiobook/audio"
	"github.com/shouni/go-audiobook/pkg/audiobook/chunker"
	"github.com/shouni/go-audiobook/pkg/audiobook/config"
	"github.com/shouni/go-audiobook/pkg/audiobook/manuscript"
	"github.com/shouni/go-audiobook/pkg/audiobook/tts"
	"github.com/shouni/go-audiobook/pkg/voicevox/api"
	"github.com/shouni/go-audiobook/pkg/voicevox/speaker"
)

// CleanupFunc は Executor が保持するリソース (合成キャッシュなど) を解放します。
type CleanupFunc func() error

func noopCleanup() error { return nil }

// ----------------------------------------------------------------------
// Factory 関数
// ----------------------------------------------------------------------

// NewPlannerFromConfig は設定の分割規則とチャンク上限で Planner を組み立てます。
func NewPlannerFromConfig(fs afero.Fs, cfg *config.Config) (*Planner, error) {
	segmenter, splitter, err := newTextPipeline(fs, cfg)
	if err != nil {
		return nil, err
	}
	return NewPlanner(fs, segmenter, splitter), nil
}

// NewExecutor は、VOICEVOXエンジンへの接続、話者データのロード、エンコーダーの選択を行い、
// Executor インターフェースを実装した具象型を組み立てて返します。
// cfg.DryRun が true の場合は外部依存に接続しない Planner を返します。
func NewExecutor(ctx context.Context, cfg *config.Config) (Executor, CleanupFunc, error) {
	fs := afero.NewOsFs()

	if cfg.DryRun {
		slog.Info("ドライランが有効です。音声合成を行わない Executor を返します。", "action", "skip_initialization")
		planner, err := NewPlannerFromConfig(fs, cfg)
		if err != nil {
			return nil, nil, err
		}
		return planner, noopCleanup, nil
	}

	segmenter, splitter, err := newTextPipeline(fs, cfg)
	if err != nil {
		return nil, nil, err
	}

	// 1. エンコーダーの選択 (VOICEVOX への接続前に ffmpeg の有無を確認する)
	encoder, err := NewEncoder(cfg)
	if err != nil {
		return nil, nil, err
	}

	// 2. クライアントの初期化と話者データのロード
	client := api.NewClient(cfg.APIURL, cfg.HTTPTimeout)
	if version, err := client.Version(ctx); err != nil {
		slog.Warn("VOICEVOXエンジンのバージョンを取得できませんでした。", "api_url", cfg.APIURL, "error", err)
	} else {
		slog.Info("VOICEVOXエンジンに接続しました。", "api_url", cfg.APIURL, "version", version)
	}

	slog.Info("VOICEVOX話者スタイルデータをロード中...")
	catalog, err := speaker.LoadCatalog(ctx, client)
	if err != nil {
		return nil, nil, fmt.Errorf("VOICEVOXエンジンへの接続または話者データのロードに失敗しました: %w", err)
	}
	slog.Info("VOICEVOX話者スタイルデータのロード完了。", "styles_count", len(catalog.Voices()))

	if _, err := catalog.Resolve(cfg.Voice); err != nil {
		return nil, nil, err
	}

	// 3. 合成バックエンドの組み立て
	var synth tts.Synthesizer = tts.NewVoicevoxSynthesizer(client, catalog, tts.WithRequestsPerSecond(cfg.RequestsPerSecond))
	cleanup := CleanupFunc(noopCleanup)
	if cfg.CacheFile != "" {
		cache, err := tts.OpenCache(cfg.CacheFile)
		if err != nil {
			return nil, nil, err
		}
		synth = tts.NewCachedSynthesizer(synth, cache)
		cleanup = cache.Close
		slog.Info("合成キャッシュを使用します。", "path", cfg.CacheFile)
	}

	// 4. Builder の組み立て
	builder := NewBuilder(synth, encoder, BuildConfig{
		OutDir:       cfg.OutDir,
		Album:        cfg.Album,
		Author:       cfg.Author,
		Voice:        cfg.Voice,
		Rate:         cfg.Rate,
		Volume:       cfg.Volume,
		PerChapter:   cfg.PerChapter,
		CombinedName: combinedName(cfg.CombinedName, encoder.Ext()),
		ChapterGap:   cfg.ChapterGap(),
	}, WithFs(fs), WithSegmenter(segmenter), WithSplitter(splitter))

	slog.Info("Executorの初期化が完了しました。",
		"format", encoder.Ext(),
		"voice", cfg.Voice,
		"max_chars", splitter.MaxChars(),
		"requests_per_second", cfg.RequestsPerSecond)

	return builder, cleanup, nil
}

// NewEncoder は出力形式に応じたエンコーダーを返します。
// wav は外部コマンドなしで書き出し、それ以外は ffmpeg を使用します。
func NewEncoder(cfg *config.Config) (audio.Encoder, error) {
	format := strings.ToLower(cfg.Format)
	if format == "wav" {
		return audio.WAVEncoder{}, nil
	}

	ffmpegPath, err := exec.LookPath(cfg.FFmpegPath)
	if err != nil {
		return nil, &ErrFFmpegNotFound{Path: cfg.FFmpegPath, Format: format, WrappedErr: err}
	}
	encoder, err := audio.NewFFmpegEncoder(ffmpegPath, format, cfg.Bitrate)
	if err != nil {
		return nil, err
	}
	return encoder, nil
}

// newTextPipeline は章分割とチャンク分割の部品を組み立てます。
func newTextPipeline(fs afero.Fs, cfg *config.Config) (*manuscript.Segmenter, *chunker.Splitter, error) {
	rules, err := manuscript.LoadRules(fs, cfg.KeywordsFile)
	if err != nil {
		return nil, nil, err
	}
	splitter := chunker.New(
		chunker.WithMaxChars(cfg.MaxChars),
		chunker.WithCJKTerminals(true), // VOICEVOX は日本語音声のため和文の句点でも区切る
	)
	return manuscript.NewSegmenter(rules), splitter, nil
}

// combinedName はデフォルトの結合ファイル名の拡張子を出力形式に合わせます。
// 利用者が明示した名前はそのまま使います。
func combinedName(name, ext string) string {
	if name != config.DefaultCombinedName {
		return name
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + "." + ext
}
